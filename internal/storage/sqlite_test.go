package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/gunsim/internal/gunsim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(preset string, shots int) RunSummary {
	return RunSummary{
		Preset:    preset,
		Renderer:  "plain",
		FPS:       24,
		Seed:      42,
		Ticks:     240,
		Frames:    1000,
		Shots:     shots,
		Alive:     shots,
		Duration:  10 * time.Second,
		EndReason: gunsim.EndDuration,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(sampleRun("colt-m1911", 5))
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() returned non-uuid id %q", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for saved run")
	}

	if got.Preset != "colt-m1911" || got.Shots != 5 || got.Ticks != 240 || got.Frames != 1000 {
		t.Errorf("RunByID() = %+v, fields not round-tripped", got)
	}
	if got.Duration != 10*time.Second {
		t.Errorf("Duration = %v, expected 10s", got.Duration)
	}
	if got.EndReason != gunsim.EndDuration {
		t.Errorf("EndReason = %q, expected %q", got.EndReason, gunsim.EndDuration)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v, expected nil", got)
	}
}

func TestStoreSaveRunRejectsBadID(t *testing.T) {
	store := openTestStore(t)

	r := sampleRun("nerf", 1)
	r.RunID = "not-a-uuid"
	if _, err := store.SaveRun(r); err == nil {
		t.Error("SaveRun() with invalid run id should fail")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveRun(sampleRun("colt-m1911", i)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(sampleRun("musket", 9)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("colt-m1911", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first
	if runs[0].Shots != 5 || runs[1].Shots != 4 || runs[2].Shots != 3 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 runs across presets, got %d", len(all))
	}
	if all[0].Preset != "musket" {
		t.Errorf("Expected newest run to be musket, got %s", all[0].Preset)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("colt-m1911", 1))
	store.SaveRun(sampleRun("colt-m1911", 2))
	store.SaveRun(sampleRun("nerf", 3))

	if err := store.ClearRuns("colt-m1911"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	colt, _ := store.RecentRuns("colt-m1911", 10)
	if len(colt) != 0 {
		t.Errorf("Expected 0 colt runs after clear, got %d", len(colt))
	}

	nerf, _ := store.RecentRuns("nerf", 10)
	if len(nerf) != 1 {
		t.Errorf("Nerf runs should not be affected by clearing colt")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("colt-m1911")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.TotalShots != 0 {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRun(sampleRun("colt-m1911", 2))
	store.SaveRun(sampleRun("colt-m1911", 6))

	stats, err := store.Stats("colt-m1911")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.TotalShots != 8 || stats.MaxShots != 6 {
		t.Errorf("shots = %d/%d, expected 8/6", stats.TotalShots, stats.MaxShots)
	}
	if stats.AvgShots != 4 {
		t.Errorf("AvgShots = %v, expected 4", stats.AvgShots)
	}
	if stats.TotalTicks != 480 {
		t.Errorf("TotalTicks = %d, expected 480", stats.TotalTicks)
	}
}

func TestStoreAllStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("colt-m1911", 2))
	store.SaveRun(sampleRun("musket", 1))
	store.SaveRun(sampleRun("musket", 3))

	stats, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 presets, got %d", len(stats))
	}
	if stats["musket"].Runs != 2 || stats["musket"].TotalShots != 4 {
		t.Errorf("musket stats = %+v", stats["musket"])
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSummaryOf(t *testing.T) {
	res := gunsim.Result{
		Ticks:     48,
		Frames:    60,
		Shots:     3,
		Alive:     2,
		Evicted:   1,
		Elapsed:   2 * time.Second,
		EndReason: gunsim.EndCancelled,
	}
	meta := RunMeta{Preset: "nerf", Renderer: "tui", FPS: 24, Seed: 7}

	got := SummaryOf(meta, res)
	if got.Preset != "nerf" || got.Renderer != "tui" || got.Seed != 7 {
		t.Errorf("SummaryOf() meta = %+v", got)
	}
	if got.Ticks != 48 || got.Shots != 3 || got.Evicted != 1 || got.Duration != 2*time.Second {
		t.Errorf("SummaryOf() counters = %+v", got)
	}
	if got.RunID != "" {
		t.Errorf("RunID = %q, expected SaveRun to assign it", got.RunID)
	}
}
