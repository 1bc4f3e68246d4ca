package gunsim

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/vovakirdan/gunsim/internal/ballistics"
	"github.com/vovakirdan/gunsim/internal/core"
	"github.com/vovakirdan/gunsim/internal/core/mocks"
	"github.com/vovakirdan/gunsim/internal/physics"
)

const dt = 1.0 / 24.0

func fixedRand(v float64) func() float64 {
	return func() float64 { return v }
}

func TestShotChance(t *testing.T) {
	got := ShotChance(0.5, dt)
	want := 1 - math.Pow(0.5, dt)
	if got != want {
		t.Errorf("ShotChance(0.5, 1/24) = %v, expected %v", got, want)
	}
	if math.Abs(got-0.028468) > 1e-6 {
		t.Errorf("ShotChance(0.5, 1/24) = %v, expected ~0.028468", got)
	}

	if got := ShotChance(0, dt); got != 0 {
		t.Errorf("ShotChance(0, dt) = %v, expected 0", got)
	}
	if got := ShotChance(1, dt); got != 1 {
		t.Errorf("ShotChance(1, dt) = %v, expected 1", got)
	}
}

func TestShotChanceCompoundsToRate(t *testing.T) {
	// Not firing for 24 ticks of 1/24s is as likely as not firing for 1s.
	miss := math.Pow(1-ShotChance(0.5, dt), 24)
	if math.Abs(miss-0.5) > 1e-9 {
		t.Errorf("miss probability over 1s = %v, expected 0.5", miss)
	}
}

func TestUpdateFiresWhenRandBelowChance(t *testing.T) {
	env := ballistics.NewEnvironment(253)
	cfg := DefaultConfig()
	cfg.Rand = fixedRand(0)
	s := New(env, nil, cfg)

	if err := s.Update(dt); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if env.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", env.Len())
	}

	// The new bullet is integrated in the same tick it was fired.
	b := env.Bullet(0)
	if got := FormatBullet(0, b); got != "0. x: 10.54, y: 99.98, vx: 253.00, vy: -0.41" {
		t.Errorf("FormatBullet() = %q", got)
	}
}

func TestUpdateHoldsFireWhenRandAboveChance(t *testing.T) {
	env := ballistics.NewEnvironment(253)
	cfg := DefaultConfig()
	cfg.Rand = fixedRand(0.5)
	s := New(env, nil, cfg)

	for i := 0; i < 100; i++ {
		if err := s.Update(dt); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}
	if env.Len() != 0 {
		t.Errorf("Len() = %d, expected no shots", env.Len())
	}
}

func TestUpdateNotifiesListener(t *testing.T) {
	env := ballistics.NewEnvironment(20)
	var shots []ballistics.Bullet
	cfg := Config{
		ShotRate:     1,
		LaunchHeight: 3,
		Rand:         fixedRand(0.3),
		Listener: ShotListenerFunc(func(b ballistics.Bullet) {
			shots = append(shots, b)
		}),
	}
	s := New(env, nil, cfg)

	for i := 0; i < 3; i++ {
		if err := s.Update(dt); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}

	if len(shots) != 3 {
		t.Fatalf("listener saw %d shots, expected 3", len(shots))
	}
	for i, b := range shots {
		if b.Body.X != 0 || b.Body.Y != 3 || b.Body.VX != 20 || b.Body.VY != 0 {
			t.Errorf("shot %d = %+v, expected fresh bullet at muzzle", i, b.Body)
		}
	}
}

func TestUpdateRejectsInvalidTimestep(t *testing.T) {
	env := ballistics.NewEnvironment(253)
	cfg := DefaultConfig()
	cfg.Rand = fixedRand(0)
	s := New(env, nil, cfg)

	if err := s.Update(0); !errors.Is(err, physics.ErrInvalidTimestep) {
		t.Errorf("Update(0) = %v, expected ErrInvalidTimestep", err)
	}
	if env.Len() != 0 {
		t.Errorf("Len() = %d, invalid step must not fire", env.Len())
	}
}

func TestDeterministicRuns(t *testing.T) {
	run := func() []string {
		env := ballistics.NewEnvironment(253)
		cfg := DefaultConfig()
		cfg.Rand = SeededRand(42)
		s := New(env, nil, cfg)
		for i := 0; i < 24*30; i++ {
			if err := s.Update(dt); err != nil {
				t.Fatalf("Update() failed: %v", err)
			}
		}
		var out []string
		for _, l := range FormatLines(env.Bullets(-1)) {
			out = append(out, l.Text)
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("line %d differs: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestInitAndShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)

	gomock.InOrder(
		r.EXPECT().HideCursor().Return(nil),
		r.EXPECT().Clear().Return(nil),
		r.EXPECT().ShowCursor().Return(nil),
	)

	s := New(ballistics.NewEnvironment(253), r, DefaultConfig())
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := s.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
}

func TestInitPropagatesRendererError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)
	errTTY := errors.New("not a tty")

	r.EXPECT().HideCursor().Return(errTTY)

	s := New(ballistics.NewEnvironment(253), r, DefaultConfig())
	if err := s.Init(); !errors.Is(err, errTTY) {
		t.Errorf("Init() = %v, expected renderer error", err)
	}
}

func TestDrawLimitsToVisibleRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)

	env := ballistics.NewEnvironment(253)
	for i := 0; i < 3; i++ {
		env.ShootGun(100)
	}
	if err := env.Update(dt); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	line := "x: 10.54, y: 99.98, vx: 253.00, vy: -0.41"
	want := []core.Line{
		{Row: 0, Text: "0. " + line},
		{Row: 1, Text: "1. " + line},
	}

	r.EXPECT().Rows().Return(2)
	gomock.InOrder(
		r.EXPECT().Clear().Return(nil),
		r.EXPECT().WriteLines(want).Return(nil),
	)

	s := New(env, r, DefaultConfig())
	if err := s.Draw(); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
}

func TestDrawEmptyEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)

	r.EXPECT().Rows().Return(24)
	r.EXPECT().Clear().Return(nil)
	r.EXPECT().WriteLines([]core.Line{}).Return(nil)

	s := New(ballistics.NewEnvironment(253), r, DefaultConfig())
	if err := s.Draw(); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
}

func TestDrawPropagatesWriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)
	errClosed := errors.New("closed")

	r.EXPECT().Rows().Return(24)
	r.EXPECT().Clear().Return(nil)
	r.EXPECT().WriteLines(gomock.Any()).Return(errClosed)

	s := New(ballistics.NewEnvironment(253), r, DefaultConfig())
	if err := s.Draw(); !errors.Is(err, errClosed) {
		t.Errorf("Draw() = %v, expected write error", err)
	}
}

func TestFormatLinesMarksGrounded(t *testing.T) {
	bullets := []ballistics.Bullet{
		{Body: physics.Body{X: 12, Y: 0.004, VX: 253, VY: -9.8}},
		{Body: physics.Body{X: 1143, Y: 0, VX: 0, VY: 0}},
	}

	lines := FormatLines(bullets)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	// Both rows print y: 0.00, only the second one is on the ground.
	if lines[0].Grounded {
		t.Errorf("line %q should not be grounded", lines[0].Text)
	}
	if !lines[1].Grounded {
		t.Errorf("line %q should be grounded", lines[1].Text)
	}
	for i, l := range lines {
		if l.Row != i {
			t.Errorf("line %d Row = %d", i, l.Row)
		}
	}
}
