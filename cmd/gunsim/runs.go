package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunsim/internal/registry"
	"github.com/vovakirdan/gunsim/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [preset]",
	Short: "Show recorded runs",
	Long: `Display recent simulation runs, newest first, followed by totals.

Without a preset, runs of every preset are listed.

Examples:
  gunsim runs
  gunsim runs musket
  gunsim runs --limit 5
  gunsim runs musket --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs instead of listing them")
}

func runRuns(cmd *cobra.Command, args []string) {
	presetID := ""
	if len(args) == 1 {
		presetID = args[0]
		if !registry.Exists(presetID) {
			fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", presetID)
			fmt.Fprintln(os.Stderr, "Run 'gunsim list' to see available presets.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsClear {
		if presetID == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a preset")
			os.Exit(1)
		}
		if err := store.ClearRuns(presetID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Run history for %s cleared.\n", presetID)
		return
	}

	runs, err := store.RecentRuns(presetID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Start one with 'gunsim run'.")
		return
	}

	fmt.Printf("  %-8s  %-12s  %-6s  %-6s  %-7s  %-8s  %-9s  %s\n",
		"Run", "Preset", "Shots", "Alive", "Ticks", "Time", "End", "Date")
	fmt.Printf("  %-8s  %-12s  %-6s  %-6s  %-7s  %-8s  %-9s  %s\n",
		"---", "------", "-----", "-----", "-----", "----", "---", "----")

	for _, r := range runs {
		fmt.Printf("  %-8s  %-12s  %-6d  %-6d  %-7d  %-8s  %-9s  %s\n",
			shortID(r.RunID), r.Preset, r.Shots, r.Alive, r.Ticks,
			r.Duration.Round(100*time.Millisecond), r.EndReason,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	printStats(store, presetID)
}

// printStats prints run totals for one preset, or every preset.
func printStats(store *storage.Store, presetID string) {
	if presetID != "" {
		st, err := store.Stats(presetID)
		if err == nil {
			printStatsLine(presetID, st)
		}
		return
	}

	all, err := store.AllStats()
	if err != nil {
		return
	}
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		printStatsLine(id, all[id])
	}
}

func printStatsLine(presetID string, st *storage.PresetStats) {
	if st == nil {
		return
	}
	fmt.Printf("%s: %d runs, %d shots, best %d shots\n", presetID, st.Runs, st.TotalShots, st.MaxShots)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
