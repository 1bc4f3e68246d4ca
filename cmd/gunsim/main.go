// gunsim is a terminal ballistics simulator: a gun fires bullets on a
// fixed physics timestep and their positions are printed every frame.
//
// Usage:
//
//	gunsim list              - List available gun presets
//	gunsim run [preset]      - Run the simulation
//	gunsim menu              - Pick presets interactively
//	gunsim runs [preset]     - Show recorded runs
//	gunsim serve             - Start SSH server for remote viewing
//
// Global flags:
//
//	--fps <rate>        - Override physics tick rate (default: from config)
//	--seed <value>      - Set RNG seed for reproducible firing
//	--db <path>         - Set database path (default: ~/.gunsim/runs.db)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunsim/internal/config"
	"github.com/vovakirdan/gunsim/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gunsim",
	Short: "gunsim - Watch bullets fly in your terminal",
	Long: `gunsim simulates a gun firing bullets under constant gravity.
Physics advances on a fixed timestep and every frame lists each bullet's
position and velocity.

Available commands:
  list     - Show all gun presets
  run      - Run the simulation
  menu     - Interactive preset picker
  runs     - View recorded runs
  serve    - Start SSH server for remote viewing

Examples:
  gunsim list
  gunsim run
  gunsim run musket --renderer plain --frames 100
  gunsim menu
  gunsim serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Physics tick rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gunsim/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. When the screen belongs to a
// full-screen renderer, log lines go to ~/.gunsim/gunsim.log instead of
// stderr. The returned closer releases the log file.
func newLogger(toFile bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	if toFile {
		if f, ferr := openLogFile(); ferr == nil {
			w = f
			closer = func() { f.Close() }
		} else {
			w = io.Discard
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "gunsim",
		Level:           level,
	})
	return logger, closer
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".gunsim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "gunsim.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// resolveSeed returns the seed to run with. A zero flag picks a time-based
// seed so the stored run can still be replayed.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// loadConfig builds the preset's config, lets config files override it and
// applies the global --fps override.
func loadConfig(path string, preset registry.Preset) (config.SimConfig, error) {
	cfg, err := preset.Load(path)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Physics.FPS = flagFPS
	}
	return cfg, nil
}
