package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gunsim/internal/ballistics"
	"github.com/vovakirdan/gunsim/internal/config"
	"github.com/vovakirdan/gunsim/internal/core"
	"github.com/vovakirdan/gunsim/internal/gunsim"
	"github.com/vovakirdan/gunsim/internal/platform/audio"
	"github.com/vovakirdan/gunsim/internal/platform/plain"
	"github.com/vovakirdan/gunsim/internal/platform/tcellview"
	"github.com/vovakirdan/gunsim/internal/platform/tui"
	"github.com/vovakirdan/gunsim/internal/registry"
	"github.com/vovakirdan/gunsim/internal/storage"
)

// Renderer names accepted by --renderer.
const (
	rendererTUI   = "tui"
	rendererTcell = "tcell"
	rendererPlain = "plain"
)

var (
	flagConfig         string
	flagRenderer       string
	flagShotRate       float64
	flagMuzzleVelocity float64
	flagHeight         float64
	flagEvict          string
	flagMaxBullets     int
	flagDuration       time.Duration
	flagFrames         uint64
	flagSound          bool
)

var runCmd = &cobra.Command{
	Use:   "run [preset]",
	Short: "Run the simulation",
	Long: `Run the gun simulation until interrupted.

The gun fires with a fixed chance per second. Every frame lists the live
bullets, one per line, as index, position and velocity.

Renderers:
  tui    - Bubble Tea view with a status header (default)
  tcell  - Full-screen tcell view
  plain  - Raw ANSI output, also usable when piped

Controls (tui, tcell):
  Q/Esc/Ctrl+C  - Quit
  Ctrl+S        - Save screenshot (tui)

Examples:
  gunsim run
  gunsim run musket
  gunsim run --renderer plain --frames 240 --seed 42
  gunsim run --shot-rate 0.9 --evict grounded
  gunsim run --duration 30s --sound
  gunsim run --config ./my-gunsim.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	runCmd.Flags().StringVar(&flagRenderer, "renderer", rendererTUI, "Renderer: tui, tcell, plain")
	runCmd.Flags().Float64Var(&flagShotRate, "shot-rate", gunsim.DefaultShotRate, "Shot chance per second, within [0, 1]")
	runCmd.Flags().Float64Var(&flagMuzzleVelocity, "muzzle-velocity", ballistics.DefaultMuzzleVelocity, "Muzzle velocity in m/s")
	runCmd.Flags().Float64Var(&flagHeight, "height", gunsim.DefaultLaunchHeight, "Launch height in m")
	runCmd.Flags().StringVar(&flagEvict, "evict", string(ballistics.EvictKeep), "Bullet eviction: keep, grounded, cap")
	runCmd.Flags().IntVar(&flagMaxBullets, "max-bullets", 0, "Bullet limit for --evict cap")
	runCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Stop after this long (0 = until interrupted)")
	runCmd.Flags().Uint64Var(&flagFrames, "frames", 0, "Stop after this many frames (0 = unlimited)")
	runCmd.Flags().BoolVar(&flagSound, "sound", false, "Play a sound for every shot")
}

func runRun(cmd *cobra.Command, args []string) {
	presetID := registry.DefaultPreset
	if len(args) == 1 {
		presetID = args[0]
	}

	preset, err := registry.Get(presetID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown preset %q\n", presetID)
		fmt.Fprintln(os.Stderr, "Run 'gunsim list' to see available presets.")
		os.Exit(1)
	}

	cfg, err := loadConfig(flagConfig, preset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch flagRenderer {
	case rendererTUI, rendererTcell, rendererPlain:
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown renderer %q (use tui, tcell or plain)\n", flagRenderer)
		os.Exit(1)
	}

	logger, closeLog := newLogger(flagRenderer != rendererPlain)
	defer closeLog()

	// Run history is optional
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := execute(ctx, runPlan{
		preset:   preset,
		cfg:      cfg,
		renderer: flagRenderer,
		seed:     resolveSeed(),
		duration: flagDuration,
		frames:   flagFrames,
		sound:    flagSound,
	}, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d shots, %d alive, %d ticks in %s (%s)\n",
		preset.Title, res.Shots, res.Alive, res.Ticks, res.Elapsed.Round(time.Millisecond), res.EndReason)
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.SimConfig) {
	flags := cmd.Flags()
	if flags.Changed("shot-rate") {
		cfg.Gun.ShotRate = flagShotRate
	}
	if flags.Changed("muzzle-velocity") {
		cfg.Gun.MuzzleVelocity = flagMuzzleVelocity
	}
	if flags.Changed("height") {
		cfg.Gun.LaunchHeight = flagHeight
	}
	if flags.Changed("evict") {
		cfg.Bullets.Eviction = flagEvict
	}
	if flags.Changed("max-bullets") {
		cfg.Bullets.MaxBullets = flagMaxBullets
	}
}

// runPlan describes one simulation run started from the CLI.
type runPlan struct {
	preset   registry.Preset
	cfg      config.SimConfig
	renderer string
	seed     int64
	duration time.Duration
	frames   uint64
	sound    bool
}

// execute drives one run on the chosen renderer and records it.
func execute(ctx context.Context, plan runPlan, store *storage.Store, logger *log.Logger) (gunsim.Result, error) {
	runLogger := logger.With("preset", plan.preset.ID, "renderer", plan.renderer)

	var player *audio.ShotPlayer
	if plan.sound {
		player = audio.NewShotPlayer()
		if err := player.Initialize(); err != nil {
			runLogger.Warn("audio unavailable", "error", err)
		}
		defer player.Cleanup()
	}

	opts := gunsim.RunOptions{
		Config:    plan.cfg,
		Seed:      plan.seed,
		Duration:  plan.duration,
		MaxFrames: plan.frames,
		Logger:    runLogger,
		Listener: gunsim.ShotListenerFunc(func(b ballistics.Bullet) {
			runLogger.Debug("shot fired", "y", b.Body.Y, "vx", b.Body.VX)
			if player != nil {
				player.OnShot(b)
			}
		}),
	}

	var (
		res gunsim.Result
		err error
	)
	switch plan.renderer {
	case rendererTcell:
		res, err = runTcell(ctx, opts)
	case rendererPlain:
		res, err = gunsim.Run(ctx, plain.New(os.Stdout), opts)
	default:
		err = tui.Run(ctx, plan.preset.Title, func(ctx context.Context, r core.Renderer) error {
			var runErr error
			res, runErr = gunsim.Run(ctx, r, opts)
			return runErr
		})
	}

	runLogger.Info("run finished",
		"shots", res.Shots,
		"alive", res.Alive,
		"evicted", res.Evicted,
		"ticks", res.Ticks,
		"end", res.EndReason,
	)

	if store != nil && res.Frames > 0 {
		meta := storage.RunMeta{
			Preset:   plan.preset.ID,
			Renderer: plan.renderer,
			FPS:      plan.cfg.Physics.FPS,
			Seed:     plan.seed,
		}
		if runID, saveErr := store.SaveRun(storage.SummaryOf(meta, res)); saveErr != nil {
			runLogger.Warn("could not save run", "error", saveErr)
		} else {
			runLogger.Debug("run saved", "run_id", runID)
		}
	}

	return res, err
}

// runTcell runs on a tcell screen, watching its events for the quit key.
func runTcell(ctx context.Context, opts gunsim.RunOptions) (gunsim.Result, error) {
	r, err := tcellview.New()
	if err != nil {
		return gunsim.Result{EndReason: gunsim.EndError}, fmt.Errorf("failed to open screen: %w", err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go r.Watch(ctx, cancel)

	return gunsim.Run(ctx, r, opts)
}
