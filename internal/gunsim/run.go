package gunsim

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunsim/internal/ballistics"
	"github.com/vovakirdan/gunsim/internal/clock"
	"github.com/vovakirdan/gunsim/internal/config"
	"github.com/vovakirdan/gunsim/internal/core"
	"github.com/vovakirdan/gunsim/internal/sim"
)

// End reasons reported in Result.
const (
	EndCancelled = "cancelled" // context cancelled by the user or a signal
	EndDuration  = "duration"  // RunOptions.Duration elapsed
	EndFrames    = "frames"    // RunOptions.MaxFrames reached
	EndError     = "error"     // a hook or the renderer failed
)

// ErrDurationElapsed is the cancellation cause when a timed run ends.
var ErrDurationElapsed = errors.New("gunsim: run duration elapsed")

// RunOptions configures a complete run.
type RunOptions struct {
	Config    config.SimConfig
	Seed      int64         // 0 = random
	Duration  time.Duration // 0 = until cancelled
	MaxFrames uint64        // 0 = unlimited
	Listener  ShotListener
	Logger    *log.Logger
	Clock     clock.Clock // nil = system clock
}

// Result summarizes a finished run.
type Result struct {
	Ticks     uint64
	Frames    uint64
	Shots     int
	Alive     int
	Evicted   int
	Simulated time.Duration
	Elapsed   time.Duration
	EndReason string
}

// Run builds an environment and simulation from opts and drives it on r
// until ctx is done, the duration elapses or the frame limit is reached.
func Run(ctx context.Context, r core.Renderer, opts RunOptions) (Result, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return Result{EndReason: EndError}, err
	}

	env := ballistics.NewEnvironment(cfg.Gun.MuzzleVelocity)
	env.SetEviction(cfg.Eviction())

	s := New(env, r, Config{
		ShotRate:     cfg.Gun.ShotRate,
		LaunchHeight: cfg.Gun.LaunchHeight,
		Rand:         SeededRand(opts.Seed),
		Listener:     opts.Listener,
	})

	driverOpts := []sim.Option{
		sim.WithFPS(cfg.Physics.FPS),
		sim.WithIdle(cfg.Physics.Idle),
		sim.WithMaxFrames(opts.MaxFrames),
		sim.WithClock(opts.Clock),
		sim.WithLogger(opts.Logger),
	}
	d := sim.New(s, driverOpts...)

	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, opts.Duration, ErrDurationElapsed)
		defer cancel()
	}

	elapsed := clock.NewStopwatch(opts.Clock)
	err := d.Start(ctx)

	res := Result{
		Ticks:     d.Ticks(),
		Frames:    d.Frames(),
		Shots:     env.Fired(),
		Alive:     env.Len(),
		Evicted:   env.Evicted(),
		Simulated: d.SimulatedTime(),
		Elapsed:   time.Duration(elapsed.Time() * float64(time.Second)),
	}

	switch {
	case err != nil:
		res.EndReason = EndError
	case errors.Is(context.Cause(ctx), ErrDurationElapsed):
		res.EndReason = EndDuration
	case ctx.Err() != nil:
		res.EndReason = EndCancelled
	default:
		res.EndReason = EndFrames
	}
	return res, err
}
