// Package sim provides the fixed-timestep driver that paces a simulation.
//
// The driver pulls in elapsed wall-clock time each iteration, drains it in
// fixed-size ticks, then draws exactly once. Physics therefore runs at the
// same simulated rate regardless of how quickly frames arrive.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gunsim/internal/clock"
)

// DefaultFPS is the default number of physics ticks per simulated second.
const DefaultFPS = 24

// SecondsPerTick returns the fixed timestep for a tick rate.
func SecondsPerTick(fps int) float64 {
	return 1 / float64(fps)
}

// Driver runs a Hooks implementation on a fixed timestep.
// All loop state is owned by the Driver; nothing is shared between drivers.
type Driver struct {
	hooks  Hooks
	fps    int
	dt     float64
	clock  clock.Clock
	logger *log.Logger

	frameTimer  *clock.Stopwatch
	accumulator float64

	idle      time.Duration
	maxFrames uint64

	ticks  uint64
	frames uint64
}

// Option configures a Driver.
type Option func(*Driver)

// WithFPS sets the tick rate. Non-positive values are ignored.
func WithFPS(fps int) Option {
	return func(d *Driver) {
		if fps > 0 {
			d.fps = fps
		}
	}
}

// WithClock sets the time source. Tests pass a clock.Manual.
func WithClock(c clock.Clock) Option {
	return func(d *Driver) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithLogger sets the logger for lifecycle and error events.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithIdle sleeps for the given duration between iterations instead of
// only yielding to the scheduler. Zero keeps the pure yield.
func WithIdle(idle time.Duration) Option {
	return func(d *Driver) {
		if idle > 0 {
			d.idle = idle
		}
	}
}

// WithMaxFrames stops the loop after n iterations. Zero means unlimited.
func WithMaxFrames(n uint64) Option {
	return func(d *Driver) {
		d.maxFrames = n
	}
}

// New creates a driver for the given hooks.
func New(h Hooks, opts ...Option) *Driver {
	d := &Driver{
		hooks:  h,
		fps:    DefaultFPS,
		clock:  clock.System{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.dt = SecondsPerTick(d.fps)
	d.frameTimer = clock.NewStopwatch(d.clock)
	return d
}

// Start runs Init, then the loop until ctx is done, a hook fails, or the
// frame limit is reached. Shutdown always runs before Start returns.
// Cancellation is a graceful stop and is not reported as an error.
func (d *Driver) Start(ctx context.Context) error {
	d.logger.Info("simulation starting", "fps", d.fps, "dt", d.dt)

	if err := d.hooks.Init(); err != nil {
		initErr := fmt.Errorf("init: %w", err)
		if shutErr := d.hooks.Shutdown(); shutErr != nil {
			return errors.Join(initErr, fmt.Errorf("shutdown: %w", shutErr))
		}
		return initErr
	}

	d.frameTimer.Restart()
	runErr := d.loop(ctx)
	if runErr != nil {
		d.logger.Error("simulation loop failed", "err", runErr)
	}

	if err := d.hooks.Shutdown(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown: %w", err))
	}

	d.logger.Info("simulation stopped",
		"ticks", d.ticks,
		"frames", d.frames,
		"simulated", d.SimulatedTime(),
	)
	return runErr
}

// loop iterates Step until cancellation, failure, or the frame limit.
func (d *Driver) loop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			d.logger.Debug("simulation cancelled", "cause", context.Cause(ctx))
			return nil
		}

		if err := d.Step(); err != nil {
			return err
		}

		if d.maxFrames > 0 && d.frames >= d.maxFrames {
			return nil
		}

		d.yield(ctx)
	}
}

// yield gives other goroutines a turn before the next iteration.
func (d *Driver) yield(ctx context.Context) {
	if d.idle <= 0 {
		runtime.Gosched()
		return
	}

	timer := time.NewTimer(d.idle)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Step runs one loop iteration: accumulate elapsed time, drain it in fixed
// ticks, then draw once. After the drain 0 <= Accumulator() < DT().
func (d *Driver) Step() error {
	d.accumulator += d.frameTimer.Time()
	d.frameTimer.Restart()

	for d.accumulator >= d.dt {
		if err := d.hooks.Update(d.dt); err != nil {
			return fmt.Errorf("update tick %d: %w", d.ticks, err)
		}
		d.accumulator -= d.dt
		d.ticks++
	}
	if d.accumulator < 0 {
		d.accumulator = 0
	}

	if err := d.hooks.Draw(); err != nil {
		return fmt.Errorf("draw frame %d: %w", d.frames, err)
	}
	d.frames++
	return nil
}

// FPS returns the tick rate.
func (d *Driver) FPS() int {
	return d.fps
}

// DT returns the fixed timestep in seconds.
func (d *Driver) DT() float64 {
	return d.dt
}

// Accumulator returns the unconsumed wall-clock time in seconds.
func (d *Driver) Accumulator() float64 {
	return d.accumulator
}

// Ticks returns the number of fixed updates run so far.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Frames returns the number of completed iterations (draws).
func (d *Driver) Frames() uint64 {
	return d.frames
}

// SimulatedTime returns the simulated time covered by the ticks run so far.
func (d *Driver) SimulatedTime() time.Duration {
	return time.Duration(float64(d.ticks) * d.dt * float64(time.Second))
}
