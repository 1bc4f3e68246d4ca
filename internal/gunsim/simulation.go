// Package gunsim drives a gun environment from the fixed-timestep loop and
// draws the live bullet table through a renderer.
package gunsim

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/gunsim/internal/ballistics"
	"github.com/vovakirdan/gunsim/internal/core"
	"github.com/vovakirdan/gunsim/internal/physics"
	"github.com/vovakirdan/gunsim/internal/sim"
)

// Default firing parameters.
const (
	DefaultShotRate     = 0.5
	DefaultLaunchHeight = 100.0
)

// ShotChance converts a per-second shot rate into the chance of firing
// during a step of dt seconds. The result compounds so that the per-second
// probability holds regardless of the tick rate.
func ShotChance(rate, dt float64) float64 {
	return 1 - math.Pow(1-rate, dt)
}

// ShotListener is notified of every bullet fired.
type ShotListener interface {
	OnShot(b ballistics.Bullet)
}

// ShotListenerFunc adapts a function to ShotListener.
type ShotListenerFunc func(b ballistics.Bullet)

// OnShot calls f(b).
func (f ShotListenerFunc) OnShot(b ballistics.Bullet) {
	f(b)
}

// Config holds the firing policy of a simulation.
type Config struct {
	ShotRate     float64        // Shot chance per second, [0, 1]
	LaunchHeight float64        // Muzzle height in meters
	Rand         func() float64 // Uniform [0, 1); nil uses a time-seeded PCG
	Listener     ShotListener   // Optional
}

// DefaultConfig returns the firing policy of the Colt M1911 scenario.
func DefaultConfig() Config {
	return Config{
		ShotRate:     DefaultShotRate,
		LaunchHeight: DefaultLaunchHeight,
	}
}

// SeededRand returns a reproducible uniform source for the given seed.
// Seed 0 selects a random seed.
func SeededRand(seed int64) func() float64 {
	if seed == 0 {
		return rand.Float64
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	return rng.Float64
}

// Simulation is the gun scenario plugged into sim.Driver.
type Simulation struct {
	env      *ballistics.Environment
	renderer core.Renderer
	cfg      Config
	ticks    uint64
}

var _ sim.Hooks = (*Simulation)(nil)

// New creates a simulation over env that draws to r.
func New(env *ballistics.Environment, r core.Renderer, cfg Config) *Simulation {
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}
	return &Simulation{
		env:      env,
		renderer: r,
		cfg:      cfg,
	}
}

// Environment returns the simulated environment.
func (s *Simulation) Environment() *ballistics.Environment {
	return s.env
}

// Init hides the cursor and clears the display.
func (s *Simulation) Init() error {
	if err := s.renderer.HideCursor(); err != nil {
		return fmt.Errorf("hide cursor: %w", err)
	}
	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

// Shutdown restores the cursor.
func (s *Simulation) Shutdown() error {
	if err := s.renderer.ShowCursor(); err != nil {
		return fmt.Errorf("show cursor: %w", err)
	}
	return nil
}

// Update maybe fires one bullet, then advances every bullet by dt.
func (s *Simulation) Update(dt float64) error {
	if err := physics.ValidateTimestep(dt); err != nil {
		return err
	}

	if s.cfg.Rand() < ShotChance(s.cfg.ShotRate, dt) {
		s.env.ShootGun(s.cfg.LaunchHeight)
		if s.cfg.Listener != nil {
			s.cfg.Listener.OnShot(s.env.Bullet(s.env.Len() - 1))
		}
	}

	if err := s.env.Update(dt); err != nil {
		return err
	}
	s.ticks++
	return nil
}

// Status returns the current counters.
func (s *Simulation) Status() core.Status {
	return core.Status{
		Ticks:   s.ticks,
		Bullets: s.env.Len(),
		Shots:   s.env.Fired(),
		Evicted: s.env.Evicted(),
	}
}

// Draw renders one line per bullet, as many as fit on screen.
func (s *Simulation) Draw() error {
	rows := core.Max(s.renderer.Rows(), 0)

	lines := FormatLines(s.env.Bullets(rows))
	if sink, ok := s.renderer.(core.StatusSink); ok {
		sink.SetStatus(s.Status())
	}

	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	if err := s.renderer.WriteLines(lines); err != nil {
		return fmt.Errorf("write lines: %w", err)
	}
	return nil
}

// FormatLines formats bullets as display lines, one per row starting at 0.
func FormatLines(bullets []ballistics.Bullet) []core.Line {
	lines := make([]core.Line, len(bullets))
	for i, b := range bullets {
		lines[i] = core.Line{Row: i, Text: FormatBullet(i, b), Grounded: b.Body.Grounded()}
	}
	return lines
}

// FormatBullet formats one bullet with all values rounded to two decimals.
func FormatBullet(i int, b ballistics.Bullet) string {
	return fmt.Sprintf("%d. x: %.2f, y: %.2f, vx: %.2f, vy: %.2f",
		i, b.Body.X, b.Body.Y, b.Body.VX, b.Body.VY)
}
