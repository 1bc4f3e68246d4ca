// Package config provides YAML-based simulation configuration loading.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gunsim/internal/ballistics"
	"github.com/vovakirdan/gunsim/internal/core"
)

// SimConfig contains all configuration for a gun simulation run.
type SimConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Gun     GunConfig     `yaml:"gun"`
	Bullets BulletsConfig `yaml:"bullets"`
}

// PhysicsConfig defines the loop timing.
type PhysicsConfig struct {
	FPS  int           `yaml:"fps"`  // Fixed ticks per simulated second
	Idle time.Duration `yaml:"idle"` // Sleep between frames, 0 = yield only
}

// GunConfig defines the gun and its firing policy.
type GunConfig struct {
	MuzzleVelocity float64 `yaml:"muzzle_velocity"` // m/s
	ShotRate       float64 `yaml:"shot_rate"`       // Shot chance per second, [0, 1]
	LaunchHeight   float64 `yaml:"launch_height"`   // m
}

// BulletsConfig defines what happens to landed bullets.
type BulletsConfig struct {
	Eviction   string `yaml:"eviction"`    // "keep", "grounded" or "cap"
	MaxBullets int    `yaml:"max_bullets"` // Used by "cap"
}

// Validation errors.
var (
	ErrInvalidFPS      = errors.New("config: fps must be positive")
	ErrInvalidShotRate = errors.New("config: shot_rate must be within [0, 1]")
	ErrInvalidHeight   = errors.New("config: launch_height must be finite and not negative")
	ErrInvalidVelocity = errors.New("config: muzzle_velocity must be finite and positive")
	ErrInvalidCap      = errors.New("config: max_bullets must be positive for eviction \"cap\"")
)

// Validate checks the config for values the simulation cannot run with.
func (c SimConfig) Validate() error {
	if c.Physics.FPS <= 0 {
		return ErrInvalidFPS
	}
	if c.Physics.Idle < 0 {
		return fmt.Errorf("config: idle must not be negative, got %v", c.Physics.Idle)
	}
	// NaN fails every comparison, so finiteness is checked explicitly.
	if !core.IsFinite(c.Gun.ShotRate) || c.Gun.ShotRate < 0 || c.Gun.ShotRate > 1 {
		return fmt.Errorf("%w, got %v", ErrInvalidShotRate, c.Gun.ShotRate)
	}
	if !core.IsFinite(c.Gun.LaunchHeight) || c.Gun.LaunchHeight < 0 {
		return ErrInvalidHeight
	}
	if !core.IsFinite(c.Gun.MuzzleVelocity) || c.Gun.MuzzleVelocity <= 0 {
		return ErrInvalidVelocity
	}
	policy, err := ballistics.ParseEvictionPolicy(c.Bullets.Eviction)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if policy == ballistics.EvictCap && c.Bullets.MaxBullets <= 0 {
		return ErrInvalidCap
	}
	return nil
}

// Eviction converts the bullets section into an eviction setting.
// Call Validate first; unknown policies fall back to keeping bullets.
func (c SimConfig) Eviction() ballistics.Eviction {
	policy, err := ballistics.ParseEvictionPolicy(c.Bullets.Eviction)
	if err != nil {
		policy = ballistics.EvictKeep
	}
	return ballistics.Eviction{
		Policy:     policy,
		MaxBullets: c.Bullets.MaxBullets,
	}
}
