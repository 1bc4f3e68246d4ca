// Package physics implements point-mass integration under constant gravity
// with a flat ground plane at y = 0.
package physics

import (
	"errors"
	"math"

	"github.com/vovakirdan/gunsim/internal/core"
)

// GravityAcceleration is the vertical acceleration applied to airborne
// bodies, in meters per second squared.
const GravityAcceleration = -9.81

// ErrInvalidTimestep is returned when a step is requested with a
// non-positive or non-finite dt.
var ErrInvalidTimestep = errors.New("physics: invalid timestep")

// Body is a 2D point mass. Positions are in meters, velocities in meters
// per second. Y is height above the ground and never goes negative.
type Body struct {
	X  float64
	Y  float64
	VX float64
	VY float64
}

// Airborne reports whether the body is above the ground.
func (b Body) Airborne() bool {
	return b.Y > 0
}

// Grounded reports whether the body rests on the ground.
func (b Body) Grounded() bool {
	return b.Y == 0
}

// Stationary reports whether the body is grounded with no velocity left.
func (b Body) Stationary() bool {
	return b.Grounded() && b.VX == 0 && b.VY == 0
}

// ValidateTimestep checks that dt can drive a deterministic step.
func ValidateTimestep(dt float64) error {
	if !core.IsFinite(dt) || dt <= 0 {
		return ErrInvalidTimestep
	}
	return nil
}

// Integrate advances b by dt seconds using semi-implicit Euler:
// velocity first (gravity only while airborne), then position with the
// new velocity, then the ground clamp.
// The body is left untouched when dt is invalid.
func Integrate(b *Body, dt float64) error {
	if err := ValidateTimestep(dt); err != nil {
		return err
	}

	if b.Y > 0 {
		b.VY += GravityAcceleration * dt
	}

	b.X += b.VX * dt
	b.Y += b.VY * dt

	if b.Y <= 0 {
		b.VY = 0
		b.Y = math.Max(b.Y, 0)
	}
	return nil
}

// Update is a method form of Integrate.
func (b *Body) Update(dt float64) error {
	return Integrate(b, dt)
}

// TimeToGround returns the closed-form fall time from height h with zero
// initial vertical velocity.
func TimeToGround(h float64) float64 {
	if h <= 0 {
		return 0
	}
	return math.Sqrt(2 * h / -GravityAcceleration)
}

// FlightTime returns the closed-form airborne time of a launch from the
// ground with upward velocity vy0.
func FlightTime(vy0 float64) float64 {
	if vy0 <= 0 {
		return 0
	}
	return 2 * vy0 / -GravityAcceleration
}
