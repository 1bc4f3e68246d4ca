// Package ballistics models a gun firing projectiles into an environment
// under constant gravity.
package ballistics

import "github.com/vovakirdan/gunsim/internal/physics"

// Bullet is a fired projectile. Once it rests on the ground its horizontal
// motion is stopped as well, so a landed bullet becomes fully stationary.
type Bullet struct {
	Body physics.Body
}

// NewBullet creates a bullet launched horizontally from x = 0.
func NewBullet(height, horizontalVelocity float64) Bullet {
	return Bullet{
		Body: physics.Body{
			X:  0,
			Y:  height,
			VX: horizontalVelocity,
			VY: 0,
		},
	}
}

// Update advances the bullet by dt seconds.
func (b *Bullet) Update(dt float64) error {
	if err := physics.ValidateTimestep(dt); err != nil {
		return err
	}
	if b.Body.Grounded() {
		b.Body.VX = 0
	}
	return physics.Integrate(&b.Body, dt)
}

// Landed reports whether the bullet has come to rest on the ground.
func (b Bullet) Landed() bool {
	return b.Body.Stationary()
}
