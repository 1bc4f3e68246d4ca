package ballistics

// DefaultMuzzleVelocity is the muzzle velocity of a Colt M1911 in m/s.
const DefaultMuzzleVelocity = 253.0

// Gun fires bullets with a fixed muzzle velocity.
type Gun struct {
	muzzleVelocity float64
}

// NewGun creates a gun with the given muzzle velocity in m/s.
func NewGun(muzzleVelocity float64) Gun {
	return Gun{muzzleVelocity: muzzleVelocity}
}

// MuzzleVelocity returns the launch speed in m/s.
func (g Gun) MuzzleVelocity() float64 {
	return g.muzzleVelocity
}

// Shoot returns a new bullet leaving the muzzle at the given height.
func (g Gun) Shoot(height float64) Bullet {
	return NewBullet(height, g.muzzleVelocity)
}
