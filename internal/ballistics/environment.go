package ballistics

import (
	"fmt"
)

// EvictionPolicy decides which bullets leave the environment after a tick.
type EvictionPolicy string

const (
	// EvictKeep never removes bullets. The collection grows without bound.
	EvictKeep EvictionPolicy = "keep"

	// EvictGrounded removes bullets once they are stationary on the ground.
	EvictGrounded EvictionPolicy = "grounded"

	// EvictCap keeps at most MaxBullets, dropping the oldest first.
	EvictCap EvictionPolicy = "cap"
)

// ParseEvictionPolicy converts a config/flag value into a policy.
// An empty string selects EvictKeep.
func ParseEvictionPolicy(s string) (EvictionPolicy, error) {
	switch EvictionPolicy(s) {
	case "", EvictKeep:
		return EvictKeep, nil
	case EvictGrounded:
		return EvictGrounded, nil
	case EvictCap:
		return EvictCap, nil
	default:
		return "", fmt.Errorf("ballistics: unknown eviction policy %q", s)
	}
}

// Eviction configures bullet removal.
type Eviction struct {
	Policy     EvictionPolicy
	MaxBullets int // Only used by EvictCap
}

// Environment owns a gun and the bullets it has fired.
// Bullet order is insertion order and is stable across updates; the index
// of a bullet is its display row.
type Environment struct {
	gun      Gun
	bullets  []Bullet
	eviction Eviction

	fired   int
	evicted int
}

// NewEnvironment creates an environment with a gun of the given muzzle
// velocity that never evicts bullets.
func NewEnvironment(muzzleVelocity float64) *Environment {
	return &Environment{
		gun:      NewGun(muzzleVelocity),
		eviction: Eviction{Policy: EvictKeep},
	}
}

// SetEviction changes the eviction policy for subsequent updates.
func (e *Environment) SetEviction(ev Eviction) {
	if ev.Policy == "" {
		ev.Policy = EvictKeep
	}
	e.eviction = ev
}

// Gun returns the environment's gun.
func (e *Environment) Gun() Gun {
	return e.gun
}

// ShootGun fires a bullet from the given height and appends it.
func (e *Environment) ShootGun(height float64) {
	e.bullets = append(e.bullets, e.gun.Shoot(height))
	e.fired++
}

// Update advances every bullet by the same dt, in order, then applies the
// eviction policy.
func (e *Environment) Update(dt float64) error {
	for i := range e.bullets {
		if err := e.bullets[i].Update(dt); err != nil {
			return fmt.Errorf("bullet %d: %w", i, err)
		}
	}
	e.evict()
	return nil
}

// evict removes bullets per policy, preserving the order of survivors.
func (e *Environment) evict() {
	switch e.eviction.Policy {
	case EvictGrounded:
		kept := e.bullets[:0]
		for _, b := range e.bullets {
			if b.Landed() {
				e.evicted++
				continue
			}
			kept = append(kept, b)
		}
		clear(e.bullets[len(kept):])
		e.bullets = kept

	case EvictCap:
		limit := e.eviction.MaxBullets
		if limit < 0 {
			limit = 0
		}
		if over := len(e.bullets) - limit; over > 0 {
			e.evicted += over
			e.bullets = append(e.bullets[:0], e.bullets[over:]...)
		}
	}
}

// Len returns the number of live bullets.
func (e *Environment) Len() int {
	return len(e.bullets)
}

// Bullet returns the bullet at index i.
func (e *Environment) Bullet(i int) Bullet {
	return e.bullets[i]
}

// Bullets returns a copy of up to limit bullets from the front of the
// collection. A negative limit copies all of them.
func (e *Environment) Bullets(limit int) []Bullet {
	n := len(e.bullets)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]Bullet, n)
	copy(out, e.bullets[:n])
	return out
}

// Fired returns the total number of shots since creation.
func (e *Environment) Fired() int {
	return e.fired
}

// Evicted returns the number of bullets removed by the eviction policy.
func (e *Environment) Evicted() int {
	return e.evicted
}
