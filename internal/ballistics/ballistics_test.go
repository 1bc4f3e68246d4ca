package ballistics

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/gunsim/internal/physics"
)

const tick = 1.0 / 24.0

func TestGunShoot(t *testing.T) {
	g := NewGun(253)
	b := g.Shoot(100)

	expected := physics.Body{X: 0, Y: 100, VX: 253, VY: 0}
	if b.Body != expected {
		t.Errorf("Shoot(100) = %+v, expected %+v", b.Body, expected)
	}
	if g.MuzzleVelocity() != 253 {
		t.Errorf("MuzzleVelocity() = %v, expected 253", g.MuzzleVelocity())
	}
}

func TestBulletFirstTick(t *testing.T) {
	b := NewGun(253).Shoot(100)

	if err := b.Update(tick); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if math.Abs(b.Body.VY-(-0.40875)) > 1e-9 {
		t.Errorf("VY = %v, expected ≈ -0.40875", b.Body.VY)
	}
	if math.Abs(b.Body.Y-99.983) > 1e-3 {
		t.Errorf("Y = %v, expected ≈ 99.983", b.Body.Y)
	}
	if math.Abs(b.Body.X-10.54) > 1e-2 {
		t.Errorf("X = %v, expected ≈ 10.54", b.Body.X)
	}
}

func TestBulletGroundedFreeze(t *testing.T) {
	b := Bullet{Body: physics.Body{X: 42, Y: 0, VX: 253, VY: 0}}

	if err := b.Update(tick); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if b.Body.VX != 0 {
		t.Errorf("VX = %v, grounded bullet should stop", b.Body.VX)
	}
	if b.Body.X != 42 {
		t.Errorf("X = %v, grounded bullet should not move", b.Body.X)
	}
	if !b.Landed() {
		t.Error("grounded bullet with no velocity should be landed")
	}
}

func TestBulletHaltsTickAfterLanding(t *testing.T) {
	b := NewGun(253).Shoot(1)

	var landedAt float64 = -1
	for i := 0; i < 24*5; i++ {
		wasGrounded := b.Body.Grounded()
		if err := b.Update(tick); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
		if b.Body.Y < 0 {
			t.Fatalf("tick %d: Y = %v below ground", i, b.Body.Y)
		}
		if b.Body.Y == 0 && b.Body.VY != 0 {
			t.Fatalf("tick %d: grounded with VY = %v", i, b.Body.VY)
		}
		if wasGrounded && b.Body.VX != 0 {
			t.Fatalf("tick %d: VX = %v after starting grounded", i, b.Body.VX)
		}
		if !wasGrounded && b.Body.Grounded() && landedAt < 0 {
			landedAt = b.Body.X
		}
	}

	if landedAt < 0 {
		t.Fatal("bullet never landed")
	}
	// The touchdown tick still carries horizontal speed; nothing after it.
	if b.Body.X != landedAt {
		t.Errorf("X = %v, expected to stay at touchdown point %v", b.Body.X, landedAt)
	}
}

func TestBulletInvalidTimestep(t *testing.T) {
	b := Bullet{Body: physics.Body{Y: 0, VX: 10}}

	err := b.Update(0)
	if !errors.Is(err, physics.ErrInvalidTimestep) {
		t.Errorf("Update(0) error = %v, expected ErrInvalidTimestep", err)
	}
	if b.Body.VX != 10 {
		t.Errorf("VX = %v, invalid update must not mutate the bullet", b.Body.VX)
	}
}

func TestEnvironmentShootAndUpdate(t *testing.T) {
	env := NewEnvironment(253)
	env.ShootGun(100)
	env.ShootGun(100)
	env.ShootGun(100)

	if err := env.Update(tick); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if env.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", env.Len())
	}

	first := env.Bullet(0).Body
	for i := 1; i < env.Len(); i++ {
		if env.Bullet(i).Body != first {
			t.Errorf("bullet %d = %+v, expected identical to bullet 0 %+v", i, env.Bullet(i).Body, first)
		}
	}
	if env.Fired() != 3 {
		t.Errorf("Fired() = %d, expected 3", env.Fired())
	}
}

func TestEnvironmentKeepsOrder(t *testing.T) {
	env := NewEnvironment(100)
	for _, h := range []float64{10, 20, 30} {
		env.ShootGun(h)
	}

	for i := 0; i < 10; i++ {
		if err := env.Update(tick); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}

	bullets := env.Bullets(-1)
	for i := 1; i < len(bullets); i++ {
		if bullets[i].Body.Y <= bullets[i-1].Body.Y {
			t.Errorf("order changed: bullet %d Y=%v, bullet %d Y=%v", i-1, bullets[i-1].Body.Y, i, bullets[i].Body.Y)
		}
	}
}

func TestEnvironmentUpdateRejectsInvalidTimestep(t *testing.T) {
	env := NewEnvironment(253)
	env.ShootGun(100)

	err := env.Update(-1)
	if !errors.Is(err, physics.ErrInvalidTimestep) {
		t.Errorf("Update(-1) error = %v, expected ErrInvalidTimestep", err)
	}
}

func TestEnvironmentBulletsSnapshot(t *testing.T) {
	env := NewEnvironment(253)
	for i := 0; i < 5; i++ {
		env.ShootGun(100)
	}

	snap := env.Bullets(2)
	if len(snap) != 2 {
		t.Fatalf("Bullets(2) returned %d bullets", len(snap))
	}

	snap[0].Body.X = 999
	if env.Bullet(0).Body.X == 999 {
		t.Error("Bullets() should return a copy")
	}

	if len(env.Bullets(10)) != 5 {
		t.Errorf("Bullets(10) should be capped at Len()")
	}
	if len(env.Bullets(-1)) != 5 {
		t.Errorf("Bullets(-1) should return all bullets")
	}
}

func TestEvictionGrounded(t *testing.T) {
	env := NewEnvironment(253)
	env.SetEviction(Eviction{Policy: EvictGrounded})
	env.ShootGun(0.01) // lands on the first tick
	env.ShootGun(100)

	// Touchdown tick: still has VX, so it stays.
	if err := env.Update(tick); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if env.Len() != 2 {
		t.Fatalf("Len() = %d after touchdown tick, expected 2", env.Len())
	}

	// Next tick freezes it and it is evicted.
	if err := env.Update(tick); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if env.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1 after eviction", env.Len())
	}
	if !env.Bullet(0).Body.Airborne() {
		t.Error("surviving bullet should be the airborne one")
	}
	if env.Evicted() != 1 {
		t.Errorf("Evicted() = %d, expected 1", env.Evicted())
	}
}

func TestEvictionCap(t *testing.T) {
	env := NewEnvironment(253)
	env.SetEviction(Eviction{Policy: EvictCap, MaxBullets: 2})
	for _, h := range []float64{10, 20, 30, 40} {
		env.ShootGun(h)
	}

	if err := env.Update(tick); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if env.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", env.Len())
	}
	// Oldest are dropped; survivors keep their relative order.
	if env.Bullet(0).Body.Y < 29 || env.Bullet(1).Body.Y < 39 {
		t.Errorf("unexpected survivors: %+v, %+v", env.Bullet(0).Body, env.Bullet(1).Body)
	}
	if env.Evicted() != 2 {
		t.Errorf("Evicted() = %d, expected 2", env.Evicted())
	}
}

func TestParseEvictionPolicy(t *testing.T) {
	tests := []struct {
		in       string
		expected EvictionPolicy
		wantErr  bool
	}{
		{"", EvictKeep, false},
		{"keep", EvictKeep, false},
		{"grounded", EvictGrounded, false},
		{"cap", EvictCap, false},
		{"forever", "", true},
	}

	for _, tc := range tests {
		got, err := ParseEvictionPolicy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseEvictionPolicy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseEvictionPolicy(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
