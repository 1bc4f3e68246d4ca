package physics

import (
	"errors"
	"math"
	"testing"
)

const tick = 1.0 / 24.0

func TestIntegrateSingleStep(t *testing.T) {
	b := Body{X: 0, Y: 100, VX: 253, VY: 0}

	if err := Integrate(&b, tick); err != nil {
		t.Fatalf("Integrate() failed: %v", err)
	}

	if math.Abs(b.VY-(-0.40875)) > 1e-9 {
		t.Errorf("VY = %v, expected -0.40875", b.VY)
	}
	if math.Abs(b.Y-99.98296875) > 1e-9 {
		t.Errorf("Y = %v, expected 99.98296875", b.Y)
	}
	if math.Abs(b.X-253.0/24.0) > 1e-9 {
		t.Errorf("X = %v, expected %v", b.X, 253.0/24.0)
	}
	if b.VX != 253 {
		t.Errorf("VX = %v, horizontal velocity should be unchanged", b.VX)
	}
}

func TestIntegrateNoGravityOnGround(t *testing.T) {
	b := Body{X: 5, Y: 0, VX: 3, VY: 0}

	if err := b.Update(tick); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if b.VY != 0 || b.Y != 0 {
		t.Errorf("grounded body should stay at rest vertically, got Y=%v VY=%v", b.Y, b.VY)
	}
	if math.Abs(b.X-(5+3*tick)) > 1e-12 {
		t.Errorf("X = %v, expected %v", b.X, 5+3*tick)
	}
}

func TestIntegrateGroundClamp(t *testing.T) {
	// Falling fast enough to overshoot the ground in one step.
	b := Body{X: 0, Y: 0.01, VX: 10, VY: -50}

	if err := Integrate(&b, tick); err != nil {
		t.Fatalf("Integrate() failed: %v", err)
	}

	if b.Y != 0 {
		t.Errorf("Y = %v, expected clamp to 0", b.Y)
	}
	if b.VY != 0 {
		t.Errorf("VY = %v, expected 0 after touching ground", b.VY)
	}
}

func TestIntegrateInvalidTimestep(t *testing.T) {
	tests := []struct {
		name string
		dt   float64
	}{
		{"zero", 0},
		{"negative", -tick},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Body{X: 1, Y: 2, VX: 3, VY: 4}
			before := b

			err := Integrate(&b, tc.dt)
			if !errors.Is(err, ErrInvalidTimestep) {
				t.Errorf("Integrate(dt=%v) error = %v, expected ErrInvalidTimestep", tc.dt, err)
			}
			if b != before {
				t.Errorf("body mutated on invalid dt: %+v -> %+v", before, b)
			}
		})
	}
}

func TestIntegrateNeverBelowGround(t *testing.T) {
	b := Body{X: 0, Y: 100, VX: 253, VY: 0}

	for i := 0; i < 24*30; i++ {
		if err := Integrate(&b, tick); err != nil {
			t.Fatalf("Integrate() failed at tick %d: %v", i, err)
		}
		if b.Y < 0 {
			t.Fatalf("tick %d: Y = %v, expected >= 0", i, b.Y)
		}
		if b.Y == 0 && b.VY != 0 {
			t.Fatalf("tick %d: grounded body has VY = %v", i, b.VY)
		}
	}
}

func TestHorizontalLaunchTimeToGround(t *testing.T) {
	heights := []float64{1, 10, 100, 500}

	for _, h := range heights {
		b := Body{Y: h, VX: 253}
		ticks := 0
		for b.Airborne() {
			if err := Integrate(&b, tick); err != nil {
				t.Fatalf("Integrate() failed: %v", err)
			}
			ticks++
		}

		got := float64(ticks) * tick
		expected := TimeToGround(h)
		if math.Abs(got-expected) > tick {
			t.Errorf("h=%v: time to ground = %v, expected %v (±%v)", h, got, expected, tick)
		}
	}
}

func TestVerticalLaunchFlightTime(t *testing.T) {
	for _, vy0 := range []float64{5, 20, 50} {
		b := Body{Y: 0, VY: vy0}

		// First step lifts off the ground with no gravity applied yet.
		if err := Integrate(&b, tick); err != nil {
			t.Fatalf("Integrate() failed: %v", err)
		}
		ticks := 1
		for b.Airborne() {
			if err := Integrate(&b, tick); err != nil {
				t.Fatalf("Integrate() failed: %v", err)
			}
			ticks++
		}

		got := float64(ticks) * tick
		expected := FlightTime(vy0)
		if math.Abs(got-expected) > 2*tick {
			t.Errorf("vy0=%v: flight time = %v, expected %v (±%v)", vy0, got, expected, 2*tick)
		}
	}
}

func TestBodyPredicates(t *testing.T) {
	if !(Body{Y: 1}).Airborne() {
		t.Error("Y=1 should be airborne")
	}
	if !(Body{Y: 0, VX: 2}).Grounded() {
		t.Error("Y=0 should be grounded")
	}
	if (Body{Y: 0, VX: 2}).Stationary() {
		t.Error("moving grounded body should not be stationary")
	}
	if !(Body{}).Stationary() {
		t.Error("zero body should be stationary")
	}
}
