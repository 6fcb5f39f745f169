package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

const epsilon = 1e-9

func newTestBird(y float64) *Bird {
	cfg := config.DefaultFlappyConfig()
	return NewBird(cfg.Bird.X, y, cfg.Bird, cfg.Physics)
}

func TestBirdFlapOverridesVelocity(t *testing.T) {
	tests := []struct {
		name  string
		prior float64
	}{
		{"from rest", 0},
		{"from terminal velocity", 10},
		{"while ascending", -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBird(200)
			b.Velocity[1] = tc.prior
			b.Flap()
			if b.Velocity.Y() != -6 {
				t.Errorf("Flap() velocity = %v, expected -6", b.Velocity.Y())
			}
		})
	}
}

func TestBirdUpdateIntegratesOneStep(t *testing.T) {
	b := newTestBird(100)
	b.Update()

	if math.Abs(b.Velocity.Y()-0.4) > epsilon {
		t.Errorf("velocity = %v, expected 0.4", b.Velocity.Y())
	}
	if math.Abs(b.Position.Y()-100.4) > epsilon {
		t.Errorf("y = %v, expected 100.4", b.Position.Y())
	}
	if b.Position.X() != 100 || b.Velocity.X() != 0 {
		t.Errorf("horizontal state changed: pos %v vel %v", b.Position, b.Velocity)
	}
}

func TestBirdGravityMonotonicUntilTerminal(t *testing.T) {
	b := newTestBird(0)
	prev := b.Velocity.Y()
	reached := false

	for i := 0; i < 60; i++ {
		b.Update()
		v := b.Velocity.Y()

		if v < prev {
			t.Fatalf("tick %d: velocity decreased from %v to %v", i, prev, v)
		}
		if v > 10 {
			t.Fatalf("tick %d: velocity %v exceeds terminal velocity", i, v)
		}
		if reached && v != 10 {
			t.Fatalf("tick %d: velocity left the terminal clamp: %v", i, v)
		}
		if v == 10 {
			reached = true
		}
		prev = v
	}

	if !reached {
		t.Error("velocity never reached the terminal clamp")
	}
}

func TestBirdRotation(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		expected float64
	}{
		{"ascending clamps to min", -6, -0.5},
		{"slow fall scales", 2, 0.24},
		{"computed before terminal clamp", 10, 1.04},
		{"fast fall clamps to max", 20, 1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBird(200)
			b.Velocity[1] = tc.velocity
			b.Update()
			if math.Abs(b.Rotation-tc.expected) > epsilon {
				t.Errorf("Rotation = %v, expected %v", b.Rotation, tc.expected)
			}
		})
	}
}

func TestBirdTerminalClampAfterMove(t *testing.T) {
	b := newTestBird(100)
	b.Velocity[1] = 10
	b.Update()

	// The position uses the unclamped velocity of this step
	if math.Abs(b.Position.Y()-110.4) > epsilon {
		t.Errorf("y = %v, expected 110.4", b.Position.Y())
	}
	if b.Velocity.Y() != 10 {
		t.Errorf("velocity = %v, expected clamp to 10", b.Velocity.Y())
	}
}

func TestBirdBounds(t *testing.T) {
	b := newTestBird(225)
	bounds := b.Bounds()

	if bounds.X != 100 || bounds.Y != 225 || bounds.W != 34 || bounds.H != 24 {
		t.Errorf("Bounds() = %+v, expected {100 225 34 24}", bounds)
	}
	if b.Bounds() != bounds {
		t.Error("Bounds() should be deterministic")
	}
}
