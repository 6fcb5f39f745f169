package flappy

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player-controlled kinematic body.
// Velocity.X() is always 0; the world scrolls past the bird instead.
type Bird struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Width    float64
	Height   float64
	Rotation float64 // Radians, cosmetic only

	physics config.PhysicsConfig
}

// NewBird creates a bird at (x, y) with zero velocity.
func NewBird(x, y float64, bird config.BirdConfig, physics config.PhysicsConfig) *Bird {
	return &Bird{
		Position: mgl64.Vec2{x, y},
		Width:    bird.Width,
		Height:   bird.Height,
		physics:  physics,
	}
}

// Flap sets the vertical velocity to the flap impulse, whatever it was before.
func (b *Bird) Flap() {
	b.Velocity[1] = b.physics.FlapImpulse
}

// Update integrates one fixed step.
// Rotation is derived from the velocity before the terminal clamp is applied.
func (b *Bird) Update() {
	b.Velocity[1] += b.physics.Gravity
	b.Position = b.Position.Add(b.Velocity)

	b.Rotation = mgl64.Clamp(b.Velocity.Y()*b.physics.RotationFactor, b.physics.RotationMin, b.physics.RotationMax)

	if b.Velocity.Y() > b.physics.TerminalVelocity {
		b.Velocity[1] = b.physics.TerminalVelocity
	}
}

// Bounds returns the bird's hitbox.
func (b *Bird) Bounds() core.Box {
	return core.NewBox(b.Position.X(), b.Position.Y(), b.Width, b.Height)
}
