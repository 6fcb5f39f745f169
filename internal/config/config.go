// Package config provides YAML-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all tunable parameters of the simulation and its loop.
type FlappyConfig struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Bird     BirdConfig     `yaml:"bird"`
	Pipes    PipesConfig    `yaml:"pipes"`
	World    WorldConfig    `yaml:"world"`
	Scroller ScrollerConfig `yaml:"scroller"`
	Loop     LoopConfig     `yaml:"loop"`
	Storage  StorageConfig  `yaml:"storage"`
}

// PhysicsConfig defines the bird's integration constants. All values are per tick.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	FlapImpulse      float64 `yaml:"flap_impulse"`      // Negative = up
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Max downward speed
	RotationFactor   float64 `yaml:"rotation_factor"`   // Radians per unit of velocity
	RotationMin      float64 `yaml:"rotation_min"`
	RotationMax      float64 `yaml:"rotation_max"`
}

// BirdConfig defines the bird's hitbox and spawn column.
type BirdConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PipesConfig defines obstacle geometry and cadence.
type PipesConfig struct {
	Width     float64 `yaml:"width"`
	GapHeight float64 `yaml:"gap_height"`
	Speed     float64 `yaml:"speed"`   // Negative = leftward
	Margin    float64 `yaml:"margin"`  // Minimum distance of the gap from top and bottom
	Spacing   int     `yaml:"spacing"` // Ticks between spawns
}

// WorldConfig defines the static playfield.
type WorldConfig struct {
	GroundHeight float64 `yaml:"ground_height"`
	Width        float64 `yaml:"width"`  // Default viewport width in pixels
	Height       float64 `yaml:"height"` // Default viewport height in pixels
}

// ScrollerConfig defines the cosmetic background motion.
type ScrollerConfig struct {
	Speed  float64 `yaml:"speed"`
	WrapAt float64 `yaml:"wrap_at"` // Offset resets to 0 once it is <= this value
}

// StepMode selects how real time is turned into simulation steps.
type StepMode string

const (
	// StepPerFrame runs exactly one logical step per frame callback.
	StepPerFrame StepMode = "frame"
	// StepFixed accumulates elapsed wall-clock time into fixed-size steps.
	StepFixed StepMode = "fixed"
)

// LoopConfig defines the frame loop.
type LoopConfig struct {
	FPS    int      `yaml:"fps"`
	Mode   StepMode `yaml:"mode"`
	StepHz int      `yaml:"step_hz"` // Only used in fixed mode
}

// StorageConfig defines the persisted state surface.
type StorageConfig struct {
	HighScoreKey string `yaml:"high_score_key"`
}

// MinViewportHeight returns the smallest viewport height at which a pipe gap
// can be placed with the configured margins above the ground.
func (c FlappyConfig) MinViewportHeight() float64 {
	return c.Pipes.GapHeight + 2*c.Pipes.Margin + c.World.GroundHeight
}

// Validate checks for values that would make the simulation meaningless.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Bird.Width <= 0 || c.Bird.Height <= 0 {
		errs = append(errs, fmt.Errorf("bird size must be positive, got %vx%v", c.Bird.Width, c.Bird.Height))
	}
	if c.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("physics.gravity must be positive, got %v", c.Physics.Gravity))
	}
	if c.Physics.FlapImpulse >= 0 {
		errs = append(errs, fmt.Errorf("physics.flap_impulse must be negative, got %v", c.Physics.FlapImpulse))
	}
	if c.Physics.RotationMin > c.Physics.RotationMax {
		errs = append(errs, fmt.Errorf("physics.rotation_min %v exceeds rotation_max %v", c.Physics.RotationMin, c.Physics.RotationMax))
	}
	if c.Pipes.Width <= 0 || c.Pipes.GapHeight <= 0 {
		errs = append(errs, fmt.Errorf("pipe size must be positive, got width %v gap %v", c.Pipes.Width, c.Pipes.GapHeight))
	}
	if c.Pipes.Speed >= 0 {
		errs = append(errs, fmt.Errorf("pipes.speed must be negative, got %v", c.Pipes.Speed))
	}
	if c.Pipes.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("pipes.spacing must be positive, got %d", c.Pipes.Spacing))
	}
	if c.Loop.FPS <= 0 {
		errs = append(errs, fmt.Errorf("loop.fps must be positive, got %d", c.Loop.FPS))
	}
	switch c.Loop.Mode {
	case StepPerFrame:
	case StepFixed:
		if c.Loop.StepHz <= 0 {
			errs = append(errs, fmt.Errorf("loop.step_hz must be positive in fixed mode, got %d", c.Loop.StepHz))
		}
	default:
		errs = append(errs, fmt.Errorf("loop.mode must be %q or %q, got %q", StepPerFrame, StepFixed, c.Loop.Mode))
	}
	if c.Storage.HighScoreKey == "" {
		errs = append(errs, errors.New("storage.high_score_key must not be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
