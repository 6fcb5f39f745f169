package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. The embedded YAML
// carries the same values; this is the fallback if it fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: PhysicsConfig{
			Gravity:          0.4,
			FlapImpulse:      -6,
			TerminalVelocity: 10,
			RotationFactor:   0.1,
			RotationMin:      -0.5,
			RotationMax:      1.5,
		},
		Bird: BirdConfig{
			X:      100,
			Width:  34,
			Height: 24,
		},
		Pipes: PipesConfig{
			Width:     52,
			GapHeight: 140,
			Speed:     -2,
			Margin:    50,
			Spacing:   200,
		},
		World: WorldConfig{
			GroundHeight: 50,
			Width:        800,
			Height:       450,
		},
		Scroller: ScrollerConfig{
			Speed:  -0.5,
			WrapAt: -100,
		},
		Loop: LoopConfig{
			FPS:    60,
			Mode:   StepPerFrame,
			StepHz: 60,
		},
		Storage: StorageConfig{
			HighScoreKey: "flappyBirdHighScore",
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
