package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe is a pair of solid segments with a vertical gap between them.
type Pipe struct {
	X         float64 // Left edge
	Width     float64
	GapHeight float64
	TopHeight float64 // Height of the top segment, i.e. where the gap starts
	Speed     float64 // Horizontal displacement per tick, negative = left
	Passed    bool    // Set once the bird has cleared this pipe
}

// NewPipe creates a pipe at x with a gap placed uniformly in
// [margin, canvasHeight-gapHeight-margin).
// A canvas shorter than gapHeight+2*margin yields a gap outside that range;
// callers are expected to warn about such viewports instead.
func NewPipe(x, canvasHeight float64, cfg config.PipesConfig, rng *rand.Rand) *Pipe {
	minGapY := cfg.Margin
	maxGapY := canvasHeight - cfg.GapHeight - cfg.Margin

	return &Pipe{
		X:         x,
		Width:     cfg.Width,
		GapHeight: cfg.GapHeight,
		TopHeight: rng.Float64()*(maxGapY-minGapY) + minGapY,
		Speed:     cfg.Speed,
	}
}

// Update moves the pipe one tick to the left.
func (p *Pipe) Update() {
	p.X += p.Speed
}

// IsOffScreen reports whether the pipe's right edge has left the viewport.
func (p *Pipe) IsOffScreen() bool {
	return p.X+p.Width < 0
}

// HasPassedBird reports whether the pipe is newly behind birdX.
// It does not set Passed; the caller marks the pipe so it scores once.
func (p *Pipe) HasPassedBird(birdX float64) bool {
	return !p.Passed && p.X+p.Width < birdX
}

// TopBounds returns the hitbox of the top segment.
func (p *Pipe) TopBounds() core.Box {
	return core.NewBox(p.X, 0, p.Width, p.TopHeight)
}

// BottomBounds returns the hitbox of the bottom segment, which extends to the
// bottom of the canvas.
func (p *Pipe) BottomBounds(canvasHeight float64) core.Box {
	bottomY := p.TopHeight + p.GapHeight
	return core.NewBox(p.X, bottomY, p.Width, canvasHeight-bottomY)
}
