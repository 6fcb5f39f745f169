package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Snapshot is a read-only copy of everything a presentation layer draws.
type Snapshot struct {
	Tick      uint64        `json:"tick"`
	Mode      Mode          `json:"mode"`
	Score     int           `json:"score"`
	HighScore int           `json:"highScore"`
	Viewport  core.Viewport `json:"viewport"`
	GroundY   float64       `json:"groundY"`
	ScrollX   float64       `json:"scrollX"`
	Bird      BirdView      `json:"bird"`
	Pipes     []PipeView    `json:"pipes"`
}

// BirdView is the drawable state of the bird.
type BirdView struct {
	Bounds    core.Box `json:"bounds"`
	VelocityY float64  `json:"velocityY"`
	Rotation  float64  `json:"rotation"`
}

// PipeView is the drawable state of one pipe.
type PipeView struct {
	Top    core.Box `json:"top"`
	Bottom core.Box `json:"bottom"`
	Passed bool     `json:"passed"`
}

// Snapshot captures the current state.
func (s *Simulation) Snapshot() Snapshot {
	pipes := make([]PipeView, len(s.pipes))
	for i, p := range s.pipes {
		pipes[i] = PipeView{
			Top:    p.TopBounds(),
			Bottom: p.BottomBounds(s.viewport.Height),
			Passed: p.Passed,
		}
	}

	return Snapshot{
		Tick:      s.tick,
		Mode:      s.mode,
		Score:     s.score,
		HighScore: s.highScore,
		Viewport:  s.viewport,
		GroundY:   s.groundY(),
		ScrollX:   s.scroller.X,
		Bird: BirdView{
			Bounds:    s.bird.Bounds(),
			VelocityY: s.bird.Velocity.Y(),
			Rotation:  s.bird.Rotation,
		},
		Pipes: pipes,
	}
}
