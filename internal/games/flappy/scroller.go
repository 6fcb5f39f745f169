package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// Scroller is the cosmetic background offset. Gameplay never reads it.
type Scroller struct {
	X   float64
	cfg config.ScrollerConfig
}

// NewScroller creates a scroller at offset 0.
func NewScroller(cfg config.ScrollerConfig) *Scroller {
	return &Scroller{cfg: cfg}
}

// Update advances the offset and wraps it back to 0 past the threshold.
func (s *Scroller) Update() {
	s.X += s.cfg.Speed
	if s.X <= s.cfg.WrapAt {
		s.X = 0
	}
}
