package core

// Terminal cells are mapped onto a logical pixel grid so the simulation can run
// with the same pixel constants in a terminal as in a browser.
const (
	CellWidthPx  = 8
	CellHeightPx = 16
)

// Viewport is the drawable surface size in logical pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ViewportForCells returns the logical pixel viewport for a terminal grid.
func ViewportForCells(cols, rows int) Viewport {
	return Viewport{
		Width:  float64(cols * CellWidthPx),
		Height: float64(rows * CellHeightPx),
	}
}

// Valid reports whether the viewport is at least minHeight tall and has a
// positive width. Smaller viewports are a known limitation: the simulation
// still runs but gap placement is undefined.
func (v Viewport) Valid(minHeight float64) bool {
	return v.Width > 0 && v.Height >= minHeight
}

// Aspect16x9 fits the largest 16:9 area into a container of the given size.
func Aspect16x9(containerW, containerH float64) Viewport {
	const aspect = 16.0 / 9.0

	w := containerW
	h := containerW / aspect
	if h > containerH {
		h = containerH
		w = containerH * aspect
	}
	return Viewport{Width: w, Height: h}
}

// RuntimeConfig contains configuration passed to the presentation layer.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second (default 60)
	Seed     int64 // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// Viewport returns the logical pixel viewport for the configured screen.
func (c RuntimeConfig) Viewport() Viewport {
	return ViewportForCells(c.ScreenW, c.ScreenH)
}
