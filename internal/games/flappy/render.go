package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	BeakChar      = '▶'
	BeakUpChar    = '↗'
	BeakDownChar  = '↘'
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	GrassChar     = '▒'
	GroundChar    = '▓'
	CloudChar     = '░'
)

// Cosmetic geometry in world pixels.
const (
	pipeCapOverhang = 4
	pipeHighlightX  = 4
	grassHeight     = 10
	cloudCount      = 3
	cloudSpacing    = 200
	cloudWidth      = 85
	cloudBaseY      = 50
	cloudStepY      = 30
)

// Render draws a snapshot into dst, scaling world pixels to screen cells.
func Render(dst *core.Screen, snap Snapshot, paused bool) {
	dst.Clear()
	if snap.Viewport.Width <= 0 || snap.Viewport.Height <= 0 {
		return
	}

	p := projector{
		sx: float64(dst.Width()) / snap.Viewport.Width,
		sy: float64(dst.Height()) / snap.Viewport.Height,
	}

	drawClouds(dst, p, snap)
	for _, pipe := range snap.Pipes {
		drawPipe(dst, p, pipe)
	}
	drawGround(dst, p, snap)
	drawBird(dst, p, snap.Bird)

	if snap.Mode == ModePlaying || snap.Mode == ModeGameOver {
		dst.DrawTextCentered(1, fmt.Sprintf(" %d ", snap.Score), core.ColorText)
	}

	switch {
	case paused:
		drawCenteredMessage(dst, core.ColorText, "PAUSED", "Press P to resume")
	case snap.Mode == ModeWaiting:
		drawCenteredMessage(dst, core.ColorText,
			Title,
			"Press SPACE, click or tap to start",
			fmt.Sprintf("High Score: %d", snap.HighScore))
	case snap.Mode == ModeGameOver:
		drawCenteredMessage(dst, core.ColorAlert,
			"Game Over",
			fmt.Sprintf("Score: %d", snap.Score),
			fmt.Sprintf("Best: %d", snap.HighScore),
			"Press SPACE, click or tap to restart")
	}
}

// projector maps world pixels onto screen cells.
type projector struct {
	sx, sy float64
}

// rect converts a world box to the cells it covers.
func (p projector) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * p.sx))
	y0 := int(math.Floor(b.Y * p.sy))
	x1 := int(math.Ceil(b.Right() * p.sx))
	y1 := int(math.Ceil(b.Bottom() * p.sy))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func (p projector) col(x float64) int {
	return int(math.Floor(x * p.sx))
}

func (p projector) row(y float64) int {
	return int(math.Floor(y * p.sy))
}

// drawClouds places three clouds whose x follows the scroller offset.
func drawClouds(dst *core.Screen, p projector, snap Snapshot) {
	span := snap.Viewport.Width + 100
	for i := 0; i < cloudCount; i++ {
		x := math.Mod(snap.ScrollX+float64(i*cloudSpacing), span)
		y := float64(cloudBaseY + i*cloudStepY)
		dst.DrawHLine(p.col(x), p.row(y), core.Max(1, p.col(x+cloudWidth)-p.col(x)), CloudChar, core.ColorCloud)
	}
}

func drawPipe(dst *core.Screen, p projector, pipe PipeView) {
	top := p.rect(pipe.Top)
	bottom := p.rect(pipe.Bottom)

	dst.DrawRect(top, PipeChar, core.ColorPipe)
	dst.DrawRect(bottom, PipeChar, core.ColorPipe)

	highlight := p.col(pipe.Top.X + pipeHighlightX)
	for y := top.Y; y < top.Bottom(); y++ {
		dst.SetColored(highlight, y, PipeChar, core.ColorPipeHighlight)
	}
	for y := bottom.Y; y < bottom.Bottom(); y++ {
		dst.SetColored(highlight, y, PipeChar, core.ColorPipeHighlight)
	}

	capX := p.col(pipe.Top.X - pipeCapOverhang)
	capW := p.col(pipe.Top.Right()+pipeCapOverhang) - capX
	if top.H > 0 {
		dst.DrawHLine(capX, top.Bottom()-1, capW, PipeCapTop, core.ColorPipe)
	}
	dst.DrawHLine(capX, bottom.Y, capW, PipeCapBottom, core.ColorPipe)
}

func drawGround(dst *core.Screen, p projector, snap Snapshot) {
	groundRow := p.row(snap.GroundY)
	grassRows := core.Max(1, p.row(snap.GroundY+grassHeight)-groundRow)

	for y := groundRow; y < dst.Height(); y++ {
		ch, c := GroundChar, core.ColorGround
		if y < groundRow+grassRows {
			ch, c = GrassChar, core.ColorGrass
		}
		dst.DrawHLine(0, y, dst.Width(), ch, c)
	}
}

func drawBird(dst *core.Screen, p projector, bird BirdView) {
	r := p.rect(bird.Bounds)
	dst.DrawRect(r, BirdChar, core.ColorBird)

	beak := BeakChar
	switch {
	case bird.Rotation < -0.2:
		beak = BeakUpChar
	case bird.Rotation > 0.6:
		beak = BeakDownChar
	}
	dst.SetColored(r.Right()-1, r.Y+r.H/2, beak, core.ColorBeak)
}

// drawCenteredMessage draws a boxed message in the center of the screen.
func drawCenteredMessage(dst *core.Screen, c core.Color, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	longest := 0
	for _, line := range lines {
		longest = core.Max(longest, len([]rune(line)))
	}

	boxW := longest + 4
	boxH := len(lines)*2 + 1
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorText)
	dst.DrawBox(box, c)

	for i, line := range lines {
		x := boxX + (boxW-len([]rune(line)))/2
		dst.DrawTextColored(x, boxY+1+i*2, line, c)
	}
}
