package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// 80x24 cells at 8x16 px per cell.
var renderViewport = core.Viewport{Width: 640, Height: 384}

func playingSnapshot() Snapshot {
	return Snapshot{
		Mode:     ModePlaying,
		Score:    3,
		Viewport: renderViewport,
		GroundY:  334,
		Bird: BirdView{
			Bounds: core.NewBox(100, 192, 34, 24),
		},
		Pipes: []PipeView{{
			Top:    core.NewBox(320, 0, 52, 96),
			Bottom: core.NewBox(320, 236, 52, 148),
		}},
	}
}

func TestRenderWaitingOverlay(t *testing.T) {
	sim := New(config.DefaultFlappyConfig(), renderViewport, nil, 1)
	screen := core.NewScreen(80, 24)

	Render(screen, sim.Snapshot(), false)
	out := screen.String()

	for _, want := range []string{"Flappy Bird", "Press SPACE, click or tap to start", "High Score: 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("waiting screen missing %q", want)
		}
	}
	if strings.Contains(out, "Game Over") {
		t.Error("waiting screen shows the game over overlay")
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	snap := playingSnapshot()
	snap.Mode = ModeGameOver
	snap.HighScore = 9
	screen := core.NewScreen(80, 24)

	Render(screen, snap, false)
	out := screen.String()

	for _, want := range []string{"Game Over", "Score: 3", "Best: 9"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestRenderPausedOverlay(t *testing.T) {
	screen := core.NewScreen(80, 24)
	Render(screen, playingSnapshot(), true)

	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused screen should show PAUSED")
	}
}

func TestRenderPlayfield(t *testing.T) {
	screen := core.NewScreen(80, 24)
	Render(screen, playingSnapshot(), false)

	tests := []struct {
		name string
		x, y int
		want rune
	}{
		{"bird body", 12, 12, BirdChar},
		{"beak level", 16, 13, BeakChar},
		{"top pipe", 43, 2, PipeChar},
		{"top cap", 43, 5, PipeCapTop},
		{"cap overhang", 39, 5, PipeCapTop},
		{"bottom cap", 43, 14, PipeCapBottom},
		{"bottom pipe", 43, 16, PipeChar},
		{"gap", 43, 10, ' '},
		{"grass", 0, 20, GrassChar},
		{"ground", 79, 23, GroundChar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := screen.Get(tc.x, tc.y); got != tc.want {
				t.Errorf("Get(%d, %d) = %q, expected %q", tc.x, tc.y, got, tc.want)
			}
		})
	}

	if !strings.Contains(screen.Row(1), " 3 ") {
		t.Errorf("score HUD missing from row 1: %q", screen.Row(1))
	}
	if c := screen.GetCell(40, 2).Color; c != core.ColorPipeHighlight {
		t.Errorf("highlight column color = %v, expected pipe highlight", c)
	}
}

func TestRenderBeakFollowsRotation(t *testing.T) {
	tests := []struct {
		rotation float64
		want     rune
	}{
		{-0.5, BeakUpChar},
		{0, BeakChar},
		{1.5, BeakDownChar},
	}

	for _, tc := range tests {
		snap := playingSnapshot()
		snap.Bird.Rotation = tc.rotation
		screen := core.NewScreen(80, 24)
		Render(screen, snap, false)

		if got := screen.Get(16, 13); got != tc.want {
			t.Errorf("rotation %v: beak = %q, expected %q", tc.rotation, got, tc.want)
		}
	}
}

func TestRenderEmptyViewport(t *testing.T) {
	screen := core.NewScreen(10, 5)
	screen.Set(0, 0, 'x')

	Render(screen, Snapshot{}, false)

	if strings.TrimSpace(strings.ReplaceAll(screen.String(), "\n", "")) != "" {
		t.Error("empty viewport should render a blank screen")
	}
}
