package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

var skyBackground = lipgloss.Color("#87CEEB")

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle().Background(skyBackground),
	core.ColorSky:           lipgloss.NewStyle().Background(skyBackground),
	core.ColorCloud:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(skyBackground),
	core.ColorPipe:          lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Background(skyBackground),
	core.ColorPipeHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#66BB6A")).Background(skyBackground),
	core.ColorBird:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Background(skyBackground),
	core.ColorBeak:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B35")).Background(skyBackground),
	core.ColorGround:        lipgloss.NewStyle().Foreground(lipgloss.Color("#8B4513")).Background(lipgloss.Color("#6B3410")),
	core.ColorGrass:         lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")).Background(lipgloss.Color("#8B4513")),
	core.ColorText:          lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#000000")).Bold(true),
	core.ColorAlert:         lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5252")).Background(lipgloss.Color("#000000")).Bold(true),
	core.ColorMuted:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
