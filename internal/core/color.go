package core

// Color names the palette entry of a screen cell. The platform layer maps each
// entry to a concrete terminal color.
type Color uint8

// Palette entries for game elements.
const (
	ColorDefault Color = iota
	ColorSky
	ColorCloud
	ColorPipe
	ColorPipeHighlight
	ColorBird
	ColorBeak
	ColorGround
	ColorGrass
	ColorText
	ColorAlert
	ColorMuted
)
