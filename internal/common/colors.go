package common

import (
	"image/color"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/config"
)

// Palette is the set of colours the graphical client draws with
type Palette struct {
	Background color.RGBA
	GridLines  color.RGBA
	Ground     color.RGBA
	Mountain   color.RGBA
	Building   color.RGBA
	Ruin       color.RGBA
	Friendly   color.RGBA
	Hostile    color.RGBA
	Text       color.RGBA

	MoveHighlight   color.RGBA
	AttackHighlight color.RGBA
	Selection       color.RGBA
	Hover           color.RGBA
	// Exhausted tints mechs that have already moved this turn
	Exhausted color.RGBA
}

// Fixed overlay colours
var (
	SelectionColor = color.RGBA{255, 255, 100, 255}
	HoverColor     = color.RGBA{255, 255, 255, 64}
)

// ExhaustedShift darkens mechs that can no longer move
const ExhaustedShift = -60

// NewPalette converts configured channels into colours. Out-of-range
// channels are clamped.
func NewPalette(c config.ColorsConfig) Palette {
	return Palette{
		Background:      RGB(c.Background),
		GridLines:       RGB(c.GridLines),
		Ground:          RGB(c.Ground),
		Mountain:        RGB(c.Mountain),
		Building:        RGB(c.Building),
		Ruin:            RGB(c.Ruin),
		Friendly:        RGB(c.Friendly),
		Hostile:         RGB(c.Hostile),
		Text:            RGB(c.Text),
		MoveHighlight:   RGBA(c.MoveHighlight),
		AttackHighlight: RGBA(c.AttackHighlight),
		Selection:       SelectionColor,
		Hover:           HoverColor,
		Exhausted:       Shift(RGB(c.Friendly), ExhaustedShift),
	}
}

// RGB builds an opaque colour
func RGB(ch [3]int) color.RGBA {
	return color.RGBA{channel(ch[0]), channel(ch[1]), channel(ch[2]), 255}
}

// RGBA builds a colour with alpha
func RGBA(ch [4]int) color.RGBA {
	return color.RGBA{channel(ch[0]), channel(ch[1]), channel(ch[2]), channel(ch[3])}
}

// Shift lightens (positive amount) or darkens c, keeping alpha
func Shift(c color.RGBA, amount int) color.RGBA {
	return color.RGBA{
		R: channel(int(c.R) + amount),
		G: channel(int(c.G) + amount),
		B: channel(int(c.B) + amount),
		A: c.A,
	}
}

func channel(v int) uint8 {
	return uint8(min(max(v, 0), 255))
}
