package controller

import "github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"

// Layout maps between screen pixels and board cells
type Layout struct {
	TileSize int
	OffsetX  int
	OffsetY  int
	Rows     int
	Cols     int
}

// CellAt returns the cell under the pixel (x, y)
func (l Layout) CellAt(x, y int) (core.Position, bool) {
	if l.TileSize <= 0 {
		return core.Position{}, false
	}
	x -= l.OffsetX
	y -= l.OffsetY
	if x < 0 || y < 0 {
		return core.Position{}, false
	}
	p := core.Position{Row: y / l.TileSize, Col: x / l.TileSize}
	if p.Row >= l.Rows || p.Col >= l.Cols {
		return core.Position{}, false
	}
	return p, true
}

// Origin returns the top-left pixel of a cell
func (l Layout) Origin(p core.Position) (x, y int) {
	return l.OffsetX + p.Col*l.TileSize, l.OffsetY + p.Row*l.TileSize
}

// Size is the pixel size of the board
func (l Layout) Size() (w, h int) {
	return l.Cols * l.TileSize, l.Rows * l.TileSize
}
