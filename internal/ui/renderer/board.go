package renderer

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/common"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
)

// BuildingHueShift lightens the inner square of a standing building
const BuildingHueShift = 30

type BoardRenderer struct {
	layout          controller.Layout
	palette         common.Palette
	defaultFont     font.Face
	showCoordinates bool
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(layout controller.Layout, palette common.Palette, f font.Face) *BoardRenderer {
	return &BoardRenderer{layout: layout, palette: palette, defaultFont: f}
}

// SetLayout updates the board geometry, e.g. after loading a level of a
// different size
func (br *BoardRenderer) SetLayout(l controller.Layout) { br.layout = l }

// SetShowCoordinates toggles the cell coordinate labels
func (br *BoardRenderer) SetShowCoordinates(show bool) { br.showCoordinates = show }

// Draw renders the tiles and then the units on top of them.
func (br *BoardRenderer) Draw(screen *ebiten.Image, board *core.Board, entities []core.Entity) {
	if board == nil {
		return
	}

	for i, tile := range board.T {
		p := core.FromIndex(i, board.Cols)
		br.drawTile(screen, p, tile)
	}
	br.drawGrid(screen)

	for _, e := range entities {
		if e.IsAlive() {
			br.drawEntity(screen, e)
		}
	}
}

func (br *BoardRenderer) cellRect(p core.Position) (x, y, size float32) {
	sx, sy := br.layout.Origin(p)
	return float32(sx), float32(sy), float32(br.layout.TileSize)
}

func (br *BoardRenderer) drawTile(screen *ebiten.Image, p core.Position, tile core.Tile) {
	x, y, size := br.cellRect(p)

	switch t := tile.(type) {
	case core.Mountain:
		vector.DrawFilledRect(screen, x, y, size, size, br.palette.Mountain, false)

	case *core.Building:
		vector.DrawFilledRect(screen, x, y, size, size, br.palette.Ground, false)
		if t.IsDestroyed() {
			m := size / 2
			vector.DrawFilledRect(screen, x+(size-m)/2, y+(size-m)/2, m, m, br.palette.Ruin, false)
			return
		}
		m := size * 2 / 3
		vector.DrawFilledRect(screen, x+(size-m)/2, y+(size-m)/2, m, m, br.palette.Building, false)
		inner := m / 2
		vector.DrawFilledRect(screen, x+(size-inner)/2, y+(size-inner)/2, inner, inner,
			common.Shift(br.palette.Building, BuildingHueShift), false)
		br.drawCentred(screen, strconv.Itoa(t.Health()), p, color.Black)

	default:
		vector.DrawFilledRect(screen, x, y, size, size, br.palette.Ground, false)
	}

	if br.showCoordinates && br.defaultFont != nil {
		text.Draw(screen, strconv.Itoa(p.Row)+","+strconv.Itoa(p.Col), br.defaultFont,
			int(x)+2, int(y)+12, br.palette.Text)
	}
}

func (br *BoardRenderer) drawGrid(screen *ebiten.Image) {
	w, h := br.layout.Size()
	ox, oy := float32(br.layout.OffsetX), float32(br.layout.OffsetY)
	size := float32(br.layout.TileSize)
	for r := 0; r <= br.layout.Rows; r++ {
		y := oy + float32(r)*size
		vector.StrokeLine(screen, ox, y, ox+float32(w), y, 1, br.palette.GridLines, false)
	}
	for c := 0; c <= br.layout.Cols; c++ {
		x := ox + float32(c)*size
		vector.StrokeLine(screen, x, oy, x, oy+float32(h), 1, br.palette.GridLines, false)
	}
}

// drawEntity draws a unit as a disc with its symbol and health
func (br *BoardRenderer) drawEntity(screen *ebiten.Image, e core.Entity) {
	x, y, size := br.cellRect(e.Position())

	fill := br.palette.Hostile
	if f, ok := e.(core.Friendly); ok {
		fill = br.palette.Friendly
		if !f.IsActive() {
			fill = br.palette.Exhausted
		}
	}
	vector.DrawFilledCircle(screen, x+size/2, y+size/2, size*0.38, fill, true)

	label := string(e.Symbol()) + strconv.Itoa(e.Health())
	br.drawCentred(screen, label, e.Position(), br.palette.Text)
}

func (br *BoardRenderer) drawCentred(screen *ebiten.Image, s string, p core.Position, c color.Color) {
	if br.defaultFont == nil {
		return
	}
	x, y, size := br.cellRect(p)

	b := text.BoundString(br.defaultFont, s)
	textW := b.Max.X - b.Min.X
	textH := b.Max.Y - b.Min.Y

	tx := int(x) + (int(size)-textW)/2
	ty := int(y) + (int(size)+textH)/2
	text.Draw(screen, s, br.defaultFont, tx, ty, c)
}
