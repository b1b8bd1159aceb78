package renderer

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/common"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
)

// Column offsets of the unit table, in pixels from the sidebar edge
var sidebarColumns = [4]int{8, 80, 140, 170}

const sidebarRowHeight = 20

// SidebarRenderer draws the unit table to the right of the board
type SidebarRenderer struct {
	x, width    int
	palette     common.Palette
	defaultFont font.Face
}

func NewSidebarRenderer(x, width int, palette common.Palette, f font.Face) *SidebarRenderer {
	return &SidebarRenderer{x: x, width: width, palette: palette, defaultFont: f}
}

// SetX moves the sidebar, e.g. when the board width changes
func (sr *SidebarRenderer) SetX(x int) { sr.x = x }

func (sr *SidebarRenderer) Draw(screen *ebiten.Image, rows []controller.SidebarRow) {
	if sr.defaultFont == nil || sr.width <= 0 {
		return
	}
	y := sidebarRowHeight
	for i, h := range controller.SidebarHeadings {
		text.Draw(screen, h, sr.defaultFont, sr.x+sidebarColumns[i], y, sr.palette.Text)
	}
	vector.StrokeLine(screen, float32(sr.x), float32(y+6), float32(sr.x+sr.width), float32(y+6), 1, sr.palette.GridLines, false)

	for _, row := range rows {
		y += sidebarRowHeight
		c := sr.palette.Hostile
		if row.Friendly {
			c = sr.palette.Friendly
			if !row.Active {
				c = sr.palette.Exhausted
			}
		}
		cells := [4]string{row.Unit, row.Coord, strconv.Itoa(row.Health), strconv.Itoa(row.Damage)}
		for i, s := range cells {
			text.Draw(screen, s, sr.defaultFont, sr.x+sidebarColumns[i], y, c)
		}
	}
}
