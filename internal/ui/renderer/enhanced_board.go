package renderer

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/common"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
)

// EnhancedBoardRenderer adds move/attack highlights, hover and the focus
// border on top of the plain board
type EnhancedBoardRenderer struct {
	*BoardRenderer

	// Selection state
	selected     core.Position
	hasSelection bool

	// Hover state
	hover    core.Position
	hasHover bool

	highlights    []core.Position
	highlightKind controller.HighlightKind
}

func NewEnhancedBoardRenderer(layout controller.Layout, palette common.Palette, f font.Face) *EnhancedBoardRenderer {
	return &EnhancedBoardRenderer{
		BoardRenderer: NewBoardRenderer(layout, palette, f),
	}
}

func (ebr *EnhancedBoardRenderer) SetSelection(p core.Position, hasSelection bool) {
	ebr.selected = p
	ebr.hasSelection = hasSelection
}

func (ebr *EnhancedBoardRenderer) SetHover(p core.Position, ok bool) {
	ebr.hover = p
	ebr.hasHover = ok
}

func (ebr *EnhancedBoardRenderer) SetHighlights(cells []core.Position, kind controller.HighlightKind) {
	ebr.highlights = cells
	ebr.highlightKind = kind
}

func (ebr *EnhancedBoardRenderer) Draw(screen *ebiten.Image, board *core.Board, entities []core.Entity) {
	// First draw the base board
	ebr.BoardRenderer.Draw(screen, board, entities)

	// Then draw overlays
	ebr.drawOverlays(screen)
}

func (ebr *EnhancedBoardRenderer) drawOverlays(screen *ebiten.Image) {
	var c color.Color
	switch ebr.highlightKind {
	case controller.HighlightMove:
		c = ebr.palette.MoveHighlight
	case controller.HighlightAttack:
		c = ebr.palette.AttackHighlight
	}
	if c != nil {
		for _, p := range ebr.highlights {
			ebr.drawTileOverlay(screen, p, c)
		}
	}

	if ebr.hasHover {
		ebr.drawTileOverlay(screen, ebr.hover, ebr.palette.Hover)
	}

	if ebr.hasSelection {
		ebr.drawSelectionBorder(screen, ebr.selected)
	}
}

func (ebr *EnhancedBoardRenderer) drawTileOverlay(screen *ebiten.Image, p core.Position, c color.Color) {
	x, y, size := ebr.cellRect(p)
	vector.DrawFilledRect(screen, x, y, size, size, c, false)
}

func (ebr *EnhancedBoardRenderer) drawSelectionBorder(screen *ebiten.Image, p core.Position) {
	x, y, size := ebr.cellRect(p)
	thickness := float32(3)
	c := ebr.palette.Selection

	// Top
	vector.DrawFilledRect(screen, x, y, size, thickness, c, false)
	// Bottom
	vector.DrawFilledRect(screen, x, y+size-thickness, size, thickness, c, false)
	// Left
	vector.DrawFilledRect(screen, x, y, thickness, size, c, false)
	// Right
	vector.DrawFilledRect(screen, x+size-thickness, y, thickness, size, c, false)
}
