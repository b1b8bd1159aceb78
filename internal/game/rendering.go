package game

import (
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
)

// This file contains all board rendering functionality for the model.

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"

	BgRed  = "\033[41m"
	BgBlue = "\033[44m"
)

const (
	emptySymbol     = "·"
	mountainSymbol  = "▲"
	buildingSymbol  = "⬢"
	destroyedSymbol = "x"
)

// Highlights marks cells to draw with a background colour
type Highlights struct {
	Move   []core.Position // drawn blue
	Attack []core.Position // drawn red
}

// Render returns a coloured text view of the board with units drawn over
// their tiles, followed by a legend and the unit records.
func (m *Model) Render(h Highlights) string {
	rows, cols := m.board.Dimensions()
	positions := m.EntityPositions()

	bg := make(map[core.Position]string, len(h.Move)+len(h.Attack))
	for _, p := range h.Move {
		bg[p] = BgBlue
	}
	for _, p := range h.Attack {
		bg[p] = BgRed
	}

	var sb strings.Builder
	// Each cell takes 2 chars plus up to ~15 chars of escape codes
	sb.Grow((cols*17+10)*(rows+4) + 64*len(m.entities))

	sb.WriteString("   ")
	for c := 0; c < cols; c++ {
		sb.WriteString(padInt(c, 2))
	}
	sb.WriteString("\n")

	for r := 0; r < rows; r++ {
		sb.WriteString(padInt(r, 2))
		sb.WriteString(" ")
		for c := 0; c < cols; c++ {
			p := core.Position{Row: r, Col: c}
			if b, ok := bg[p]; ok {
				sb.WriteString(b)
			}
			if e, ok := positions[p]; ok {
				writeEntityCell(&sb, e)
			} else {
				writeTileCell(&sb, m.board.Tile(p))
			}
			sb.WriteString(ColorReset)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(emptySymbol + "=ground " + mountainSymbol + "=mountain " +
		buildingSymbol + "N=building " + destroyedSymbol + "=ruin T/H=mechs S/F=enemies\n")
	sb.WriteString("turn ")
	sb.WriteString(strconv.Itoa(m.Turn()))
	sb.WriteString(" ")
	sb.WriteString(m.Phase().String())
	sb.WriteString("\n")
	for _, e := range m.entities {
		sb.WriteString(e.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// writeTileCell writes a two-column tile glyph
func writeTileCell(sb *strings.Builder, t core.Tile) {
	switch tile := t.(type) {
	case *core.Building:
		if tile.IsDestroyed() {
			sb.WriteString(ColorGray)
			sb.WriteString(" " + destroyedSymbol)
			return
		}
		sb.WriteString(ColorYellow)
		sb.WriteString(buildingSymbol)
		sb.WriteString(strconv.Itoa(tile.Health()))
	case core.Mountain:
		sb.WriteString(ColorGray)
		sb.WriteString(" " + mountainSymbol)
	default:
		sb.WriteString(ColorGray)
		sb.WriteString(" " + emptySymbol)
	}
}

// writeEntityCell writes the unit symbol and a health digit; 9+ shows as '+'
func writeEntityCell(sb *strings.Builder, e core.Entity) {
	if e.IsFriendly() {
		sb.WriteString(ColorGreen)
	} else {
		sb.WriteString(ColorRed)
	}
	sb.WriteRune(e.Symbol())
	if e.Health() > 9 {
		sb.WriteByte('+')
	} else {
		sb.WriteString(strconv.Itoa(e.Health()))
	}
}

func padInt(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
