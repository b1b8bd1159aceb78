package core

import (
	"fmt"
	"strings"
)

// Board is a fixed rectangular grid of tiles.
type Board struct {
	Rows, Cols int
	T          []Tile // length = Rows*Cols (row‑major)
}

// ParseBoard builds a board from layout lines, one character per column.
// Characters that do not describe a tile are dropped; the remaining rows
// must all have the same, non-zero length.
func ParseBoard(lines []string) (*Board, error) {
	if len(lines) == 0 {
		return nil, NewSnapshotError(0, "board has no rows")
	}

	cols := -1
	tiles := make([]Tile, 0, len(lines)*len(lines[0]))
	for i, line := range lines {
		rowLen := 0
		for _, r := range line {
			tile, ok := TileFromSymbol(r)
			if !ok {
				continue
			}
			tiles = append(tiles, tile)
			rowLen++
		}
		if rowLen == 0 {
			return nil, NewSnapshotError(i+1, "board row is empty")
		}
		if cols == -1 {
			cols = rowLen
		} else if rowLen != cols {
			return nil, NewSnapshotError(i+1, "board row has %d tiles, expected %d", rowLen, cols)
		}
	}

	return &Board{Rows: len(lines), Cols: cols, T: tiles}, nil
}

// MustParseBoard is ParseBoard for fixed layouts known to be valid
func MustParseBoard(lines ...string) *Board {
	b, err := ParseBoard(lines)
	if err != nil {
		panic(err)
	}
	return b
}

// NewGroundBoard creates a board of the given size covered in ground
func NewGroundBoard(rows, cols int) *Board {
	b := &Board{Rows: rows, Cols: cols, T: make([]Tile, rows*cols)}
	for i := range b.T {
		b.T[i] = Ground{}
	}
	return b
}

// Dimensions returns (rows, cols)
func (b *Board) Dimensions() (int, int) { return b.Rows, b.Cols }

// InBounds checks if a position is on the board
func (b *Board) InBounds(p Position) bool {
	return p.IsValid(b.Rows, b.Cols)
}

// Tile returns the tile at p. Out of bounds access is a programming error
// and panics.
func (b *Board) Tile(p Position) Tile {
	if !b.InBounds(p) {
		panic(fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, p, b.Rows, b.Cols))
	}
	return b.T[p.ToIndex(b.Cols)]
}

// SetTile replaces the tile at p. Used by level generation before play starts.
func (b *Board) SetTile(p Position, t Tile) {
	if !b.InBounds(p) {
		panic(fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, p, b.Rows, b.Cols))
	}
	b.T[p.ToIndex(b.Cols)] = t
}

// IsBlocking reports whether the tile at an in-bounds position blocks movement
func (b *Board) IsBlocking(p Position) bool {
	return b.Tile(p).IsBlocking()
}

// Building returns the building at p, if any
func (b *Board) Building(p Position) (*Building, bool) {
	if !b.InBounds(p) {
		return nil, false
	}
	bld, ok := b.T[p.ToIndex(b.Cols)].(*Building)
	return bld, ok
}

// Buildings maps every building position to its building, destroyed or not
func (b *Board) Buildings() map[Position]*Building {
	buildings := make(map[Position]*Building)
	for i, t := range b.T {
		if bld, ok := t.(*Building); ok {
			buildings[FromIndex(i, b.Cols)] = bld
		}
	}
	return buildings
}

// BuildingPositions returns building positions sorted by (row, col)
func (b *Board) BuildingPositions() []Position {
	var ps []Position
	for i, t := range b.T {
		if _, ok := t.(*Building); ok {
			ps = append(ps, FromIndex(i, b.Cols))
		}
	}
	return ps
}

// StandingBuildings counts buildings that are not destroyed
func (b *Board) StandingBuildings() int {
	n := 0
	for _, t := range b.T {
		if bld, ok := t.(*Building); ok && !bld.IsDestroyed() {
			n++
		}
	}
	return n
}

// Lines returns the board layout, one string per row
func (b *Board) Lines() []string {
	lines := make([]string, b.Rows)
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		sb.Reset()
		for c := 0; c < b.Cols; c++ {
			sb.WriteRune(b.T[r*b.Cols+c].Symbol())
		}
		lines[r] = sb.String()
	}
	return lines
}

// String returns the board layout with rows separated by newlines
func (b *Board) String() string {
	return strings.Join(b.Lines(), "\n")
}
