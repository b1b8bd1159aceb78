package core

import (
	"fmt"
	"sort"
)

// Position represents a (row, column) cell on the game board
type Position struct {
	Row, Col int
}

// NewPosition creates a new position with the given row and column
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// FromIndex creates a position from a board array index using row-major ordering
func FromIndex(idx, cols int) Position {
	return Position{
		Row: idx / cols,
		Col: idx % cols,
	}
}

// IsValid checks if the position is within the given bounds
func (p Position) IsValid(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// ToIndex converts the position to a board array index using row-major ordering
func (p Position) ToIndex(cols int) int {
	return p.Row*cols + p.Col
}

// DistanceTo calculates the Manhattan distance to another position
func (p Position) DistanceTo(other Position) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// IsAdjacentTo checks if this position is orthogonally adjacent to another
func (p Position) IsAdjacentTo(other Position) bool {
	return p.DistanceTo(other) == 1
}

// PlusOffsets are the orthogonal steps used for adjacency and melee targeting.
var PlusOffsets = []Position{
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
	{Row: 1, Col: 0},
	{Row: -1, Col: 0},
}

// Neighbors returns the four orthogonal neighbors of this position.
// Neighbors may lie outside the board; callers check bounds.
func (p Position) Neighbors() []Position {
	neighbors := make([]Position, 0, len(PlusOffsets))
	for _, d := range PlusOffsets {
		neighbors = append(neighbors, p.Add(d))
	}
	return neighbors
}

// Add returns a new position that is the sum of this position and another
func (p Position) Add(other Position) Position {
	return Position{
		Row: p.Row + other.Row,
		Col: p.Col + other.Col,
	}
}

// Less orders positions by row, then column
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// SortPositions sorts positions ascending by (row, col) in place
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Less(ps[j]) })
}

// MaxPosition returns the lexicographically greatest position.
// ok is false when ps is empty.
func MaxPosition(ps []Position) (best Position, ok bool) {
	for i, p := range ps {
		if i == 0 || best.Less(p) {
			best = p
		}
	}
	return best, len(ps) > 0
}
