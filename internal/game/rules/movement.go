package rules

import "github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"

// ValidMovementPositions lists every cell the entity can reach this turn:
// on the board, not blocking, not occupied, not its own cell, and within
// speed steps. The result is sorted by (row, col). The scan never leaves the
// board, however large the speed.
func ValidMovementPositions(board *core.Board, occupied Occupancy, entity core.Entity) []core.Position {
	origin := entity.Position()
	speed := entity.Speed()
	// no cell on the board is further than Rows+Cols steps away
	reach := min(speed, board.Rows+board.Cols)

	var moves []core.Position
	for row := max(0, origin.Row-reach); row <= min(board.Rows-1, origin.Row+reach); row++ {
		for col := max(0, origin.Col-reach); col <= min(board.Cols-1, origin.Col+reach); col++ {
			p := core.Position{Row: row, Col: col}
			if p == origin || origin.DistanceTo(p) > speed {
				continue
			}
			if !passable(board, occupied, p) {
				continue
			}
			d := ShortestDistance(board, occupied, origin, p)
			if d != Unreachable && d <= speed {
				moves = append(moves, p)
			}
		}
	}
	return moves
}

// CanMoveTo reports whether dest is among the entity's valid movement positions
func CanMoveTo(board *core.Board, occupied Occupancy, entity core.Entity, dest core.Position) bool {
	origin := entity.Position()
	if dest == origin || !passable(board, occupied, dest) {
		return false
	}
	if origin.DistanceTo(dest) > entity.Speed() {
		return false
	}
	d := ShortestDistance(board, occupied, origin, dest)
	return d != Unreachable && d <= entity.Speed()
}
