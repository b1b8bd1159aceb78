package rules

import (
	"math"
	"testing"
	"time"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/stretchr/testify/assert"
)

func TestValidMovementPositions_OpenBoard(t *testing.T) {
	board := core.NewGroundBoard(3, 3)
	tank := core.NewTankMech(core.Position{Row: 1, Col: 1}, 5, 3, 3)

	moves := ValidMovementPositions(board, OccupiedBy([]core.Entity{tank}), tank)
	assert.Len(t, moves, 8)
	assert.NotContains(t, moves, tank.Position())
	assert.Equal(t, core.Position{Row: 0, Col: 0}, moves[0])
	assert.Equal(t, core.Position{Row: 2, Col: 2}, moves[len(moves)-1])
}

func TestValidMovementPositions_RespectsSpeed(t *testing.T) {
	board := core.NewGroundBoard(5, 5)
	scorpion := core.NewScorpion(core.Position{Row: 2, Col: 2}, 3, 1, 2)

	moves := ValidMovementPositions(board, OccupiedBy([]core.Entity{scorpion}), scorpion)
	assert.Equal(t, []core.Position{
		{Row: 1, Col: 2},
		{Row: 2, Col: 1},
		{Row: 2, Col: 3},
		{Row: 3, Col: 2},
	}, moves)
}

func TestValidMovementPositions_SkipsBlockedAndOccupied(t *testing.T) {
	board := core.MustParseBoard(
		" M ",
		"   ",
		"2  ",
	)
	tank := core.NewTankMech(core.Position{Row: 1, Col: 0}, 5, 2, 3)
	heal := core.NewHealMech(core.Position{Row: 1, Col: 1}, 5, 2, 1)
	entities := []core.Entity{tank, heal}

	moves := ValidMovementPositions(board, OccupiedBy(entities), tank)
	// (0,2), (1,2) and (2,1) are only reachable through the healer or the
	// mountain within two steps
	assert.Equal(t, []core.Position{{Row: 0, Col: 0}}, moves)
}

func TestValidMovementPositions_Sorted(t *testing.T) {
	board := core.NewGroundBoard(7, 7)
	f := core.NewFirefly(core.Position{Row: 3, Col: 3}, 3, 3, 1)
	moves := ValidMovementPositions(board, OccupiedBy([]core.Entity{f}), f)

	assert.Len(t, moves, 24)
	for i := 1; i < len(moves); i++ {
		assert.True(t, moves[i-1].Less(moves[i]), "moves must be sorted")
	}
}

func TestCanMoveTo(t *testing.T) {
	board := core.MustParseBoard("   M ")
	tank := core.NewTankMech(core.Position{Row: 0, Col: 0}, 5, 3, 3)
	occupied := OccupiedBy([]core.Entity{tank})

	assert.True(t, CanMoveTo(board, occupied, tank, core.Position{Row: 0, Col: 2}))
	assert.False(t, CanMoveTo(board, occupied, tank, core.Position{Row: 0, Col: 0}), "own cell")
	assert.False(t, CanMoveTo(board, occupied, tank, core.Position{Row: 0, Col: 3}), "mountain")
	assert.False(t, CanMoveTo(board, occupied, tank, core.Position{Row: 0, Col: 4}), "behind mountain")
	assert.False(t, CanMoveTo(board, occupied, tank, core.Position{Row: 1, Col: 0}), "off board")
}

func TestValidMovementPositions_SpeedBeyondBoard(t *testing.T) {
	board := core.MustParseBoard(
		"  M",
		"   ",
	)
	every := []core.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}

	tests := []struct {
		name  string
		speed int
	}{
		{"board sized", 3},
		{"huge", 100000},
		{"max int", math.MaxInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tank := core.NewTankMech(core.Position{Row: 0, Col: 0}, 3, tt.speed, 1)
			occupied := OccupiedBy([]core.Entity{tank})

			start := time.Now()
			moves := ValidMovementPositions(board, occupied, tank)
			assert.Less(t, time.Since(start), time.Second)
			assert.Equal(t, every, moves)
			assert.True(t, CanMoveTo(board, occupied, tank, core.Position{Row: 1, Col: 2}))
		})
	}
}
