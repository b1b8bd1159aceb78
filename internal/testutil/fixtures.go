package testutil

import (
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
)

// Pos is shorthand for core.Position in table tests
func Pos(row, col int) core.Position {
	return core.Position{Row: row, Col: col}
}

// TankVsEnemy is a 3x5 board with a TankMech (strength 2) at (1,0) and a
// generic Enemy (health 5) in range at (1,3). A building at (0,4) keeps the
// level from being lost.
func TankVsEnemy() (*core.Board, *core.TankMech, *core.Enemy) {
	board := core.MustParseBoard(
		"    5",
		"     ",
		"     ",
	)
	tank := core.NewTankMech(Pos(1, 0), 3, 2, 2)
	enemy := core.NewEnemy(Pos(1, 3), 5, 0, 1)
	return board, tank, enemy
}

// WonLevel has one standing building, one mech and no enemies
func WonLevel() (*core.Board, []core.Entity) {
	board := core.MustParseBoard(
		"3  ",
		"   ",
		"   ",
	)
	return board, []core.Entity{core.NewTankMech(Pos(2, 2), 3, 2, 1)}
}

// DuelLevel is a 5x5 level with two mechs, two enemies, buildings and
// mountains. It is the level used by the snapshot round-trip tests.
const DuelLevel = "  M 3\n" +
	" 2   \n" +
	"  M  \n" +
	"5   M\n" +
	"     \n" +
	"\n" +
	"T,4,0,3,3,2\n" +
	"H,4,4,3,2,1\n" +
	"S,0,0,3,3,1\n" +
	"F,2,4,2,2,1"

// DuelEntities returns fresh units matching DuelLevel, in priority order
func DuelEntities() []core.Entity {
	return []core.Entity{
		core.NewTankMech(Pos(4, 0), 3, 3, 2),
		core.NewHealMech(Pos(4, 4), 3, 2, 1),
		core.NewScorpion(Pos(0, 0), 3, 3, 1),
		core.NewFirefly(Pos(2, 4), 2, 2, 1),
	}
}

// DuelBoard returns a fresh board matching DuelLevel
func DuelBoard() *core.Board {
	return core.MustParseBoard(
		"  M 3",
		" 2   ",
		"  M  ",
		"5   M",
		"     ",
	)
}
