package rules

import (
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// Unreachable is returned by ShortestDistance when no path exists
const Unreachable = -1

// Occupancy reports whether a cell holds a unit
type Occupancy interface {
	IsOccupied(p core.Position) bool
}

// OccupiedSet is an Occupancy backed by a set of positions
type OccupiedSet struct {
	cells mapset.Set[core.Position]
}

// NewOccupiedSet builds an occupancy set from unit positions
func NewOccupiedSet(positions ...core.Position) OccupiedSet {
	cells := mapset.New[core.Position]()
	for _, p := range positions {
		cells.Put(p)
	}
	return OccupiedSet{cells: cells}
}

// OccupiedBy collects the positions of the given entities
func OccupiedBy(entities []core.Entity) OccupiedSet {
	cells := mapset.New[core.Position]()
	for _, e := range entities {
		cells.Put(e.Position())
	}
	return OccupiedSet{cells: cells}
}

func (o OccupiedSet) IsOccupied(p core.Position) bool {
	return o.cells.Has(p)
}

func (o OccupiedSet) Len() int {
	return o.cells.Size()
}

type frontierNode struct {
	pos  core.Position
	cost int
}

// ShortestDistance returns the number of steps on the shortest 4-connected
// path from origin to dest. Every cell entered must be on the board, free of
// units and not blocking; origin itself is exempt. Returns Unreachable when
// dest cannot be reached.
func ShortestDistance(board *core.Board, occupied Occupancy, origin, dest core.Position) int {
	if origin == dest {
		return 0
	}

	frontier := heap.New(func(a, b frontierNode) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}
		return a.pos.Less(b.pos)
	})
	settled := mapset.New[core.Position]()
	frontier.Push(frontierNode{pos: origin})

	for {
		node, ok := frontier.Pop()
		if !ok {
			return Unreachable
		}
		if settled.Has(node.pos) {
			continue
		}
		if node.pos == dest {
			return node.cost
		}
		settled.Put(node.pos)

		for _, next := range node.pos.Neighbors() {
			if settled.Has(next) || !passable(board, occupied, next) {
				continue
			}
			frontier.Push(frontierNode{pos: next, cost: node.cost + 1})
		}
	}
}

// passable reports whether a unit may step onto p
func passable(board *core.Board, occupied Occupancy, p core.Position) bool {
	return board.InBounds(p) && !board.IsBlocking(p) && !occupied.IsOccupied(p)
}
