package game

import (
	"math/rand"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
)

// Order is a single move request for a friendly unit
type Order struct {
	Unit core.Friendly
	To   core.Position
}

// GenerateRandomOrders picks a random valid destination for some of the
// active mechs. This is a helper intended for demos, benchmarks, or a simple
// baseline player.
func GenerateRandomOrders(m *Model, rng *rand.Rand) []Order {
	var orders []Order
	for _, f := range m.FriendlyUnits() {
		if !f.IsActive() || rng.Float32() > 0.7 {
			continue
		}
		moves := m.ValidMovementPositions(f)
		if len(moves) == 0 {
			continue
		}
		to := moves[rng.Intn(len(moves))]
		orders = append(orders, Order{Unit: f, To: to})
		m.logger.Debug().
			Str("unit", f.Name()).
			Stringer("from", f.Position()).
			Stringer("to", to).
			Msg("Generated random order")
	}
	return orders
}

// ApplyOrders issues each order in turn and returns how many were accepted.
// Orders are checked against the board as it is when they are applied, so
// a later order can be refused because of an earlier one.
func ApplyOrders(m *Model, orders []Order) int {
	applied := 0
	for _, o := range orders {
		if m.AttemptMove(o.Unit, o.To) {
			applied++
		}
	}
	return applied
}
