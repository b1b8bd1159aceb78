package game

import (
	"context"
	"strings"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/events"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/rules"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/states"
	"github.com/rs/zerolog"
)

// Model owns the board and the units of one level and drives its turns.
// The entity slice is kept in priority order: earlier units attack, plan and
// move first. A Model is not safe for concurrent use.
type Model struct {
	board    *core.Board
	entities []core.Entity
	moved    bool

	gameID        string
	logger        zerolog.Logger
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	winCondition  *rules.WinConditionChecker
	turnProcessor *TurnProcessor
}

// GameID returns the identifier attached to this model's events
func (m *Model) GameID() string { return m.gameID }

// Board returns the board. Callers must not replace tiles during play.
func (m *Model) Board() *core.Board { return m.board }

// Entities returns the units in priority order. The slice is a copy; the
// units are shared.
func (m *Model) Entities() []core.Entity {
	out := make([]core.Entity, len(m.entities))
	copy(out, m.entities)
	return out
}

// EventBus returns the bus this model publishes to
func (m *Model) EventBus() *events.EventBus { return m.eventBus }

// Turn returns the current turn number, starting at 1
func (m *Model) Turn() int { return m.stateMachine.GetContext().Turn }

// Phase returns the current turn phase
func (m *Model) Phase() states.TurnPhase { return m.stateMachine.CurrentPhase() }

// EntityPositions maps each occupied cell to its unit
func (m *Model) EntityPositions() map[core.Position]core.Entity {
	positions := make(map[core.Position]core.Entity, len(m.entities))
	for _, e := range m.entities {
		positions[e.Position()] = e
	}
	return positions
}

func (m *Model) occupancy() rules.OccupiedSet {
	return rules.OccupiedBy(m.entities)
}

// Distance is the shortest path length between two cells given the current
// units, or rules.Unreachable
func (m *Model) Distance(origin, dest core.Position) int {
	return rules.ShortestDistance(m.board, m.occupancy(), origin, dest)
}

// ValidMovementPositions lists the cells entity could move to, sorted by (row, col)
func (m *Model) ValidMovementPositions(entity core.Entity) []core.Position {
	return rules.ValidMovementPositions(m.board, m.occupancy(), entity)
}

// AttemptMove moves entity to pos if the move is legal and reports whether
// it happened. Friendly units must be active and are disabled by moving.
// Illegal moves leave the model unchanged.
func (m *Model) AttemptMove(entity core.Entity, pos core.Position) bool {
	if entity == nil {
		return false
	}
	if reason, ok := m.checkMove(entity, pos); !ok {
		m.logger.Debug().
			Str("unit", entity.String()).
			Stringer("to", pos).
			Str("reason", reason).
			Msg("Move rejected")
		m.eventBus.Publish(events.NewMoveRejectedEvent(m.gameID, m.Turn(), entity, pos, reason))
		return false
	}

	from := entity.Position()
	entity.SetPosition(pos)
	if f, ok := entity.(core.Friendly); ok {
		f.Disable()
	}
	m.moved = true

	m.logger.Debug().
		Str("unit", entity.Name()).
		Stringer("from", from).
		Stringer("to", pos).
		Msg("Move executed")
	m.eventBus.Publish(events.NewMoveExecutedEvent(m.gameID, m.Turn(), entity, from, pos))
	return true
}

func (m *Model) checkMove(entity core.Entity, pos core.Position) (string, bool) {
	if m.Phase().IsTerminal() {
		return core.ErrGameOver.Error(), false
	}
	if !m.contains(entity) {
		return "unit is not on this board", false
	}
	if f, ok := entity.(core.Friendly); ok && !f.IsActive() {
		return "unit has already moved this turn", false
	}
	if !rules.CanMoveTo(m.board, m.occupancy(), entity, pos) {
		return "destination is not reachable", false
	}
	return "", true
}

func (m *Model) contains(entity core.Entity) bool {
	for _, e := range m.entities {
		if e == entity {
			return true
		}
	}
	return false
}

// ReadyToSave is true when no unit has moved since the last end of turn
func (m *Model) ReadyToSave() bool {
	return !m.moved
}

// AssignObjectives lets every hostile unit pick its objective
func (m *Model) AssignObjectives() {
	buildings := m.board.Buildings()
	for _, e := range m.entities {
		h, ok := e.(core.Hostile)
		if !ok {
			continue
		}
		h.UpdateObjective(m.entities, buildings)
		m.eventBus.Publish(events.NewObjectiveAssignedEvent(m.gameID, m.Turn(), h))
	}
}

// MoveEnemies walks each hostile unit, in priority order, to the valid cell
// closest to its objective. Ties go to the bottom-most, then right-most cell.
// Units without an objective, without moves, or with no cell connected to
// their objective stay put. Returns how many units moved.
func (m *Model) MoveEnemies() int {
	moved := 0
	for _, e := range m.entities {
		h, ok := e.(core.Hostile)
		if !ok {
			continue
		}
		dest, ok := m.chooseEnemyMove(h)
		if !ok {
			continue
		}
		if m.AttemptMove(h, dest) {
			moved++
		}
	}
	return moved
}

func (m *Model) chooseEnemyMove(h core.Hostile) (core.Position, bool) {
	candidates := m.ValidMovementPositions(h)
	objective, ok := h.Objective()
	if !ok || len(candidates) == 0 {
		return core.Position{}, false
	}

	occupied := m.occupancy()
	best := rules.Unreachable
	var choice core.Position
	// candidates are ascending, so <= keeps the greatest position on ties
	for _, c := range candidates {
		d := rules.ShortestDistance(m.board, occupied, objective, c)
		if d == rules.Unreachable {
			continue
		}
		if best == rules.Unreachable || d <= best {
			best = d
			choice = c
		}
	}
	return choice, best != rules.Unreachable
}

// attackResult summarizes one unit's attack
type attackResult struct {
	hits               int
	buildingsDestroyed int
}

// MakeAttack applies entity's attack to every target cell: units there are
// attacked, otherwise buildings are damaged by its strength.
func (m *Model) MakeAttack(entity core.Entity) {
	m.makeAttack(entity)
}

func (m *Model) makeAttack(entity core.Entity) attackResult {
	var result attackResult
	positions := m.EntityPositions()
	for _, target := range entity.Targets() {
		if occupant, ok := positions[target]; ok {
			entity.Attack(occupant)
			result.hits++
			m.eventBus.Publish(events.NewAttackResolvedEvent(
				m.gameID, m.Turn(), entity, target, events.TargetUnit, occupant.Health()))
			continue
		}
		building, ok := m.board.Building(target)
		if !ok {
			continue
		}
		wasDestroyed := building.IsDestroyed()
		building.Damage(entity.Strength())
		result.hits++
		m.eventBus.Publish(events.NewAttackResolvedEvent(
			m.gameID, m.Turn(), entity, target, events.TargetBuilding, building.Health()))
		if !wasDestroyed && building.IsDestroyed() {
			result.buildingsDestroyed++
			m.logger.Debug().Stringer("position", target).Msg("Building destroyed")
			m.eventBus.Publish(events.NewBuildingDestroyedEvent(m.gameID, m.Turn(), target))
		}
	}
	return result
}

// removeDead drops dead units, preserving the order of the rest
func (m *Model) removeDead() []core.Entity {
	var dead []core.Entity
	alive := m.entities[:0]
	for _, e := range m.entities {
		if e.IsAlive() {
			alive = append(alive, e)
		} else {
			dead = append(dead, e)
		}
	}
	for i := len(alive); i < len(m.entities); i++ {
		m.entities[i] = nil
	}
	m.entities = alive
	return dead
}

// enableMechs reactivates every friendly unit
func (m *Model) enableMechs() {
	for _, e := range m.entities {
		if f, ok := e.(core.Friendly); ok {
			f.Enable()
		}
	}
}

// EndTurn resolves the turn: attacks, removal of the dead, enemy planning and
// movement, then mech reactivation. A cancelled ctx is only honoured before
// resolution starts; once started the turn always completes.
func (m *Model) EndTurn(ctx context.Context) error {
	return m.turnProcessor.ProcessTurn(ctx)
}

// HasWon is true when every enemy is gone, a building stands and a mech lives
func (m *Model) HasWon() bool {
	return m.winCondition.HasWon(m.board, m.entities)
}

// HasLost is true when every building is destroyed or every mech is dead
func (m *Model) HasLost() bool {
	return m.winCondition.HasLost(m.board, m.entities)
}

// Outcome reports a win before a loss
func (m *Model) Outcome() rules.Outcome {
	return m.winCondition.Evaluate(m.board, m.entities)
}

// Stats summarizes the current level
func (m *Model) Stats() Stats {
	return computeStats(m.board, m.entities)
}

// String renders the model as a snapshot: the board, a blank line, then
// one record per unit in priority order
func (m *Model) String() string {
	var sb strings.Builder
	sb.WriteString(m.board.String())
	sb.WriteString("\n\n")
	for i, e := range m.entities {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// FriendlyUnits returns the player's units in priority order
func (m *Model) FriendlyUnits() []core.Friendly {
	var out []core.Friendly
	for _, e := range m.entities {
		if f, ok := e.(core.Friendly); ok {
			out = append(out, f)
		}
	}
	return out
}

// EntityAt returns the unit standing on p, if any
func (m *Model) EntityAt(p core.Position) (core.Entity, bool) {
	for _, e := range m.entities {
		if e.Position() == p {
			return e, true
		}
	}
	return nil, false
}

// ActiveMechs returns the positions of mechs that can still move, sorted
func (m *Model) ActiveMechs() []core.Position {
	var ps []core.Position
	for _, f := range m.FriendlyUnits() {
		if f.IsActive() {
			ps = append(ps, f.Position())
		}
	}
	core.SortPositions(ps)
	return ps
}
