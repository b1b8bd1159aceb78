package rules

import (
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome is the result of a game at a point in time
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "in_progress"
	}
}

// WinConditionChecker decides whether the player has won or lost
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// HasWon is true when no hostile unit is alive while at least one building
// stands and at least one friendly unit is alive.
func (wc *WinConditionChecker) HasWon(board *core.Board, entities []core.Entity) bool {
	friendly, hostile := countAlive(entities)
	return hostile == 0 && friendly > 0 && board.StandingBuildings() > 0
}

// HasLost is true when every building is destroyed or no friendly unit is
// alive. A board without buildings counts as lost.
func (wc *WinConditionChecker) HasLost(board *core.Board, entities []core.Entity) bool {
	friendly, _ := countAlive(entities)
	return board.StandingBuildings() == 0 || friendly == 0
}

// Evaluate checks for a win first, then a loss
func (wc *WinConditionChecker) Evaluate(board *core.Board, entities []core.Entity) Outcome {
	friendly, hostile := countAlive(entities)
	standing := board.StandingBuildings()

	outcome := InProgress
	switch {
	case wc.HasWon(board, entities):
		outcome = Won
	case wc.HasLost(board, entities):
		outcome = Lost
	}

	wc.logger.Debug().
		Int("friendly_alive", friendly).
		Int("hostile_alive", hostile).
		Int("buildings_standing", standing).
		Stringer("outcome", outcome).
		Msg("Win condition check complete")

	return outcome
}

func countAlive(entities []core.Entity) (friendly, hostile int) {
	for _, e := range entities {
		if !e.IsAlive() {
			continue
		}
		if e.IsFriendly() {
			friendly++
		} else {
			hostile++
		}
	}
	return friendly, hostile
}
