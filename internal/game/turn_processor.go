package game

import (
	"context"
	"time"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/events"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/rules"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single end of turn
type TurnProcessor struct {
	model  *Model
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(model *Model) *TurnProcessor {
	return &TurnProcessor{
		model:  model,
		logger: model.logger,
	}
}

// turnSummary collects what happened during one resolution
type turnSummary struct {
	attacks            int
	destroyed          int
	buildingsDestroyed int
	enemiesMoved       int
}

// ProcessTurn resolves the current turn
func (tp *TurnProcessor) ProcessTurn(ctx context.Context) error {
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return err
	}

	if err := tp.validateGameState(); err != nil {
		return err
	}

	turn := tp.model.Turn()
	turnLogger := tp.logger.With().Int("turn", turn).Logger()
	turnLogger.Debug().Msg("Starting end of turn")

	if err := tp.model.stateMachine.TransitionTo(states.PhaseResolving, "end turn"); err != nil {
		return core.WrapTurnError(turn, tp.model.Phase().String(), err)
	}

	turnStartTime := time.Now()
	tp.publishTurnStarted(turn)

	// Nothing below can fail, so a started turn always completes
	var summary turnSummary
	tp.processAttackPhase(&summary, turnLogger)
	tp.processEnemyPhase(&summary, turnLogger)
	tp.processEndOfTurnPhase(turnLogger)

	outcome := tp.model.Outcome()
	if err := tp.finishTurn(outcome); err != nil {
		return core.WrapTurnError(turn, states.PhaseResolving.String(), err)
	}

	tp.publishTurnEnded(turn, summary, turnStartTime)
	if outcome != rules.InProgress {
		tp.publishGameEnded(turn, outcome)
	}

	turnLogger.Debug().
		Int("attacks", summary.attacks).
		Int("destroyed", summary.destroyed).
		Int("buildings_destroyed", summary.buildingsDestroyed).
		Int("enemies_moved", summary.enemiesMoved).
		Stringer("outcome", outcome).
		Msg("End of turn finished")
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.model.Turn()).
			Str("phase", phase).
			Msg("End of turn cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the level can still be played
func (tp *TurnProcessor) validateGameState() error {
	currentPhase := tp.model.Phase()
	if currentPhase.IsTerminal() {
		tp.logger.Warn().
			Int("turn", tp.model.Turn()).
			Str("current_phase", currentPhase.String()).
			Msg("Attempted to end a turn after the level was decided")
		return core.WrapTurnError(tp.model.Turn(), currentPhase.String(), core.ErrGameOver)
	}
	return nil
}

// processAttackPhase lets every living unit attack in priority order, then
// removes the dead. Units killed earlier in the pass do not attack.
func (tp *TurnProcessor) processAttackPhase(summary *turnSummary, turnLogger zerolog.Logger) {
	attackers := tp.model.Entities()
	for _, e := range attackers {
		if !e.IsAlive() {
			continue
		}
		result := tp.model.makeAttack(e)
		summary.attacks += result.hits
		summary.buildingsDestroyed += result.buildingsDestroyed
	}

	dead := tp.model.removeDead()
	summary.destroyed = len(dead)
	for _, e := range dead {
		turnLogger.Debug().Str("unit", e.String()).Msg("Unit destroyed")
		tp.model.eventBus.Publish(events.NewEntityDestroyedEvent(tp.model.gameID, tp.model.Turn(), e))
	}
}

// processEnemyPhase plans and moves every hostile unit
func (tp *TurnProcessor) processEnemyPhase(summary *turnSummary, turnLogger zerolog.Logger) {
	tp.model.AssignObjectives()
	summary.enemiesMoved = tp.model.MoveEnemies()
	turnLogger.Debug().Int("enemies_moved", summary.enemiesMoved).Msg("Enemy phase finished")
}

// processEndOfTurnPhase reactivates mechs and reopens saving
func (tp *TurnProcessor) processEndOfTurnPhase(turnLogger zerolog.Logger) {
	tp.model.enableMechs()
	tp.model.moved = false
	turnLogger.Debug().Int("mechs", len(tp.model.FriendlyUnits())).Msg("Mechs reactivated")
}

// finishTurn moves the state machine out of Resolving
func (tp *TurnProcessor) finishTurn(outcome rules.Outcome) error {
	switch outcome {
	case rules.Won:
		return tp.model.stateMachine.TransitionTo(states.PhaseVictory, "all enemies destroyed")
	case rules.Lost:
		return tp.model.stateMachine.TransitionTo(states.PhaseDefeat, "buildings or mechs destroyed")
	default:
		return tp.model.stateMachine.TransitionTo(states.PhaseAwaitingOrders, "turn resolved")
	}
}

func (tp *TurnProcessor) publishTurnStarted(turn int) {
	tp.model.eventBus.Publish(events.NewTurnStartedEvent(tp.model.gameID, turn))
}

func (tp *TurnProcessor) publishTurnEnded(turn int, summary turnSummary, startTime time.Time) {
	tp.model.eventBus.Publish(events.NewTurnEndedEvent(
		tp.model.gameID,
		turn,
		summary.attacks,
		summary.destroyed,
		summary.enemiesMoved,
		time.Since(startTime),
	))
}

func (tp *TurnProcessor) publishGameEnded(turn int, outcome rules.Outcome) {
	elapsed := tp.model.stateMachine.GetContext().GetElapsedTime()
	tp.logger.Info().
		Stringer("outcome", outcome).
		Int("final_turn", turn).
		Dur("duration", elapsed).
		Msg("Level finished")
	tp.model.eventBus.Publish(events.NewGameEndedEvent(tp.model.gameID, outcome.String(), elapsed, turn))
}
