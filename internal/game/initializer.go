package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/events"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/rules"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/states"
	"github.com/rs/zerolog"
)

// ModelConfig describes a level to load into a Model
type ModelConfig struct {
	Board    *core.Board
	Entities []core.Entity // priority order

	// GameID tags published events; a random one is generated when empty
	GameID string
	Logger zerolog.Logger
	// EventBus is created when nil
	EventBus *events.EventBus
	// LogEvents attaches a structured-log subscriber to the bus
	LogEvents bool
}

// ModelInitializer handles the construction of a Model
type ModelInitializer struct {
	config ModelConfig
	logger zerolog.Logger
}

// NewModelInitializer creates a new model initializer
func NewModelInitializer(cfg ModelConfig) *ModelInitializer {
	return &ModelInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "BreachModel").Logger(),
	}
}

// NewModel validates the level and builds a Model awaiting orders for turn 1
func NewModel(ctx context.Context, cfg ModelConfig) (*Model, error) {
	return NewModelInitializer(cfg).Initialize(ctx)
}

// Initialize creates and initializes a new model
func (mi *ModelInitializer) Initialize(ctx context.Context) (*Model, error) {
	select {
	case <-ctx.Done():
		mi.logger.Error().Err(ctx.Err()).Msg("Model creation cancelled or timed out")
		return nil, ctx.Err()
	default:
	}

	if err := mi.validateLevel(); err != nil {
		return nil, fmt.Errorf("invalid level: %w", err)
	}

	mi.setupDefaults()

	model := mi.createModel()
	mi.setupEventHandling(model)

	stats := model.Stats()
	model.eventBus.Publish(events.NewGameStartedEvent(
		model.gameID,
		mi.config.Board.Rows,
		mi.config.Board.Cols,
		stats.FriendlyAlive,
		stats.HostileAlive,
		stats.BuildingsStanding,
	))

	mi.logger.Info().
		Str("game_id", model.gameID).
		Int("rows", mi.config.Board.Rows).
		Int("cols", mi.config.Board.Cols).
		Int("entities", len(mi.config.Entities)).
		Msg("Model created successfully")

	return model, nil
}

// validateLevel checks that every unit stands on its own in-bounds cell
func (mi *ModelInitializer) validateLevel() error {
	if mi.config.Board == nil {
		return fmt.Errorf("%w: no board", core.ErrMalformedSnapshot)
	}
	seen := make(map[core.Position]core.Entity, len(mi.config.Entities))
	for _, e := range mi.config.Entities {
		if e == nil {
			return fmt.Errorf("%w: nil entity", core.ErrMalformedSnapshot)
		}
		if !mi.config.Board.InBounds(e.Position()) {
			return core.WrapEntityError(e, "placement", core.ErrOutOfBounds)
		}
		if other, ok := seen[e.Position()]; ok {
			return core.WrapEntityError(e, "placement",
				fmt.Errorf("%w: cell already holds %s", core.ErrMalformedSnapshot, other.Name()))
		}
		seen[e.Position()] = e
	}
	return nil
}

// setupDefaults fills in optional configuration
func (mi *ModelInitializer) setupDefaults() {
	if mi.config.GameID == "" {
		mi.config.GameID = uuid.NewString()
	}
	if mi.config.EventBus == nil {
		mi.logger.Debug().Msg("No event bus provided, creating one")
		mi.config.EventBus = events.NewEventBus(mi.logger)
	}
}

// createModel wires the model with its collaborators
func (mi *ModelInitializer) createModel() *Model {
	gameContext := states.NewGameContext(mi.config.GameID, mi.logger)
	stateMachine := states.NewStateMachine(gameContext, mi.config.EventBus)

	entities := make([]core.Entity, len(mi.config.Entities))
	copy(entities, mi.config.Entities)

	model := &Model{
		board:        mi.config.Board,
		entities:     entities,
		gameID:       mi.config.GameID,
		logger:       mi.logger.With().Str("game_id", mi.config.GameID).Logger(),
		eventBus:     mi.config.EventBus,
		stateMachine: stateMachine,
		winCondition: rules.NewWinConditionChecker(mi.logger),
	}
	model.turnProcessor = NewTurnProcessor(model)
	return model
}

// setupEventHandling attaches the optional event logger
func (mi *ModelInitializer) setupEventHandling(model *Model) {
	if !mi.config.LogEvents {
		return
	}
	model.eventBus.Subscribe(subscribers.NewLoggerSubscriber(
		"event_logger_"+model.gameID, mi.config.Logger, zerolog.DebugLevel))
}
