package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides level-specific information to states
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Turn is the current turn number, starting at 1
	Turn int

	// StartTime is when the level was loaded
	StartTime time.Time

	// EndTime is when a terminal phase was entered
	EndTime time.Time

	// TurnStarted is when the current resolution began
	TurnStarted time.Time
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:    gameID,
		Logger:    logger.With().Str("game_id", gameID).Logger(),
		Turn:      1,
		StartTime: time.Now(),
	}
}

// GetElapsedTime returns the time from load until the level ended, or until
// now while it is still being played
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
