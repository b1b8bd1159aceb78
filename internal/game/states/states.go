package states

import (
	"time"
)

// AwaitingOrdersState is the player's half of a turn
type AwaitingOrdersState struct{}

func NewAwaitingOrdersState() State {
	return &AwaitingOrdersState{}
}

func (s *AwaitingOrdersState) Phase() TurnPhase {
	return PhaseAwaitingOrders
}

// Enter starts the next turn
func (s *AwaitingOrdersState) Enter(ctx *GameContext) error {
	ctx.Turn++
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Awaiting orders")
	return nil
}

func (s *AwaitingOrdersState) Exit(ctx *GameContext) error {
	return nil
}

func (s *AwaitingOrdersState) Validate(ctx *GameContext) error {
	return nil
}

// ResolvingState covers attacks and enemy movement at the end of a turn
type ResolvingState struct{}

func NewResolvingState() State {
	return &ResolvingState{}
}

func (s *ResolvingState) Phase() TurnPhase {
	return PhaseResolving
}

func (s *ResolvingState) Enter(ctx *GameContext) error {
	ctx.TurnStarted = time.Now()
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Resolving turn")
	return nil
}

func (s *ResolvingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("turn", ctx.Turn).
		Dur("elapsed", time.Since(ctx.TurnStarted)).
		Msg("Turn resolved")
	return nil
}

func (s *ResolvingState) Validate(ctx *GameContext) error {
	return nil
}

// VictoryState is entered when every enemy has been destroyed
type VictoryState struct{}

func NewVictoryState() State {
	return &VictoryState{}
}

func (s *VictoryState) Phase() TurnPhase {
	return PhaseVictory
}

func (s *VictoryState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Int("turns", ctx.Turn).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Level won")
	return nil
}

func (s *VictoryState) Exit(ctx *GameContext) error {
	return nil
}

func (s *VictoryState) Validate(ctx *GameContext) error {
	return nil
}

// DefeatState is entered when the player can no longer win
type DefeatState struct{}

func NewDefeatState() State {
	return &DefeatState{}
}

func (s *DefeatState) Phase() TurnPhase {
	return PhaseDefeat
}

func (s *DefeatState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Int("turns", ctx.Turn).
		Dur("duration", ctx.GetElapsedTime()).
		Msg("Level lost")
	return nil
}

func (s *DefeatState) Exit(ctx *GameContext) error {
	return nil
}

func (s *DefeatState) Validate(ctx *GameContext) error {
	return nil
}
