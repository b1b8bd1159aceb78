package states

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStateImplementations(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("AwaitingOrdersState", func(t *testing.T) {
		state := NewAwaitingOrdersState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseAwaitingOrders, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
		assert.Equal(t, 2, ctx.Turn)
	})

	t.Run("ResolvingState", func(t *testing.T) {
		state := NewResolvingState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseResolving, state.Phase())
		assert.NoError(t, state.Validate(ctx))

		assert.True(t, ctx.TurnStarted.IsZero())
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.TurnStarted.IsZero())

		assert.NoError(t, state.Exit(ctx))
		assert.Equal(t, 1, ctx.Turn, "resolving does not advance the turn")
	})

	t.Run("VictoryState", func(t *testing.T) {
		state := NewVictoryState()
		ctx := NewGameContext("test", logger)
		ctx.StartTime = time.Now().Add(-time.Minute)

		assert.Equal(t, PhaseVictory, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.EndTime.IsZero())
		assert.GreaterOrEqual(t, ctx.GetElapsedTime(), time.Minute)
	})

	t.Run("DefeatState", func(t *testing.T) {
		state := NewDefeatState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseDefeat, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.EndTime.IsZero())
		assert.NoError(t, state.Exit(ctx))
	})
}
