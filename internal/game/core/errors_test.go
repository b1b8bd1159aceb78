package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotError(t *testing.T) {
	err := NewSnapshotError(3, "expected %d fields, got %d", 6, 4)
	assert.Equal(t, "snapshot line 3: malformed snapshot: expected 6 fields, got 4", err.Error())
	assert.True(t, errors.Is(err, ErrMalformedSnapshot))

	err = NewSnapshotError(0, "missing separator")
	assert.Equal(t, "snapshot: malformed snapshot: missing separator", err.Error())
}

func TestWrapTurnError(t *testing.T) {
	assert.Nil(t, WrapTurnError(1, "Resolving", nil))

	wrapped := WrapTurnError(4, "Victory", ErrGameOver)
	require.NotNil(t, wrapped)
	assert.Equal(t, "game turn 4 [Victory]: game is over", wrapped.Error())
	assert.True(t, errors.Is(wrapped, ErrGameOver))
}

func TestWrapEntityError(t *testing.T) {
	tests := []struct {
		name     string
		entity   Entity
		err      error
		expected string
		isNil    bool
	}{
		{
			name:   "nil error returns nil",
			entity: NewTankMech(Position{1, 1}, 5, 3, 3),
			isNil:  true,
		},
		{
			name:     "entity with position",
			entity:   NewScorpion(Position{2, 4}, 3, 3, 2),
			err:      ErrOutOfBounds,
			expected: "Scorpion at (2, 4) move: position out of bounds",
		},
		{
			name:     "nil entity",
			entity:   nil,
			err:      ErrGameOver,
			expected: "entity move: game is over",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapEntityError(tt.entity, "move", tt.err)
			if tt.isNil {
				assert.Nil(t, wrapped)
				return
			}
			require.NotNil(t, wrapped)
			assert.Equal(t, tt.expected, wrapped.Error())
			assert.True(t, errors.Is(wrapped, tt.err))
		})
	}
}

func TestErrorChain(t *testing.T) {
	base := NewSnapshotError(2, "bad unit")
	err := fmt.Errorf("load level: %w", WrapTurnError(1, "AwaitingOrders", base))

	assert.True(t, errors.Is(err, ErrMalformedSnapshot))
	var snapErr *SnapshotError
	require.True(t, errors.As(err, &snapErr))
	assert.Equal(t, 2, snapErr.Line)
}
