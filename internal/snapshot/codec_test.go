package snapshot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	board, entities, err := Parse(testutil.DuelLevel + "\n")
	require.NoError(t, err)

	rows, cols := board.Dimensions()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, core.TileMountain, board.Tile(testutil.Pos(0, 2)).Kind())
	b, ok := board.Building(testutil.Pos(3, 0))
	require.True(t, ok)
	assert.Equal(t, 5, b.Health())

	require.Len(t, entities, 4)
	kinds := []core.EntityKind{core.KindTank, core.KindHeal, core.KindScorpion, core.KindFirefly}
	for i, e := range entities {
		assert.Equal(t, kinds[i], e.Kind(), "priority order is file order")
	}
	assert.Equal(t, -1, entities[1].Strength(), "heal amounts are stored negated")
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testutil.DuelBoard(), testutil.DuelEntities()))
	assert.Equal(t, testutil.DuelLevel+"\n", buf.String())

	board, entities, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, testutil.DuelLevel+"\n", Format(board, entities))
}

func TestDecode_Tolerance(t *testing.T) {
	t.Run("windows line endings", func(t *testing.T) {
		text := strings.ReplaceAll(testutil.DuelLevel, "\n", "\r\n")
		_, entities, err := Parse(text)
		require.NoError(t, err)
		assert.Len(t, entities, 4)
	})

	t.Run("blank lines between records", func(t *testing.T) {
		_, entities, err := Parse("  \n  \n\nT,0,0,3,3,2\n\nS,1,1,3,3,1\n\n")
		require.NoError(t, err)
		assert.Len(t, entities, 2)
	})

	t.Run("no units", func(t *testing.T) {
		board, entities, err := Parse("M \n 3\n\n")
		require.NoError(t, err)
		assert.Empty(t, entities)
		assert.Equal(t, "M \n 3", board.String())
	})
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
		line int
	}{
		{"empty", "", 0},
		{"missing separator", "   \n   \n", 2},
		{"ragged board", "   \n  \n\n", 2},
		{"too few fields", "   \n\nT,0,0,3,3\n", 3},
		{"unknown unit", "   \n\nX,0,0,3,3,1\n", 3},
		{"long symbol", "   \n\nTT,0,0,3,3,1\n", 3},
		{"not a number", "   \n\nT,0,a,3,3,1\n", 3},
		{"negative health", "   \n\nT,0,0,-3,3,1\n", 3},
		{"out of bounds", "   \n\nT,0,0,3,3,1\nS,1,0,3,3,1\n", 4},
		{"shared cell", "   \n\nT,0,1,3,3,1\nS,0,1,3,3,1\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrMalformedSnapshot)

			var snapErr *core.SnapshotError
			require.ErrorAs(t, err, &snapErr)
			assert.Equal(t, tt.line, snapErr.Line)
		})
	}
}

func TestDecode_UnknownUnitKeepsCause(t *testing.T) {
	_, _, err := Parse("   \n\nX,0,0,3,3,1\n")
	assert.ErrorIs(t, err, core.ErrUnknownUnit)
}
