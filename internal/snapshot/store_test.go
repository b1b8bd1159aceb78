package snapshot

import (
	"context"
	"testing"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDuelModel(t *testing.T) *game.Model {
	t.Helper()
	m, err := game.NewModel(context.Background(), game.ModelConfig{
		Board:    testutil.DuelBoard(),
		Entities: testutil.DuelEntities(),
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	return m
}

func TestStore_SaveAndLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "saves", zerolog.Nop())
	m := newDuelModel(t)

	require.NoError(t, store.Save("duel", m))

	data, err := afero.ReadFile(fs, "saves/duel.txt")
	require.NoError(t, err)
	assert.Equal(t, testutil.DuelLevel+"\n", string(data))

	exists, err := afero.Exists(fs, "saves/duel.txt.tmp")
	require.NoError(t, err)
	assert.False(t, exists, "temp file is renamed into place")

	loaded, err := store.Load(context.Background(), "duel", game.ModelConfig{Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, m.String(), loaded.String())
	assert.NotEqual(t, m.GameID(), loaded.GameID(), "a loaded snapshot is a new game")
	assert.Equal(t, 1, loaded.Turn())
}

func TestStore_SaveRefusedMidTurn(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "saves", zerolog.Nop())
	m := newDuelModel(t)

	tank := m.FriendlyUnits()[0]
	require.True(t, m.AttemptMove(tank, testutil.Pos(4, 1)))

	err := store.Save("duel", m)
	assert.ErrorIs(t, err, core.ErrNotReadyToSave)

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names, "nothing is written when saving is refused")

	require.NoError(t, m.EndTurn(context.Background()))
	assert.NoError(t, store.Save("duel", m), "saving is allowed again after the turn ends")
}

func TestStore_List(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "saves", zerolog.Nop())

	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names, "a missing directory lists nothing")

	m := newDuelModel(t)
	require.NoError(t, store.Save("b", m))
	require.NoError(t, store.Save("a", m))
	require.NoError(t, afero.WriteFile(fs, "saves/notes.md", []byte("x"), 0o644))

	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, store.Delete("a"))
	names, err = store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, names)
}

func TestStore_InvalidNames(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), "saves", zerolog.Nop())
	m := newDuelModel(t)

	for _, name := range []string{"", ".", "..", "../escape", `a\b`} {
		assert.Error(t, store.Save(name, m), "name %q", name)
	}
}

func TestStore_LoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "saves", zerolog.Nop())

	_, err := store.Load(context.Background(), "missing", game.ModelConfig{Logger: zerolog.Nop()})
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "saves/broken.txt", []byte("   \n  \n\n"), 0o644))
	_, err = store.Load(context.Background(), "broken", game.ModelConfig{Logger: zerolog.Nop()})
	assert.ErrorIs(t, err, core.ErrMalformedSnapshot)
	assert.Contains(t, err.Error(), "saves/broken.txt")
}
