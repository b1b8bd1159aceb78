package controller

import (
	"context"
	"testing"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/mapgen"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/rules"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/snapshot"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pos = testutil.Pos

// fixedLevels replays levels built by plain functions
type fixedLevels []func() (*core.Board, []core.Entity)

func (f fixedLevels) Len() int { return len(f) }

func (f fixedLevels) NewModel(ctx context.Context, i int, cfg game.ModelConfig) (*game.Model, error) {
	cfg.Board, cfg.Entities = f[i]()
	return game.NewModel(ctx, cfg)
}

func duel() (*core.Board, []core.Entity) {
	return testutil.DuelBoard(), testutil.DuelEntities()
}

func newController(t *testing.T, levels LevelSource) (*Controller, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := snapshot.NewStore(fs, "saves", zerolog.Nop())
	c, err := New(context.Background(), levels, 0, store, game.ModelConfig{Logger: zerolog.Nop()})
	require.NoError(t, err)
	return c, fs
}

func TestClick_FocusActiveMechShowsMoves(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})

	c.Click(pos(4, 0))

	e, ok := c.Focused()
	require.True(t, ok)
	assert.Equal(t, core.KindTank, e.Kind())

	cells, kind := c.Highlights()
	assert.Equal(t, HighlightMove, kind)
	assert.Equal(t, c.Model().ValidMovementPositions(e), cells)
}

func TestClick_MoveThenShowAttack(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})

	c.Click(pos(4, 0))
	c.Click(pos(4, 1))

	e, ok := c.Focused()
	require.True(t, ok, "the moved mech stays focused")
	assert.Equal(t, pos(4, 1), e.Position())
	assert.False(t, e.(core.Friendly).IsActive())

	cells, kind := c.Highlights()
	assert.Equal(t, HighlightAttack, kind)
	assert.Equal(t, []core.Position{pos(4, 0), pos(4, 2), pos(4, 3), pos(4, 4)}, cells)
}

func TestClick_InvalidMoveClearsFocus(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})

	c.Click(pos(4, 0))
	c.Click(pos(0, 3))

	_, ok := c.Focused()
	assert.False(t, ok)
	tank, _ := c.Model().EntityAt(pos(4, 0))
	require.NotNil(t, tank)
	assert.True(t, tank.(core.Friendly).IsActive())

	cells, kind := c.Highlights()
	assert.Empty(t, cells)
	assert.Equal(t, HighlightNone, kind)
}

func TestClick_OtherMechSwitchesFocus(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})

	c.Click(pos(4, 0))
	c.Click(pos(4, 4))

	e, ok := c.Focused()
	require.True(t, ok)
	assert.Equal(t, core.KindHeal, e.Kind())
	tank, _ := c.Model().EntityAt(pos(4, 0))
	require.NotNil(t, tank)
	assert.True(t, tank.(core.Friendly).IsActive(), "an occupied cell is not a move")

	_, kind := c.Highlights()
	assert.Equal(t, HighlightMove, kind)
}

func TestClick_InactiveMechShowsAttack(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})

	c.Click(pos(4, 0))
	c.Click(pos(4, 1))
	c.Click(pos(1, 0))
	c.Click(pos(4, 1))

	_, kind := c.Highlights()
	assert.Equal(t, HighlightAttack, kind)
}

func TestClick_HostileShowsAttack(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})

	c.Click(pos(0, 0))

	cells, kind := c.Highlights()
	assert.Equal(t, HighlightAttack, kind)
	assert.Equal(t, []core.Position{pos(0, 1), pos(0, 2), pos(1, 0), pos(2, 0)}, cells)

	// a hostile focus never moves
	c.Click(pos(1, 0))
	_, ok := c.Model().EntityAt(pos(0, 0))
	assert.True(t, ok)
	_, ok = c.Focused()
	assert.False(t, ok)
}

func TestSave(t *testing.T) {
	c, fs := newController(t, fixedLevels{duel})

	require.NoError(t, c.Save("slot"))
	assert.Equal(t, "Saved slot", c.Status())
	exists, err := afero.Exists(fs, "saves/slot.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	c.Click(pos(4, 0))
	c.Click(pos(4, 1))
	require.NoError(t, c.Save("later"), "a refusal is not an error")
	assert.Equal(t, MsgNotReadyToSave, c.Status())

	exists, err = afero.Exists(fs, "saves/later.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoad(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})
	require.NoError(t, c.Save("slot"))

	c.Click(pos(4, 0))
	c.Click(pos(4, 1))
	require.NoError(t, c.Load(context.Background(), "slot"))

	assert.Equal(t, testutil.DuelLevel, c.Model().String())
	_, ok := c.Focused()
	assert.False(t, ok)

	before := c.Model()
	assert.Error(t, c.Load(context.Background(), "missing"))
	assert.Same(t, before, c.Model(), "a failed load keeps the game")
	assert.Contains(t, c.Status(), "Cannot open missing")
}

func TestEndTurn_Banner(t *testing.T) {
	c, _ := newController(t, fixedLevels{testutil.WonLevel})

	assert.Empty(t, c.Banner())
	require.NoError(t, c.EndTurn(context.Background()))
	assert.Equal(t, rules.Won, c.Model().Outcome())
	assert.Contains(t, c.Status(), MsgWon)
	assert.Contains(t, c.Status(), MsgCampaignDone)

	require.NoError(t, c.EndTurn(context.Background()), "ending a finished game only repeats the banner")
	assert.Contains(t, c.Status(), MsgWon)
}

func TestEndTurn_Lost(t *testing.T) {
	lost := func() (*core.Board, []core.Entity) {
		board := core.MustParseBoard("1 ", "  ")
		return board, []core.Entity{core.NewScorpion(pos(0, 1), 3, 0, 1)}
	}
	c, _ := newController(t, fixedLevels{lost})

	require.NoError(t, c.EndTurn(context.Background()))
	assert.Equal(t, rules.Lost, c.Model().Outcome())
	assert.Equal(t, MsgLost+" "+MsgPlayAgain, c.Status())
}

func TestRestartAndNextLevel(t *testing.T) {
	c, _ := newController(t, fixedLevels{testutil.WonLevel, duel})
	ctx := context.Background()

	require.NoError(t, c.NextLevel(ctx))
	assert.Equal(t, 0, c.Level(), "only a won level advances")

	require.NoError(t, c.EndTurn(ctx))
	assert.Contains(t, c.Status(), MsgNextLevel)
	first := c.Model().GameID()

	require.NoError(t, c.Restart(ctx))
	assert.Equal(t, 0, c.Level())
	assert.Equal(t, 1, c.Model().Turn())
	assert.NotEqual(t, first, c.Model().GameID())
	assert.Empty(t, c.Status())

	require.NoError(t, c.EndTurn(ctx))
	require.NoError(t, c.NextLevel(ctx))
	assert.Equal(t, 1, c.Level())
	assert.False(t, c.HasNextLevel())
	assert.Equal(t, testutil.DuelLevel, c.Model().String())
}

func TestSidebar(t *testing.T) {
	c, _ := newController(t, fixedLevels{duel})

	rows := c.Sidebar()
	require.Len(t, rows, 4)
	assert.Equal(t, SidebarRow{Unit: "TankMech", Coord: "(4, 0)", Health: 3, Damage: 2, Friendly: true, Active: true}, rows[0])
	assert.Equal(t, -1, rows[1].Damage, "healers show a negative damage")
	assert.False(t, rows[2].Friendly)
	assert.False(t, rows[2].Active)
}

func TestLayout(t *testing.T) {
	l := Layout{TileSize: 10, OffsetX: 5, OffsetY: 20, Rows: 3, Cols: 4}

	tests := []struct {
		name   string
		x, y   int
		want   core.Position
		wantOK bool
	}{
		{"top left", 5, 20, pos(0, 0), true},
		{"inside", 38, 41, pos(2, 3), true},
		{"left of board", 4, 25, core.Position{}, false},
		{"below board", 10, 50, core.Position{}, false},
		{"right of board", 45, 25, core.Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.CellAt(tt.x, tt.y)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	x, y := l.Origin(pos(2, 3))
	assert.Equal(t, 35, x)
	assert.Equal(t, 40, y)
	w, h := l.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)
}

func TestGeneratedLevels(t *testing.T) {
	levels := GeneratedLevels{Config: mapgen.DefaultMapConfig(8, 8), Seed: 7, Count: 2}
	cfg := game.ModelConfig{Logger: zerolog.Nop()}
	ctx := context.Background()

	a, err := levels.NewModel(ctx, 1, cfg)
	require.NoError(t, err)
	b, err := levels.NewModel(ctx, 1, cfg)
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String(), "a level replays with the same seed")

	_, err = levels.NewModel(ctx, 2, cfg)
	assert.Error(t, err)
}

func TestFileLevel(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "levels/duel.txt", []byte(testutil.DuelLevel+"\n"), 0o644))
	level := FileLevel{Fs: fs, Path: "levels/duel.txt"}

	m, err := level.NewModel(context.Background(), 0, game.ModelConfig{Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, testutil.DuelLevel, m.String())
	assert.Equal(t, 1, level.Len())

	_, err = FileLevel{Fs: fs, Path: "levels/none.txt"}.NewModel(context.Background(), 0, game.ModelConfig{Logger: zerolog.Nop()})
	assert.Error(t, err)
}

func TestOpenLevels(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "levels/duel.txt", []byte(testutil.DuelLevel+"\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "levels/campaign.yaml", []byte(
		"name: Test\nlevels:\n  - name: Duel\n    file: duel.txt\n    briefing: Hold the line.\n  - file: duel.txt\n"), 0o644))
	generated := GeneratedLevels{Config: mapgen.DefaultMapConfig(8, 8), Seed: 1}

	src, err := OpenLevels(fs, "levels/duel.txt", "levels/campaign.yaml", generated)
	require.NoError(t, err)
	assert.IsType(t, FileLevel{}, src)

	src, err = OpenLevels(fs, "", "levels/campaign.yaml", generated)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Len())

	c, err := New(context.Background(), src, 0, nil, game.ModelConfig{Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.Equal(t, "Duel: Hold the line.", c.Status(), "campaign levels start with their briefing")
	assert.True(t, c.HasNextLevel())
	assert.Error(t, c.Save("slot"), "saving needs a store")

	src, err = OpenLevels(fs, "", "", generated)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Len())

	_, err = OpenLevels(fs, "", "", GeneratedLevels{Config: mapgen.MapConfig{}})
	assert.Error(t, err)
	_, err = OpenLevels(fs, "", "levels/missing.yaml", generated)
	assert.Error(t, err)
}
