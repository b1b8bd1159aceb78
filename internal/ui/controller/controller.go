// Package controller turns clicks and commands into model calls and keeps
// the selection state a view needs to draw highlights. It has no
// dependency on a graphics library.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/campaign"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/rules"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/snapshot"
	"github.com/rs/zerolog"
)

// User-facing messages
const (
	MsgNotReadyToSave = "You can only save at the beginning of your turn!"
	MsgWon            = "You Win!"
	MsgLost           = "You Lost!"
	MsgPlayAgain      = "R: play again"
	MsgNextLevel      = "N: next level"
	MsgCampaignDone   = "Campaign complete!"
)

// HighlightKind tells the view which colour to use for highlighted cells
type HighlightKind int

const (
	HighlightNone HighlightKind = iota
	HighlightMove
	HighlightAttack
)

// LevelSource builds the model for the i-th level
type LevelSource interface {
	Len() int
	NewModel(ctx context.Context, i int, cfg game.ModelConfig) (*game.Model, error)
}

// briefer is implemented by level sources that describe their levels
type briefer interface {
	Level(i int) (campaign.Level, error)
}

// Controller mediates between a view and the current model
type Controller struct {
	model  *game.Model
	levels LevelSource
	level  int
	store  *snapshot.Store
	cfg    game.ModelConfig
	logger zerolog.Logger

	focus   core.Position
	focused bool
	// attacking is set when the focused unit shows its attack range
	// rather than its moves
	attacking bool

	status string
}

// New starts the given level. cfg is the template for every model the
// controller creates; its Board and Entities are ignored. store may be nil,
// which disables saving and loading.
func New(ctx context.Context, levels LevelSource, level int, store *snapshot.Store, cfg game.ModelConfig) (*Controller, error) {
	c := &Controller{
		levels: levels,
		store:  store,
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "Controller").Logger(),
	}
	if err := c.startLevel(ctx, level); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) startLevel(ctx context.Context, level int) error {
	m, err := c.levels.NewModel(ctx, level, c.cfg)
	if err != nil {
		return fmt.Errorf("start level %d: %w", level, err)
	}
	c.setModel(m)
	c.level = level
	if b, ok := c.levels.(briefer); ok {
		if l, err := b.Level(level); err == nil {
			c.status = l.Name
			if l.Briefing != "" {
				c.status += ": " + l.Briefing
			}
		}
	}
	c.logger.Info().Int("level", level).Str("game_id", m.GameID()).Msg("Level started")
	return nil
}

func (c *Controller) setModel(m *game.Model) {
	c.model = m
	c.ClearFocus()
	c.status = ""
}

// Model returns the model being played
func (c *Controller) Model() *game.Model { return c.model }

// Level returns the index of the current level
func (c *Controller) Level() int { return c.level }

// Status returns the last user-facing message
func (c *Controller) Status() string { return c.status }

// ClearStatus drops the user-facing message
func (c *Controller) ClearStatus() { c.status = "" }

// ClearFocus deselects the focused unit
func (c *Controller) ClearFocus() {
	c.focused = false
	c.attacking = false
}

// Focused returns the unit highlights are based on
func (c *Controller) Focused() (core.Entity, bool) {
	if !c.focused {
		return nil, false
	}
	return c.model.EntityAt(c.focus)
}

// Click handles a click on a board cell. With a friendly unit focused the
// click is first tried as a move. Then a click on a unit focuses it, and a
// click on an empty cell clears the focus.
func (c *Controller) Click(p core.Position) {
	if e, ok := c.Focused(); ok && e.IsFriendly() {
		c.makeMove(e, p)
	}

	e, ok := c.model.EntityAt(p)
	if !ok {
		c.ClearFocus()
		return
	}
	c.focus = p
	c.focused = true
	f, friendly := e.(core.Friendly)
	c.attacking = !friendly || !f.IsActive()
}

// makeMove always drops the focus. After a successful move the unit stands
// on p, so Click focuses it again in attack mode.
func (c *Controller) makeMove(e core.Entity, p core.Position) {
	if c.model.Phase().CanReceiveOrders() {
		c.model.AttemptMove(e, p)
	}
	c.ClearFocus()
}

// Highlights returns the cells to highlight and their kind. A friendly
// unit that can still move shows its moves; every other focused unit
// shows the in-bounds cells of its attack.
func (c *Controller) Highlights() ([]core.Position, HighlightKind) {
	e, ok := c.Focused()
	if !ok {
		return nil, HighlightNone
	}
	if e.IsFriendly() && !c.attacking {
		return c.model.ValidMovementPositions(e), HighlightMove
	}
	var cells []core.Position
	for _, t := range e.Targets() {
		if c.model.Board().InBounds(t) {
			cells = append(cells, t)
		}
	}
	core.SortPositions(cells)
	return cells, HighlightAttack
}

// EndTurn resolves the turn and reports the outcome in the status line
func (c *Controller) EndTurn(ctx context.Context) error {
	c.ClearFocus()
	if err := c.model.EndTurn(ctx); err != nil {
		if errors.Is(err, core.ErrGameOver) {
			c.status = c.Banner()
			return nil
		}
		return err
	}
	c.status = c.Banner()
	return nil
}

// Banner describes how the level ended, or is empty while it is played
func (c *Controller) Banner() string {
	switch c.model.Outcome() {
	case rules.Won:
		if c.HasNextLevel() {
			return MsgWon + " " + MsgNextLevel + ", " + MsgPlayAgain
		}
		return MsgWon + " " + MsgCampaignDone + " " + MsgPlayAgain
	case rules.Lost:
		return MsgLost + " " + MsgPlayAgain
	default:
		return ""
	}
}

// Save writes the model under name. A refusal mid-turn is reported in the
// status line rather than as an error.
func (c *Controller) Save(name string) error {
	if c.store == nil {
		return errors.New("saving is disabled")
	}
	err := c.store.Save(name, c.model)
	switch {
	case errors.Is(err, core.ErrNotReadyToSave):
		c.status = MsgNotReadyToSave
		return nil
	case err != nil:
		c.status = "Save failed: " + err.Error()
		return err
	}
	c.status = "Saved " + name
	return nil
}

// Load replaces the model with a saved one. On failure the current game is
// kept and the error is reported in the status line.
func (c *Controller) Load(ctx context.Context, name string) error {
	if c.store == nil {
		return errors.New("loading is disabled")
	}
	m, err := c.store.Load(ctx, name, c.cfg)
	if err != nil {
		c.status = "Cannot open " + name + ": " + err.Error()
		c.logger.Warn().Err(err).Str("name", name).Msg("Load failed")
		return err
	}
	c.setModel(m)
	c.status = "Loaded " + name
	return nil
}

// Restart replays the current level from its start
func (c *Controller) Restart(ctx context.Context) error {
	return c.startLevel(ctx, c.level)
}

// HasNextLevel reports whether a level follows the current one
func (c *Controller) HasNextLevel() bool {
	return c.level+1 < c.levels.Len()
}

// NextLevel moves on once the current level is won
func (c *Controller) NextLevel(ctx context.Context) error {
	if c.model.Outcome() != rules.Won || !c.HasNextLevel() {
		return nil
	}
	return c.startLevel(ctx, c.level+1)
}
