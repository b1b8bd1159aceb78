package ui

import (
	"context"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/common"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/config"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/input"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/renderer"
)

// Heights of the bars above and below the board, in pixels
const (
	hudHeight    = 24
	footerHeight = 64
)

// UI configuration functions
func ScreenWidth() int {
	return config.Get().UI.Window.Width
}

func ScreenHeight() int {
	return config.Get().UI.Window.Height
}

func TileSize() int {
	return config.Get().UI.TileSize
}

func SidebarWidth() int {
	return config.Get().UI.SidebarWidth
}

// Options tune a BreachGame beyond what the config file holds
type Options struct {
	// SaveName is the snapshot written by S and read by L
	SaveName string
	// Autoplay issues random orders every AutoTurnDelay frames
	Autoplay      bool
	AutoTurnDelay int
	Rng           *rand.Rand
}

// BreachGame is the ebiten.Game for one player against the AI
type BreachGame struct {
	ctrl          *controller.Controller
	boardRenderer *renderer.EnhancedBoardRenderer
	sidebar       *renderer.SidebarRenderer
	inputHandler  *input.Handler
	defaultFont   font.Face
	palette       common.Palette
	logger        zerolog.Logger
	opts          Options

	// model the layout was computed for
	laidOut *game.Model
	layout  controller.Layout

	turnTimeout time.Duration

	// For autoplay
	turnTimer int

	// UI state
	statusMessage string
	messageTimer  int
	quit          bool
}

// NewBreachGame creates a new Ebitengine game around a controller.
func NewBreachGame(ctrl *controller.Controller, opts Options, logger zerolog.Logger) *BreachGame {
	cfg := config.Get()
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.AutoTurnDelay <= 0 {
		opts.AutoTurnDelay = 30 // 0.5 seconds at 60 FPS
	}
	if opts.SaveName == "" {
		opts.SaveName = "quicksave"
	}

	g := &BreachGame{
		ctrl:        ctrl,
		defaultFont: basicfont.Face7x13,
		palette:     common.NewPalette(cfg.Colors),
		logger:      logger.With().Str("component", "BreachGame").Logger(),
		opts:        opts,
		turnTimeout: time.Duration(cfg.Game.EndTurnTimeoutMs) * time.Millisecond,
	}

	g.boardRenderer = renderer.NewEnhancedBoardRenderer(controller.Layout{}, g.palette, g.defaultFont)
	g.boardRenderer.SetShowCoordinates(cfg.Development.ShowCoordinates)
	g.sidebar = renderer.NewSidebarRenderer(0, SidebarWidth(), g.palette, g.defaultFont)
	g.inputHandler = input.NewHandler(controller.Layout{})
	g.refreshLayout()

	return g
}

// refreshLayout fits the board into the window whenever a new level or
// snapshot is loaded
func (g *BreachGame) refreshLayout() {
	m := g.ctrl.Model()
	if m == g.laidOut {
		return
	}
	g.laidOut = m

	rows, cols := m.Board().Dimensions()
	tile := TileSize()
	if fit := (ScreenWidth() - SidebarWidth()) / max(cols, 1); fit < tile {
		tile = fit
	}
	if fit := (ScreenHeight() - hudHeight - footerHeight) / max(rows, 1); fit < tile {
		tile = fit
	}
	tile = max(tile, 8)

	g.layout = controller.Layout{TileSize: tile, OffsetY: hudHeight, Rows: rows, Cols: cols}
	g.boardRenderer.SetLayout(g.layout)
	g.inputHandler.SetLayout(g.layout)
	w, _ := g.layout.Size()
	g.sidebar.SetX(w + 8)

	g.logger.Debug().Int("rows", rows).Int("cols", cols).Int("tile_size", tile).Msg("Layout updated")
}

// Update proceeds the game state.
func (g *BreachGame) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.inputHandler.Update()

	if g.messageTimer > 0 {
		g.messageTimer--
	}

	for _, p := range g.inputHandler.TakeClicks() {
		g.ctrl.Click(p)
	}
	for _, cmd := range g.inputHandler.TakeCommands() {
		g.handleCommand(cmd)
	}

	if g.opts.Autoplay {
		g.handleAutoTurn()
	}

	g.refreshLayout()
	g.syncRenderer()
	g.flushStatus()
	return nil
}

// handleAutoTurn lets random orders play the mechs on a timer
func (g *BreachGame) handleAutoTurn() {
	m := g.ctrl.Model()
	if m.Phase().IsTerminal() {
		return
	}
	g.turnTimer++
	if g.turnTimer < g.opts.AutoTurnDelay {
		return
	}
	g.turnTimer = 0

	applied := game.ApplyOrders(m, game.GenerateRandomOrders(m, g.opts.Rng))
	g.logger.Debug().Int("turn", m.Turn()).Int("orders", applied).Msg("Autoplay orders applied")
	g.endTurn()
}

func (g *BreachGame) endTurn() {
	ctx := context.Background()
	if g.turnTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.turnTimeout)
		defer cancel()
	}
	if err := g.ctrl.EndTurn(ctx); err != nil {
		g.logger.Error().Err(err).Msg("End turn failed")
		g.showMessage("End turn failed: "+err.Error(), 180)
	}
}

func (g *BreachGame) syncRenderer() {
	if e, ok := g.ctrl.Focused(); ok {
		g.boardRenderer.SetSelection(e.Position(), true)
	} else {
		g.boardRenderer.SetSelection(core.Position{}, false)
	}
	g.boardRenderer.SetHighlights(g.ctrl.Highlights())
	g.boardRenderer.SetHover(g.inputHandler.GetHoveredTile())
}

// Layout defines the Ebitengine screen size.
func (g *BreachGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth(), ScreenHeight()
}
