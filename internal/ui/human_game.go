package ui

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/input"
)

// handleCommand runs a keyboard command against the controller
func (g *BreachGame) handleCommand(cmd input.Command) {
	ctx := context.Background()
	switch cmd {
	case input.CommandEndTurn:
		g.endTurn()
	case input.CommandSave:
		if err := g.ctrl.Save(g.opts.SaveName); err != nil {
			g.logger.Error().Err(err).Str("name", g.opts.SaveName).Msg("Save failed")
		}
	case input.CommandLoad:
		if err := g.ctrl.Load(ctx, g.opts.SaveName); err != nil {
			g.logger.Warn().Err(err).Str("name", g.opts.SaveName).Msg("Load failed")
		}
	case input.CommandRestart:
		if err := g.ctrl.Restart(ctx); err != nil {
			g.logger.Error().Err(err).Msg("Restart failed")
			g.showMessage("Cannot restart: "+err.Error(), 180)
		}
	case input.CommandNextLevel:
		if err := g.ctrl.NextLevel(ctx); err != nil {
			g.logger.Error().Err(err).Msg("Next level failed")
			g.showMessage("Cannot load next level: "+err.Error(), 180)
		}
	case input.CommandDeselect:
		g.ctrl.ClearFocus()
	case input.CommandQuit:
		g.quit = true
	}
}

// flushStatus moves the controller's message into the timed status line
func (g *BreachGame) flushStatus() {
	if msg := g.ctrl.Status(); msg != "" {
		g.showMessage(msg, 180)
		g.ctrl.ClearStatus()
	}
}

func (g *BreachGame) showMessage(msg string, duration int) {
	g.statusMessage = msg
	g.messageTimer = duration
}

// Draw renders the game screen.
func (g *BreachGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)

	m := g.ctrl.Model()
	g.boardRenderer.Draw(screen, m.Board(), m.Entities())
	g.sidebar.Draw(screen, g.ctrl.Sidebar())

	g.drawUI(screen)
}

func (g *BreachGame) drawUI(screen *ebiten.Image) {
	m := g.ctrl.Model()

	turnStr := fmt.Sprintf("Level %d  Turn %d  %s", g.ctrl.Level()+1, m.Turn(), m.Phase())
	text.Draw(screen, turnStr, g.defaultFont, 5, 16, g.palette.Text)

	_, boardH := g.layout.Size()
	helpY := hudHeight + boardH + 16
	help := "Click: focus/move  Space: end turn  S/L: save/load  R: restart  Q: quit"
	if g.opts.Autoplay {
		help = "Autoplay  R: restart  Q: quit"
	}
	text.Draw(screen, help, g.defaultFont, 5, helpY, color.Gray{200})

	if banner := g.ctrl.Banner(); banner != "" {
		text.Draw(screen, banner, g.defaultFont, 5, helpY+18, g.palette.Text)
	}

	// Status message
	if g.messageTimer > 0 && g.statusMessage != "" {
		text.Draw(screen, g.statusMessage, g.defaultFont, 5, helpY+36, g.palette.Text)
	}
}
