package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
)

// Command is a keyboard action for the game loop
type Command int

const (
	CommandNone Command = iota
	CommandEndTurn
	CommandSave
	CommandLoad
	CommandRestart
	CommandNextLevel
	CommandDeselect
	CommandQuit
)

var keyBindings = []struct {
	key     ebiten.Key
	command Command
}{
	{ebiten.KeySpace, CommandEndTurn},
	{ebiten.KeyE, CommandEndTurn},
	{ebiten.KeyS, CommandSave},
	{ebiten.KeyL, CommandLoad},
	{ebiten.KeyR, CommandRestart},
	{ebiten.KeyN, CommandNextLevel},
	{ebiten.KeyEscape, CommandDeselect},
	{ebiten.KeyQ, CommandQuit},
}

// Handler collects mouse and keyboard input once per frame
type Handler struct {
	// Mouse state
	mouseX, mouseY int

	layout controller.Layout

	clicks   []core.Position
	commands []Command
}

func NewHandler(layout controller.Layout) *Handler {
	return &Handler{layout: layout}
}

// SetLayout updates the board geometry used to map clicks to cells
func (h *Handler) SetLayout(l controller.Layout) { h.layout = l }

func (h *Handler) Update() {
	h.mouseX, h.mouseY = GetCursorPosition()

	if IsLeftClickJustPressed() {
		if p, ok := h.layout.CellAt(h.mouseX, h.mouseY); ok {
			h.clicks = append(h.clicks, p)
		}
	}

	// Right click cancels the focus
	if IsRightClickJustPressed() {
		h.commands = append(h.commands, CommandDeselect)
	}

	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			h.commands = append(h.commands, b.command)
		}
	}
}

// GetHoveredTile returns the cell under the cursor
func (h *Handler) GetHoveredTile() (core.Position, bool) {
	return h.layout.CellAt(h.mouseX, h.mouseY)
}

// TakeClicks returns and clears the cells clicked since the last call
func (h *Handler) TakeClicks() []core.Position {
	clicks := h.clicks
	h.clicks = nil
	return clicks
}

// TakeCommands returns and clears the commands issued since the last call
func (h *Handler) TakeCommands() []Command {
	commands := h.commands
	h.commands = nil
	return commands
}
