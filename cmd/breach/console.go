package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/snapshot"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
)

const helpText = `commands:
  click R C            focus a unit, or move the focused mech to (R, C)
  move R1 C1 R2 C2     move the mech at (R1, C1) to (R2, C2)
  end                  end the turn
  save NAME | load NAME | saves
  restart | next | show | help | quit`

// console is a line-oriented front-end over the controller
type console struct {
	ctrl  *controller.Controller
	store *snapshot.Store
	in    *bufio.Scanner
	out   io.Writer
}

func newConsole(ctrl *controller.Controller, store *snapshot.Store, in io.Reader, out io.Writer) *console {
	return &console{ctrl: ctrl, store: store, in: bufio.NewScanner(in), out: out}
}

// Run reads commands until quit, end of input or ctx is done
func (c *console) Run(ctx context.Context) error {
	c.show()
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return c.in.Err()
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
		quit, err := c.exec(ctx, strings.Fields(c.in.Text()))
		if err != nil {
			fmt.Fprintln(c.out, "error:", err)
			c.printStatus()
		}
		if quit {
			return nil
		}
	}
}

// exec runs one command and reports whether the console should stop
func (c *console) exec(ctx context.Context, args []string) (quit bool, err error) {
	if len(args) == 0 {
		return false, nil
	}
	switch strings.ToLower(args[0]) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprintln(c.out, helpText)
		return false, nil
	case "show":
	case "click", "c":
		p, err := positionArgs(args[1:], 1)
		if err != nil {
			return false, err
		}
		c.ctrl.Click(p[0])
	case "move", "m":
		p, err := positionArgs(args[1:], 2)
		if err != nil {
			return false, err
		}
		c.ctrl.ClearFocus()
		c.ctrl.Click(p[0])
		c.ctrl.Click(p[1])
	case "end", "e":
		if err := c.ctrl.EndTurn(ctx); err != nil {
			return false, err
		}
	case "save":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: save NAME")
		}
		if err := c.ctrl.Save(args[1]); err != nil {
			return false, err
		}
	case "load":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: load NAME")
		}
		if err := c.ctrl.Load(ctx, args[1]); err != nil {
			return false, err
		}
	case "saves":
		names, err := c.store.List()
		if err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, strings.Join(names, "\n"))
		return false, nil
	case "restart":
		if err := c.ctrl.Restart(ctx); err != nil {
			return false, err
		}
	case "next":
		if err := c.ctrl.NextLevel(ctx); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown command %q, try help", args[0])
	}
	c.show()
	return false, nil
}

// show prints the board with the current highlights and any message
func (c *console) show() {
	var h game.Highlights
	cells, kind := c.ctrl.Highlights()
	switch kind {
	case controller.HighlightMove:
		h.Move = cells
	case controller.HighlightAttack:
		h.Attack = cells
	}
	fmt.Fprint(c.out, c.ctrl.Model().Render(h))
	c.printStatus()
}

func (c *console) printStatus() {
	if msg := c.ctrl.Status(); msg != "" {
		fmt.Fprintln(c.out, msg)
		c.ctrl.ClearStatus()
	}
}

// positionArgs parses n (row, col) pairs
func positionArgs(args []string, n int) ([]core.Position, error) {
	if len(args) != 2*n {
		return nil, fmt.Errorf("want %d coordinates, got %d", 2*n, len(args))
	}
	out := make([]core.Position, n)
	for i := range out {
		r, err := strconv.Atoi(args[2*i])
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", args[2*i], err)
		}
		col, err := strconv.Atoi(args[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("col %q: %w", args[2*i+1], err)
		}
		out[i] = core.Position{Row: r, Col: col}
	}
	return out, nil
}
