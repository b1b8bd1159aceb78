// Package snapshot reads and writes the plain-text level format: the board
// layout, a blank line, then one unit record per line in priority order.
package snapshot

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
)

const recordFields = 6

// Encode writes a snapshot of board and entities
func Encode(w io.Writer, board *core.Board, entities []core.Entity) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(board.String())
	bw.WriteString("\n\n")
	for _, e := range entities {
		bw.WriteString(e.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Format returns the snapshot as a string
func Format(board *core.Board, entities []core.Entity) string {
	var sb strings.Builder
	_ = Encode(&sb, board, entities)
	return sb.String()
}

// Decode parses a snapshot. Errors wrap core.ErrMalformedSnapshot and
// carry the offending line number.
func Decode(r io.Reader) (*core.Board, []core.Entity, error) {
	scanner := bufio.NewScanner(r)

	var boardLines []string
	separator := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			separator = lineNo
			break
		}
		boardLines = append(boardLines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}
	if separator == 0 {
		return nil, nil, core.NewSnapshotError(lineNo, "missing blank line after the board")
	}

	board, err := core.ParseBoard(boardLines)
	if err != nil {
		return nil, nil, err
	}

	var entities []core.Entity
	seen := make(map[core.Position]int)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e, err := parseRecord(line, lineNo)
		if err != nil {
			return nil, nil, err
		}
		if !board.InBounds(e.Position()) {
			return nil, nil, core.NewSnapshotError(lineNo, "%s at %s is outside the %dx%d board",
				e.Name(), e.Position(), board.Rows, board.Cols)
		}
		if other, ok := seen[e.Position()]; ok {
			return nil, nil, core.NewSnapshotError(lineNo, "%s shares %s with the unit on line %d",
				e.Name(), e.Position(), other)
		}
		seen[e.Position()] = lineNo
		entities = append(entities, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read snapshot: %w", err)
	}

	return board, entities, nil
}

// Parse decodes a snapshot held in a string
func Parse(s string) (*core.Board, []core.Entity, error) {
	return Decode(strings.NewReader(s))
}

// parseRecord reads symbol,row,col,health,speed,strength
func parseRecord(line string, lineNo int) (core.Entity, error) {
	fields := strings.Split(line, ",")
	if len(fields) != recordFields {
		return nil, core.NewSnapshotError(lineNo, "unit record has %d fields, expected %d", len(fields), recordFields)
	}

	symbol, size := utf8.DecodeRuneInString(fields[0])
	if size != len(fields[0]) {
		return nil, core.NewSnapshotError(lineNo, "unit symbol %q is not a single character", fields[0])
	}

	var values [recordFields - 1]int
	names := [recordFields - 1]string{"row", "col", "health", "speed", "strength"}
	for i, f := range fields[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, core.NewSnapshotError(lineNo, "%s %q is not a number", names[i], f)
		}
		if n < 0 && names[i] != "strength" {
			return nil, core.NewSnapshotError(lineNo, "%s must not be negative, got %d", names[i], n)
		}
		values[i] = n
	}

	pos := core.Position{Row: values[0], Col: values[1]}
	e, err := core.NewEntity(symbol, pos, values[2], values[3], values[4])
	if err != nil {
		return nil, &core.SnapshotError{Line: lineNo, Err: fmt.Errorf("%w: %w", core.ErrMalformedSnapshot, err)}
	}
	return e, nil
}
