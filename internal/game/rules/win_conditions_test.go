package rules

import (
	"testing"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWinConditionChecker(t *testing.T) {
	wc := NewWinConditionChecker(zerolog.Nop())

	deadScorpion := core.NewScorpion(core.Position{Row: 0, Col: 2}, 1, 1, 1)
	deadScorpion.Damage(1)
	deadTank := core.NewTankMech(core.Position{Row: 0, Col: 1}, 1, 1, 1)
	deadTank.Damage(1)

	tests := []struct {
		name     string
		board    []string
		entities []core.Entity
		won      bool
		lost     bool
		outcome  Outcome
	}{
		{
			name:  "enemies remain",
			board: []string{"5   "},
			entities: []core.Entity{
				core.NewTankMech(core.Position{Row: 0, Col: 1}, 3, 3, 3),
				core.NewScorpion(core.Position{Row: 0, Col: 3}, 3, 3, 2),
			},
			outcome: InProgress,
		},
		{
			name:     "all enemies dead",
			board:    []string{"5   "},
			entities: []core.Entity{core.NewTankMech(core.Position{Row: 0, Col: 1}, 3, 3, 3), deadScorpion},
			won:      true,
			outcome:  Won,
		},
		{
			name:     "no enemies at all",
			board:    []string{"1 "},
			entities: []core.Entity{core.NewHealMech(core.Position{Row: 0, Col: 1}, 3, 3, 1)},
			won:      true,
			outcome:  Won,
		},
		{
			name:  "all buildings destroyed",
			board: []string{"0   "},
			entities: []core.Entity{
				core.NewTankMech(core.Position{Row: 0, Col: 1}, 3, 3, 3),
			},
			lost:    true,
			outcome: Lost,
		},
		{
			name:  "all mechs dead",
			board: []string{"4   "},
			entities: []core.Entity{
				deadTank,
				core.NewFirefly(core.Position{Row: 0, Col: 3}, 3, 3, 2),
			},
			lost:    true,
			outcome: Lost,
		},
		{
			name:     "empty roster loses",
			board:    []string{"4 "},
			entities: nil,
			lost:     true,
			outcome:  Lost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := core.MustParseBoard(tt.board...)
			assert.Equal(t, tt.won, wc.HasWon(board, tt.entities))
			assert.Equal(t, tt.lost, wc.HasLost(board, tt.entities))
			assert.Equal(t, tt.outcome, wc.Evaluate(board, tt.entities))
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "in_progress", InProgress.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
}
