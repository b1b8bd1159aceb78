// Package simulation plays generated levels with random mech orders, many
// games at a time.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/mapgen"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/rules"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/monitoring"
)

// Options configure a batch of games
type Options struct {
	Map      mapgen.MapConfig
	Seed     int64
	Games    int
	Workers  int
	MaxTurns int
	Logger   zerolog.Logger
	// OnTurn, when set, is called after every resolved turn. It runs on
	// the worker goroutine of the game.
	OnTurn func(game int, m *game.Model)
	// Progress, when set, is told about every finished game
	Progress *monitoring.ProgressMonitor
}

// Result is the summary of one game
type Result struct {
	Game    int
	Seed    int64
	Outcome rules.Outcome
	Turns   int
	Orders  int
	Final   game.Stats
}

// Summary aggregates a batch
type Summary struct {
	Games, Won, Lost, Unfinished int
	MeanTurns                    float64
}

// Run plays opts.Games games. Game i uses seed opts.Seed+i for both the
// level and the orders, so a batch is reproducible. Results are ordered by
// game index.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if err := opts.Map.Validate(); err != nil {
		return nil, fmt.Errorf("map config: %w", err)
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 50
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	logger := opts.Logger.With().Str("component", "Simulation").Logger()

	p := pool.NewWithResults[Result]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(opts.Workers)
	for i := range opts.Games {
		p.Go(func(ctx context.Context) (Result, error) {
			return playGame(ctx, opts, i, logger)
		})
	}
	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].Game < results[b].Game })
	return results, nil
}

func playGame(ctx context.Context, opts Options, i int, logger zerolog.Logger) (Result, error) {
	seed := opts.Seed + int64(i)
	rng := rand.New(rand.NewSource(seed))

	board, entities, err := mapgen.NewGenerator(opts.Map, rng).Generate()
	if err != nil {
		return Result{}, fmt.Errorf("game %d: %w", i, err)
	}
	m, err := game.NewModel(ctx, game.ModelConfig{
		Board:    board,
		Entities: entities,
		GameID:   fmt.Sprintf("sim-%d", seed),
		Logger:   opts.Logger,
	})
	if err != nil {
		return Result{}, fmt.Errorf("game %d: %w", i, err)
	}

	res := Result{Game: i, Seed: seed}
	for m.Turn() <= opts.MaxTurns && !m.Phase().IsTerminal() {
		res.Orders += game.ApplyOrders(m, game.GenerateRandomOrders(m, rng))
		if err := m.EndTurn(ctx); err != nil {
			return Result{}, fmt.Errorf("game %d: %w", i, err)
		}
		if opts.OnTurn != nil {
			opts.OnTurn(i, m)
		}
	}

	res.Outcome = m.Outcome()
	res.Turns = m.Turn()
	res.Final = m.Stats()
	if opts.Progress != nil {
		opts.Progress.GameFinished(res.Outcome == rules.Won, res.Outcome == rules.Lost)
	}
	logger.Debug().
		Int("game", i).
		Int64("seed", seed).
		Stringer("outcome", res.Outcome).
		Int("turns", res.Turns).
		Msg("Game finished")
	return res, nil
}

// Summarize counts outcomes
func Summarize(results []Result) Summary {
	s := Summary{Games: len(results)}
	turns := 0
	for _, r := range results {
		turns += r.Turns
		switch r.Outcome {
		case rules.Won:
			s.Won++
		case rules.Lost:
			s.Lost++
		default:
			s.Unfinished++
		}
	}
	if s.Games > 0 {
		s.MeanTurns = float64(turns) / float64(s.Games)
	}
	return s
}
