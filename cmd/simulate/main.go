package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/config"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/monitoring"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/simulation"
)

func main() {
	flags := pflag.NewFlagSet("simulate", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to config file")
	games := flags.Int("games", 100, "Number of games to play")
	workers := flags.Int("workers", 4, "Games played at the same time")
	maxTurns := flags.Int("max-turns", 50, "Turn limit per game")
	verbose := flags.Bool("verbose", false, "Print the board after every turn")
	progressEvery := flags.Duration("progress-interval", 5*time.Second, "How often to log progress")
	flags.Int("mapgen.rows", 8, "Board rows")
	flags.Int("mapgen.cols", 8, "Board columns")
	flags.Int64("mapgen.seed", 0, "Seed of the first game (0 picks one)")
	flags.String("log.level", "", "Log level (debug, info, warn, error)")
	_ = flags.Parse(os.Args[1:])

	if err := config.Init(*configPath, flags); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Mapgen.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gameLogger := log.Logger
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		// every model logs its creation at info
		gameLogger = gameLogger.Level(zerolog.WarnLevel)
	}

	opts := simulation.Options{
		Map:      cfg.Mapgen.MapConfig(),
		Seed:     seed,
		Games:    *games,
		Workers:  *workers,
		MaxTurns: *maxTurns,
		Logger:   gameLogger,
	}
	if *verbose {
		// Boards from different games would interleave
		opts.Workers = 1
		opts.OnTurn = func(g int, m *game.Model) {
			fmt.Printf("Game %d, after turn %d:\n%s\n", g, m.Turn()-1, m.Render(game.Highlights{}))
		}
	}

	log.Info().
		Int64("seed", seed).
		Int("games", opts.Games).
		Int("workers", opts.Workers).
		Int("rows", opts.Map.Rows).
		Int("cols", opts.Map.Cols).
		Msg("Starting simulation")

	opts.Progress = monitoring.NewProgressMonitor(opts.Games, *progressEvery, log.Logger)
	opts.Progress.Start()

	start := time.Now()
	results, err := simulation.Run(ctx, opts)
	opts.Progress.Stop()
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	for _, r := range results {
		fmt.Printf("game %3d seed %d: %-10s turns=%-3d orders=%-3d mechs=%d enemies=%d buildings=%d\n",
			r.Game, r.Seed, r.Outcome, r.Turns, r.Orders,
			r.Final.FriendlyAlive, r.Final.HostileAlive, r.Final.BuildingsStanding)
	}
	s := simulation.Summarize(results)
	fmt.Printf("\n%d games: %d won, %d lost, %d unfinished, %.1f turns on average (%s)\n",
		s.Games, s.Won, s.Lost, s.Unfinished, s.MeanTurns, time.Since(start).Round(time.Millisecond))
}

func setupLogging(c config.LogConfig) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
