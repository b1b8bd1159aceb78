package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/config"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/snapshot"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
)

func main() {
	// Command line flags; dotted names override the matching config keys
	flags := pflag.NewFlagSet("breach", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to config file")
	levelFile := flags.String("level", "", "Play a single level snapshot instead of the campaign")
	flags.String("game.campaign", "", "Campaign manifest (YAML)")
	flags.Int("game.start_level", 0, "Index of the first campaign level")
	flags.String("game.save_dir", "", "Directory for save files")
	flags.Bool("game.log_events", false, "Log every game event")
	flags.Int64("mapgen.seed", 0, "Seed for generated levels (0 picks one)")
	flags.String("log.level", "", "Log level (debug, info, warn, error)")
	_ = flags.Parse(os.Args[1:])

	if err := config.Init(*configPath, flags); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	// Logs go to stderr so they do not interleave with the board
	setupLogging(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()
	seed := cfg.Mapgen.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	levels, err := controller.OpenLevels(fs, *levelFile, cfg.Game.Campaign, controller.GeneratedLevels{
		Config: cfg.Mapgen.MapConfig(),
		Seed:   seed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open levels")
	}

	store := snapshot.NewStore(fs, cfg.Game.SaveDir, log.Logger)
	ctrl, err := controller.New(ctx, levels, cfg.Game.StartLevel, store, game.ModelConfig{
		Logger:    log.Logger,
		LogEvents: cfg.Game.LogEvents,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start level")
	}

	log.Info().
		Int64("seed", seed).
		Str("campaign", cfg.Game.Campaign).
		Str("save_dir", store.Dir()).
		Msg("Starting console game")

	con := newConsole(ctrl, store, os.Stdin, os.Stdout)
	if err := con.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Console stopped")
	}
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
	// Pretty console output for development
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
