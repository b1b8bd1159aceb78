package main

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/mitchelldurbincs/IntoTheBreach/internal/config"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/snapshot"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/ui/controller"
)

func main() {
	flags := pflag.NewFlagSet("ui_client", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to config file")
	levelFile := flags.String("level", "", "Play a single level snapshot instead of the campaign")
	saveName := flags.String("save-name", "quicksave", "Snapshot written by S and read by L")
	autoplay := flags.Bool("autoplay", false, "Let random orders play the mechs")
	watch := flags.Bool("watch-config", false, "Reload the config file when it changes")
	flags.String("game.campaign", "", "Campaign manifest (YAML)")
	flags.Int("game.start_level", 0, "Index of the first campaign level")
	flags.Int64("mapgen.seed", 0, "Seed for generated levels (0 picks one)")
	flags.String("log.level", "", "Log level (debug, info, warn, error)")
	_ = flags.Parse(os.Args[1:])

	if err := config.Init(*configPath, flags); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	setupLogging(cfg.Log, cfg.Development.VerboseLogging)

	if *watch {
		config.WatchConfig(func() {
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded")
			setupLogging(config.Get().Log, config.Get().Development.VerboseLogging)
		})
	}

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
	ctrl, err := controller.New(context.Background(), levels, cfg.Game.StartLevel, store, game.ModelConfig{
		Logger:    log.Logger,
		LogEvents: cfg.Game.LogEvents,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start level")
	}

	breach := ui.NewBreachGame(ctrl, ui.Options{
		SaveName: *saveName,
		Autoplay: *autoplay,
		Rng:      rand.New(rand.NewSource(seed)),
	}, log.Logger)

	ebiten.SetWindowSize(cfg.UI.Window.Width, cfg.UI.Window.Height)
	ebiten.SetWindowTitle(cfg.UI.Window.Title)

	if err := ebiten.RunGame(breach); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("Game loop failed")
	}
}

func setupLogging(c config.LogConfig, verbose bool) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})
}
