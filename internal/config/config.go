package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchelldurbincs/IntoTheBreach/internal/game/mapgen"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	Mapgen      MapgenConfig      `mapstructure:"mapgen"`
	Log         LogConfig         `mapstructure:"log"`
	UI          UIConfig          `mapstructure:"ui"`
	Colors      ColorsConfig      `mapstructure:"colors"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds level loading and saving settings
type GameConfig struct {
	// Campaign is the path of the YAML level manifest; empty means a
	// generated level is played instead
	Campaign   string `mapstructure:"campaign"`
	StartLevel int    `mapstructure:"start_level"`
	SaveDir    string `mapstructure:"save_dir"`
	LogEvents  bool   `mapstructure:"log_events"`
	// EndTurnTimeoutMs bounds how long a front-end waits before starting a
	// turn resolution; 0 disables the timeout
	EndTurnTimeoutMs int `mapstructure:"end_turn_timeout_ms"`
}

// MapgenConfig holds random level generation settings
type MapgenConfig struct {
	Rows            int   `mapstructure:"rows"`
	Cols            int   `mapstructure:"cols"`
	Seed            int64 `mapstructure:"seed"`
	MountainRatio   int   `mapstructure:"mountain_ratio"`
	MaxVeinLength   int   `mapstructure:"max_vein_length"`
	Buildings       int   `mapstructure:"buildings"`
	BuildingHealth  int   `mapstructure:"building_health"`
	Mechs           int   `mapstructure:"mechs"`
	Enemies         int   `mapstructure:"enemies"`
	MinSpawnSpacing int   `mapstructure:"min_spawn_spacing"`
}

// MapConfig converts the settings for the level generator
func (m MapgenConfig) MapConfig() mapgen.MapConfig {
	return mapgen.MapConfig{
		Rows:            m.Rows,
		Cols:            m.Cols,
		MountainRatio:   m.MountainRatio,
		MaxVeinLength:   m.MaxVeinLength,
		Buildings:       m.Buildings,
		BuildingHealth:  m.BuildingHealth,
		Mechs:           m.Mechs,
		Enemies:         m.Enemies,
		MinSpawnSpacing: m.MinSpawnSpacing,
	}
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// UIConfig holds graphical client configuration
type UIConfig struct {
	Window       WindowConfig `mapstructure:"window"`
	TileSize     int          `mapstructure:"tile_size"`
	SidebarWidth int          `mapstructure:"sidebar_width"`
}

// WindowConfig holds window settings
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// ColorsConfig holds the graphical client palette
type ColorsConfig struct {
	Background      [3]int `mapstructure:"background"`
	GridLines       [3]int `mapstructure:"grid_lines"`
	Ground          [3]int `mapstructure:"ground"`
	Mountain        [3]int `mapstructure:"mountain"`
	Building        [3]int `mapstructure:"building"`
	Ruin            [3]int `mapstructure:"ruin"`
	Friendly        [3]int `mapstructure:"friendly"`
	Hostile         [3]int `mapstructure:"hostile"`
	Text            [3]int `mapstructure:"text"`
	MoveHighlight   [4]int `mapstructure:"move_highlight"`
	AttackHighlight [4]int `mapstructure:"attack_highlight"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging  bool `mapstructure:"verbose_logging"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.campaign", "")
	v.SetDefault("game.start_level", 0)
	v.SetDefault("game.save_dir", "saves")
	v.SetDefault("game.log_events", false)
	v.SetDefault("game.end_turn_timeout_ms", 0)

	// Level generation defaults
	v.SetDefault("mapgen.rows", 8)
	v.SetDefault("mapgen.cols", 8)
	v.SetDefault("mapgen.seed", 0)
	v.SetDefault("mapgen.mountain_ratio", 10)
	v.SetDefault("mapgen.max_vein_length", 3)
	v.SetDefault("mapgen.buildings", 5)
	v.SetDefault("mapgen.building_health", 3)
	v.SetDefault("mapgen.mechs", 2)
	v.SetDefault("mapgen.enemies", 2)
	v.SetDefault("mapgen.min_spawn_spacing", 3)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// UI defaults
	v.SetDefault("ui.window.width", 800)
	v.SetDefault("ui.window.height", 600)
	v.SetDefault("ui.window.title", "Into The Breach")
	v.SetDefault("ui.tile_size", 64)
	v.SetDefault("ui.sidebar_width", 200)

	// Color defaults
	v.SetDefault("colors.background", []int{20, 20, 28})
	v.SetDefault("colors.grid_lines", []int{50, 50, 60})
	v.SetDefault("colors.ground", []int{110, 140, 90})
	v.SetDefault("colors.mountain", []int{80, 80, 80})
	v.SetDefault("colors.building", []int{200, 170, 90})
	v.SetDefault("colors.ruin", []int{90, 70, 60})
	v.SetDefault("colors.friendly", []int{60, 120, 220})
	v.SetDefault("colors.hostile", []int{200, 60, 50})
	v.SetDefault("colors.text", []int{255, 255, 255})
	v.SetDefault("colors.move_highlight", []int{60, 120, 255, 110})
	v.SetDefault("colors.attack_highlight", []int{255, 60, 60, 110})

	// Development defaults
	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_coordinates", false)
}

// Init initializes the configuration. Flags whose names match config keys
// (e.g. "mapgen.seed") override the file and the environment when set.
func Init(configPath string, flags ...*pflag.FlagSet) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/into-the-breach")
	}

	v.SetEnvPrefix("ITB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, fs := range flags {
		if err := v.BindPFlags(fs); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A specific file that does not exist is fine: defaults apply.
		// For the default locations only ConfigFileNotFoundError is ignored.
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. Changes that fail
// validation are ignored and the previous values are kept.
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.StartLevel < 0 {
		return fmt.Errorf("game.start_level must be non-negative")
	}
	if c.Game.SaveDir == "" {
		return fmt.Errorf("game.save_dir must not be empty")
	}
	if c.Game.EndTurnTimeoutMs < 0 {
		return fmt.Errorf("game.end_turn_timeout_ms must be non-negative")
	}

	if err := c.Mapgen.MapConfig().Validate(); err != nil {
		return fmt.Errorf("mapgen: %w", err)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json")
	}

	if c.UI.Window.Width <= 0 || c.UI.Window.Height <= 0 {
		return fmt.Errorf("ui.window dimensions must be positive")
	}
	if c.UI.TileSize <= 0 {
		return fmt.Errorf("ui.tile_size must be positive")
	}
	if c.UI.SidebarWidth < 0 {
		return fmt.Errorf("ui.sidebar_width must be non-negative")
	}

	validateChannels := func(channels []int, name string) error {
		for i, v := range channels {
			if v < 0 || v > 255 {
				return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
			}
		}
		return nil
	}

	rgb := map[string][3]int{
		"colors.background": c.Colors.Background,
		"colors.grid_lines": c.Colors.GridLines,
		"colors.ground":     c.Colors.Ground,
		"colors.mountain":   c.Colors.Mountain,
		"colors.building":   c.Colors.Building,
		"colors.ruin":       c.Colors.Ruin,
		"colors.friendly":   c.Colors.Friendly,
		"colors.hostile":    c.Colors.Hostile,
		"colors.text":       c.Colors.Text,
	}
	for name, color := range rgb {
		if err := validateChannels(color[:], name); err != nil {
			return err
		}
	}
	if err := validateChannels(c.Colors.MoveHighlight[:], "colors.move_highlight"); err != nil {
		return err
	}
	if err := validateChannels(c.Colors.AttackHighlight[:], "colors.attack_highlight"); err != nil {
		return err
	}

	return nil
}
