package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
	"github.com/mitchelldurbincs/bridgefront/internal/selection"
)

// Config holds all configuration for the application
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Selection SelectionConfig `mapstructure:"selection"`
	Submit    SubmitConfig    `mapstructure:"submit"`
	Demo      DemoConfig      `mapstructure:"demo"`
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RulesConfig holds the tunable rule constants
type RulesConfig struct {
	OccupancyCap                 int  `mapstructure:"occupancy_cap"`
	LinksRequireBridge           bool `mapstructure:"links_require_bridge"`
	ChampionBypassDefaultInclude bool `mapstructure:"champion_bypass_default_include"`
}

// SelectionConfig holds selection behaviour settings
type SelectionConfig struct {
	PathAllowBacktrack bool `mapstructure:"path_allow_backtrack"`
}

// SubmitConfig holds action submission settings
type SubmitConfig struct {
	// DedupeWindow is how long an identical resubmission reuses its request id
	DedupeWindow time.Duration `mapstructure:"dedupe_window"`
}

// DemoConfig holds the generated demo board settings
type DemoConfig struct {
	BoardRadius int   `mapstructure:"board_radius"`
	Players     int   `mapstructure:"players"`
	Seed        int64 `mapstructure:"seed"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("rules.occupancy_cap", rules.DefaultOccupancyCap)
	v.SetDefault("rules.links_require_bridge", false)
	v.SetDefault("rules.champion_bypass_default_include", true)

	v.SetDefault("selection.path_allow_backtrack", true)

	v.SetDefault("submit.dedupe_window", "2m")

	v.SetDefault("demo.board_radius", 4)
	v.SetDefault("demo.players", 2)
	v.SetDefault("demo.seed", 1)
}

// Init initializes the configuration
func Init(configPath string) error {
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
		v.AddConfigPath("/etc/bridgefront")
	}

	v.SetEnvPrefix("BFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and the environment still apply
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Set applies a runtime override. The override is rejected, and the previous
// values kept, when the result fails to decode or validate.
func Set(key string, value any) error {
	prev := v.Get(key)
	v.Set(key, value)

	next := &Config{}
	err := v.Unmarshal(next)
	if err == nil {
		err = Validate(next)
	}
	if err != nil {
		v.Set(key, prev)
		return fmt.Errorf("set %s: %w", key, err)
	}
	*cfg = *next
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A changed file that
// fails validation is ignored and the previous values stay in effect.
func WatchConfig(onChange func(*Config)) {
	watched, target := v, cfg
	watched.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		next := &Config{}
		if err := watched.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*target = *next
		if onChange != nil {
			onChange(next)
		}
	})
	watched.WatchConfig()
}

// RulesOptions copies the rule constants into the value the rule functions take
func (c *Config) RulesOptions() rules.Options {
	return rules.Options{
		OccupancyCap:              c.Rules.OccupancyCap,
		LinksRequireBridge:        c.Rules.LinksRequireBridge,
		IncludeChampionsByDefault: c.Rules.ChampionBypassDefaultInclude,
	}
}

// SelectionOptions copies the selection settings
func (c *Config) SelectionOptions() selection.Options {
	return selection.Options{PathBacktrack: c.Selection.PathAllowBacktrack}
}

// SessionConfig assembles everything a selection session copies at construction
func (c *Config) SessionConfig() selection.SessionConfig {
	return selection.SessionConfig{
		Rules:     c.RulesOptions(),
		Selection: c.SelectionOptions(),
		LedgerTTL: c.Submit.DedupeWindow,
	}
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"console", "json"}
)

// Validate validates the configuration values
func Validate(c *Config) error {
	if !slices.Contains(validLevels, strings.ToLower(c.Logging.Level)) {
		return fmt.Errorf("logging.level must be one of %v", validLevels)
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Logging.Format)) {
		return fmt.Errorf("logging.format must be one of %v", validFormats)
	}

	if c.Rules.OccupancyCap < 1 {
		return fmt.Errorf("rules.occupancy_cap must be at least 1")
	}

	if c.Submit.DedupeWindow < 0 {
		return fmt.Errorf("submit.dedupe_window must be non-negative")
	}

	if c.Demo.BoardRadius < 1 || c.Demo.BoardRadius > 12 {
		return fmt.Errorf("demo.board_radius must be between 1 and 12")
	}
	if c.Demo.Players < 2 || c.Demo.Players > 6 {
		return fmt.Errorf("demo.players must be between 2 and 6")
	}

	return nil
}
