package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Board BoardConfig `toml:"board"`
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
}

// BoardConfig holds board presentation settings.
type BoardConfig struct {
	ItemCount int    `mapstructure:"item_count" toml:"item_count"`
	Strategy  string `toml:"strategy"` // vertical, horizontal or grid
	Columns   int    `toml:"columns"`  // items per row in grid strategy
	Trashable bool   `toml:"trashable"`
	Minimal   bool   `toml:"minimal"`
	Vertical  bool   `toml:"vertical"` // stack containers top to bottom
	Handle    bool   `toml:"handle"`   // items drag only by their handle
	SeedFile  string `mapstructure:"seed_file" toml:"seed_file"`
}

// StoreConfig holds saved-board settings. An empty Path disables the store.
type StoreConfig struct {
	Path  string `toml:"path"`
	Board string `toml:"board"`
}

// LogConfig holds logging settings. An empty File discards logs.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

const (
	StrategyVertical   = "vertical"
	StrategyHorizontal = "horizontal"
	StrategyGrid       = "grid"
)

// Load reads configuration from file and env. Env var overrides use prefix MULTICOL_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("board.item_count", 3)
	v.SetDefault("board.strategy", StrategyVertical)
	v.SetDefault("board.columns", 1)
	v.SetDefault("board.trashable", true)
	v.SetDefault("board.minimal", false)
	v.SetDefault("board.vertical", false)
	v.SetDefault("board.handle", false)
	v.SetDefault("board.seed_file", "")
	v.SetDefault("store.path", "")
	v.SetDefault("store.board", "default")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MULTICOL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "multicol"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MULTICOL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks enumerated and ranged settings.
func (c Config) Validate() error {
	switch c.Board.Strategy {
	case StrategyVertical, StrategyHorizontal, StrategyGrid:
	default:
		return fmt.Errorf("board.strategy: unknown value %q", c.Board.Strategy)
	}
	if c.Board.ItemCount < 0 {
		return fmt.Errorf("board.item_count: must not be negative")
	}
	if c.Board.Columns < 1 {
		return fmt.Errorf("board.columns: must be at least 1")
	}
	return nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("MULTICOL_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "multicol", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("board.item_count", cfg.Board.ItemCount)
	v.Set("board.strategy", cfg.Board.Strategy)
	v.Set("board.columns", cfg.Board.Columns)
	v.Set("board.trashable", cfg.Board.Trashable)
	v.Set("board.minimal", cfg.Board.Minimal)
	v.Set("board.vertical", cfg.Board.Vertical)
	v.Set("board.handle", cfg.Board.Handle)
	v.Set("board.seed_file", cfg.Board.SeedFile)
	v.Set("store.path", cfg.Store.Path)
	v.Set("store.board", cfg.Store.Board)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
