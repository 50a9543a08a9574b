package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"kirosh/internal/ghost"
)

// Config is the runtime configuration shared by the game and the
// leaderboard server.
type Config struct {
	DataDir  string `env:"KIROSH_DATA_DIR"`
	LogLevel string `env:"KIROSH_LOG_LEVEL" envDefault:"info"`

	GhostMinInterval time.Duration `env:"KIROSH_GHOST_MIN_INTERVAL" envDefault:"60s"`
	GhostMaxInterval time.Duration `env:"KIROSH_GHOST_MAX_INTERVAL" envDefault:"180s"`
	GhostWarning     time.Duration `env:"KIROSH_GHOST_WARNING" envDefault:"3s"`
	GhostTimeLimit   time.Duration `env:"KIROSH_GHOST_TIME_LIMIT" envDefault:"10s"`
	GhostTypoGrace   time.Duration `env:"KIROSH_GHOST_TYPO_GRACE" envDefault:"2s"`

	HintPoll          time.Duration `env:"KIROSH_HINT_POLL" envDefault:"5s"`
	MorseAutoComplete time.Duration `env:"KIROSH_MORSE_AUTOCOMPLETE" envDefault:"1s"`

	// LeaderboardURL selects the HTTP leaderboard; empty uses the local
	// SQLite database.
	LeaderboardURL  string `env:"KIROSH_LEADERBOARD_URL"`
	LeaderboardDB   string `env:"KIROSH_LEADERBOARD_DB"`
	LeaderboardAddr string `env:"KIROSH_LEADERBOARD_ADDR" envDefault:":8080"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment, fills derived paths and validates.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	if cfg.LeaderboardDB == "" {
		cfg.LeaderboardDB = filepath.Join(cfg.DataDir, "leaderboard.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultDataDir is ~/.config/kirosh.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "kirosh"), nil
}

// Ghost returns the ghost timings.
func (c Config) Ghost() ghost.Config {
	return ghost.Config{
		MinInterval: c.GhostMinInterval,
		MaxInterval: c.GhostMaxInterval,
		Warning:     c.GhostWarning,
		TimeLimit:   c.GhostTimeLimit,
		TypoGrace:   c.GhostTypoGrace,
	}
}

func (c Config) Validate() error {
	var errs []error
	if err := c.Ghost().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.HintPoll <= 0 {
		errs = append(errs, fmt.Errorf("hint poll interval must be positive: %s", c.HintPoll))
	}
	if c.MorseAutoComplete <= 0 {
		errs = append(errs, fmt.Errorf("morse auto-complete delay must be positive: %s", c.MorseAutoComplete))
	}
	return errors.Join(errs...)
}
