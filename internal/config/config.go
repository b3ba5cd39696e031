// Package config loads process settings from the environment.
//
// An optional .env file is read first; variables already set in the
// environment win over the file, and command-line flags win over both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultDotEnv is the file Load reads when it exists.
const DefaultDotEnv = ".env"

// Config holds the settings shared by every sub-command.
type Config struct {
	Story      string        `env:"STORYBUILDER_STORY"`
	Start      string        `env:"STORYBUILDER_START"`
	Assets     string        `env:"STORYBUILDER_ASSETS"       envDefault:"assets"`
	Addr       string        `env:"STORYBUILDER_ADDR"         envDefault:":8080"`
	RedisURL   string        `env:"STORYBUILDER_REDIS_URL"`
	SessionDir string        `env:"STORYBUILDER_SESSION_DIR"`
	SessionTTL time.Duration `env:"STORYBUILDER_SESSION_TTL"  envDefault:"24h"`
	MaxChoices int           `env:"STORYBUILDER_MAX_CHOICES"`
	Metrics    bool          `env:"STORYBUILDER_METRICS"      envDefault:"true"`
	LogLevel   string        `env:"STORYBUILDER_LOG_LEVEL"    envDefault:"info"`
	LogFormat  string        `env:"STORYBUILDER_LOG_FORMAT"   envDefault:"text"`
}

// Load reads dotenvPath (if present) and parses the environment.
// An empty dotenvPath means DefaultDotEnv.
func Load(dotenvPath string) (Config, error) {
	if dotenvPath == "" {
		dotenvPath = DefaultDotEnv
	}
	if _, err := os.Stat(dotenvPath); err == nil {
		if err := godotenv.Load(dotenvPath); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("stat %s: %w", dotenvPath, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxChoices < 0 {
		return Config{}, fmt.Errorf("parse env: STORYBUILDER_MAX_CHOICES must not be negative, got %d", cfg.MaxChoices)
	}
	return cfg, nil
}
