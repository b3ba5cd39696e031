package cli

import (
	"time"

	"github.com/aretw0/storybuilder/internal/config"
)

// Options contains the configuration shared by every command.
// Commands ignore the fields that do not concern them.
type Options struct {
	Story      string
	Start      string
	Assets     string
	Debug      bool
	Lenient    bool
	MaxChoices int
	LogLevel   string
	LogFormat  string

	// play
	JSON     bool
	Headless bool

	// serve and mcp
	Addr       string
	RedisURL   string
	SessionDir string
	SessionTTL time.Duration
	Metrics    bool
	Transport  string
}

// FromConfig seeds Options from the environment. Flags are applied on top.
func FromConfig(cfg config.Config) Options {
	return Options{
		Story:      cfg.Story,
		Start:      cfg.Start,
		Assets:     cfg.Assets,
		MaxChoices: cfg.MaxChoices,
		LogLevel:   cfg.LogLevel,
		LogFormat:  cfg.LogFormat,
		Addr:       cfg.Addr,
		RedisURL:   cfg.RedisURL,
		SessionDir: cfg.SessionDir,
		SessionTTL: cfg.SessionTTL,
		Metrics:    cfg.Metrics,
		Transport:  "stdio",
	}
}
