package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/pkg/adapters/file"
	"github.com/aretw0/storybuilder/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/storybuilder/pkg/adapters/redis"
	"github.com/aretw0/storybuilder/pkg/ports"
	"github.com/aretw0/storybuilder/pkg/runner"
	"github.com/aretw0/storybuilder/pkg/session"
)

// createLogger configures the application logger.
// quiet commands own Stdout for the story itself, so they only log in debug mode.
func createLogger(opts Options, quiet bool) (*slog.Logger, error) {
	if quiet && !opts.Debug {
		return logging.NewNop(), nil
	}

	level := slog.LevelDebug
	if !opts.Debug {
		l, err := logging.ParseLevel(opts.LogLevel)
		if err != nil {
			return nil, err
		}
		level = l
	}

	switch strings.ToLower(opts.LogFormat) {
	case "", "text":
		return logging.New(level), nil
	case "json":
		return logging.NewJSON(os.Stderr, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (supported: text, json)", opts.LogFormat)
	}
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// handleExecutionError treats a reader leaving the story as a clean exit.
func handleExecutionError(err error) error {
	if err == nil || errors.Is(err, runner.ErrAborted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openSessions builds the session manager backing serve and mcp.
// Redis wins over a session directory; with neither, sessions live in
// memory and die with the process.
// The returned close function releases the backing store.
func openSessions(ctx context.Context, opts Options, logger *slog.Logger) (*session.Manager, func() error, error) {
	if opts.RedisURL == "" {
		noop := func() error { return nil }
		if opts.SessionDir != "" {
			logger.Info("using file session store", "dir", opts.SessionDir)
			return session.NewManager(file.NewStore(opts.SessionDir), session.WithLogger(logger)), noop, nil
		}
		logger.Debug("using in-memory session store")
		return session.NewManager(memory.NewStore(), session.WithLogger(logger)), noop, nil
	}

	var storeOpts []redisAdapter.Option
	if opts.SessionTTL > 0 {
		storeOpts = append(storeOpts, redisAdapter.WithTTL(opts.SessionTTL))
	}
	store, err := redisAdapter.NewFromURL(opts.RedisURL, storeOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	logger.Info("using redis session store", "ttl", opts.SessionTTL)

	var locker ports.DistributedLocker = redisAdapter.NewLocker(store.Client(), store.Prefix())
	manager := session.NewManager(store,
		session.WithLocker(locker),
		session.WithLogger(logger),
	)
	return manager, store.Close, nil
}
