package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	httpAdapter "github.com/aretw0/storybuilder/pkg/adapters/http"
	"github.com/aretw0/storybuilder/pkg/assets"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/observability"
	"github.com/aretw0/storybuilder/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

// ServeStack is a fully wired HTTP front-end.
type ServeStack struct {
	Handler  http.Handler
	Sessions *session.Manager
	Metrics  *observability.Metrics
	closeFn  func() error
}

// Close releases the session store.
func (s *ServeStack) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// BuildServer loads the story and wires the HTTP handler with its session
// store, assets and (optionally) metrics.
func BuildServer(ctx context.Context, opts Options, logger *slog.Logger) (*ServeStack, error) {
	var metrics *observability.Metrics
	var hooks []domain.LifecycleHooks
	if opts.Metrics {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
		hooks = append(hooks, metrics.Hooks())
	}

	engine, err := NewEngine(opts, logger, hooks...)
	if err != nil {
		return nil, err
	}

	sessions, closeFn, err := openSessions(ctx, opts, logger)
	if err != nil {
		return nil, err
	}

	serverOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithStoryName(engine.Name),
		httpAdapter.WithAssets(assets.NewResolver(opts.Assets, assets.WithLogger(logger))),
	}
	if metrics != nil {
		serverOpts = append(serverOpts, httpAdapter.WithMetrics(metrics.Handler()))
	}

	handler, err := httpAdapter.NewHandler(engine, sessions, serverOpts...)
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("failed to build http handler: %w", err)
	}

	return &ServeStack{
		Handler:  handler,
		Sessions: sessions,
		Metrics:  metrics,
		closeFn:  closeFn,
	}, nil
}

// RunServe serves the HTTP front-end until ctx is cancelled, then shuts
// down gracefully.
func RunServe(ctx context.Context, opts Options, out io.Writer) error {
	logger, err := createLogger(opts, false)
	if err != nil {
		return err
	}
	stack, err := BuildServer(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           stack.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSystemMessage(out, "Starting StoryBuilder server on %s", srv.Addr)
	printSystemMessage(out, "Open %s/swagger to explore the API", baseURL(srv.Addr))

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down", "timeout", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "StoryBuilder server stopped gracefully")
		return nil
	}
}

// baseURL turns a listen address into a browsable URL.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
