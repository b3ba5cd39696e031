package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	mcpAdapter "github.com/aretw0/storybuilder/pkg/adapters/mcp"
)

// RunMCP exposes the story as MCP tools over stdio or SSE.
// Logs go to Stderr so they never corrupt JSON-RPC on Stdout.
func RunMCP(ctx context.Context, opts Options) error {
	logger, err := createLogger(opts, false)
	if err != nil {
		return err
	}
	engine, err := NewEngine(opts, logger)
	if err != nil {
		return err
	}
	sessions, closeFn, err := openSessions(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	srv := mcpAdapter.NewServer(engine, sessions, mcpAdapter.WithLogger(logger))

	switch opts.Transport {
	case "", "stdio":
		logger.Info("starting MCP server", "transport", "stdio", "story", engine.Name)
		return srv.ServeStdio()
	case "sse":
		logger.Info("starting MCP server", "transport", "sse", "addr", opts.Addr, "story", engine.Name)
		if err := srv.ServeSSE(ctx, opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp server: %w", err)
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", opts.Transport)
	}
}
