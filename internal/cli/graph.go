package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/internal/presentation/graph"
)

// RunGraph prints the story graph as a Mermaid diagram. With a session ID
// the session's trail is highlighted; the session is read from the
// configured store, so this needs Redis or a session directory to see
// another process's sessions.
func RunGraph(ctx context.Context, opts Options, sessionID string, out io.Writer) error {
	opts.Lenient = true
	logger := logging.NewNop()
	engine, err := NewEngine(opts, logger)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if sessionID != "" {
		sessions, closeFn, err := openSessions(ctx, opts, logger)
		if err != nil {
			return err
		}
		defer closeFn()

		s, err := sessions.Load(ctx, sessionID)
		if err != nil {
			return fmt.Errorf("session %s: %w", sessionID, err)
		}
		overlay = graph.OverlayFor(s)
	}

	_, err = fmt.Fprint(out, graph.GenerateMermaid(engine.Graph(), overlay))
	return err
}
