package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/ports"
)

// Messages shown by the console loop.
const (
	RepromptMessage = "Please choose a valid number."
	EndMessage      = "You have reached the end of this story!"
)

// ErrAborted is returned when the reader leaves before reaching an ending
// ("exit", "quit" or end of input).
var ErrAborted = errors.New("story aborted by reader")

// Runner handles the reading loop of a story engine using provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Headless suppresses the banner and the recap.
	Headless bool

	// Title is printed as a banner before the first node.
	Title string
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run drives session until it reaches a terminal node or the reader leaves.
// If session is nil, engine.Start is called to create one.
// The returned session is always the latest valid one, even on error.
func (r *Runner) Run(ctx context.Context, engine ports.StoryEngine, session *domain.Session) (*domain.Session, error) {
	handler := r.resolveHandler()
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	if session == nil {
		s, err := engine.Start(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to start session: %w", err)
		}
		session = s
	}

	if !r.Headless && r.Title != "" {
		if err := handler.SystemOutput(ctx, fmt.Sprintf("=== %s ===", r.Title)); err != nil {
			return session, fmt.Errorf("output error: %w", err)
		}
	}

	for {
		view, err := engine.CurrentView(session)
		if err != nil {
			return session, fmt.Errorf("render error: %w", err)
		}
		if err := handler.Output(ctx, view); err != nil {
			return session, fmt.Errorf("output error: %w", err)
		}

		if view.Terminal {
			return session, r.finish(ctx, handler, engine, session)
		}

		next, err := r.choose(ctx, handler, engine, session, view)
		if err != nil {
			return session, err
		}
		logger.Debug("runner advanced", "session_id", session.ID, "from", view.NodeID, "to", next.Current)
		session = next
	}
}

// choose reads input until it yields a valid advance.
func (r *Runner) choose(ctx context.Context, handler IOHandler, engine ports.StoryEngine, session *domain.Session, view domain.View) (*domain.Session, error) {
	prompt := Prompt(len(view.Choices))
	for {
		text, err := handler.Input(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return nil, ErrAborted
			}
			return nil, fmt.Errorf("input error: %w", err)
		}

		if IsExitCommand(text) {
			return nil, ErrAborted
		}

		idx, err := ParseChoice(text, len(view.Choices))
		if err != nil {
			if err := handler.SystemOutput(ctx, RepromptMessage); err != nil {
				return nil, fmt.Errorf("output error: %w", err)
			}
			continue
		}

		next, err := engine.Advance(ctx, session, idx)
		if errors.Is(err, domain.ErrInvalidChoiceIndex) {
			if err := handler.SystemOutput(ctx, RepromptMessage); err != nil {
				return nil, fmt.Errorf("output error: %w", err)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("navigation error: %w", err)
		}
		return next, nil
	}
}

func (r *Runner) finish(ctx context.Context, handler IOHandler, engine ports.StoryEngine, session *domain.Session) error {
	if err := handler.SystemOutput(ctx, EndMessage); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	if r.Headless {
		return nil
	}
	if err := handler.Recap(ctx, engine.History(session)); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	return nil
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	// Memoize to prevent creating new pumps on subsequent Run() calls
	r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	return r.Handler
}
