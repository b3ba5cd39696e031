package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/storybuilder/internal/presentation/tui"
	"github.com/aretw0/storybuilder/pkg/assets"
	"github.com/aretw0/storybuilder/pkg/runner"
)

// RunPlay reads the story in the console until an ending is reached or the
// reader leaves. Leaving early (EOF, "exit", Ctrl+C) is not an error.
func RunPlay(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	logger, err := createLogger(opts, true)
	if err != nil {
		return err
	}
	engine, err := NewEngine(opts, logger)
	if err != nil {
		return err
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(in, out)
	} else {
		resolver := assets.NewResolver(opts.Assets, assets.WithLogger(logger))
		handlerOpts := []runner.TextHandlerOption{runner.WithTextHandlerImages(resolver.Describe)}
		if isTerminal(out) && !opts.Headless {
			handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
		}
		handler = runner.NewTextHandler(in, out, handlerOpts...)
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithHeadless(opts.Headless || opts.JSON),
		runner.WithTitle(engine.Name),
	)

	session, err := r.Run(ctx, engine, nil)
	if session != nil {
		logger.Debug("play finished", "session_id", session.ID, "node", session.Current, "finished", session.IsFinished())
		if err != nil && !opts.JSON && !opts.Headless && handleExecutionError(err) == nil {
			printSystemMessage(out, "Left the story at '%s'.", session.Current)
		}
	}
	return handleExecutionError(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsInteractive(f)
}
