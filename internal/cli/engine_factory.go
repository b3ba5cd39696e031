package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/storybuilder"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/observability"
)

// NewEngine initializes a story engine with standard CLI conventions.
// Extra hooks (metrics, for instance) are chained after the debug hooks.
func NewEngine(opts Options, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*storybuilder.Engine, error) {
	engineOpts := []storybuilder.Option{storybuilder.WithLogger(logger)}

	if opts.Debug {
		hooks = append([]domain.LifecycleHooks{observability.LoggingHooks(logger)}, hooks...)
	}
	if len(hooks) > 0 {
		engineOpts = append(engineOpts, storybuilder.WithLifecycleHooks(domain.ChainHooks(hooks...)))
	}
	if opts.Start != "" {
		engineOpts = append(engineOpts, storybuilder.WithEntryNode(opts.Start))
	}
	if opts.MaxChoices > 0 {
		engineOpts = append(engineOpts, storybuilder.WithMaxChoices(opts.MaxChoices))
	}
	if opts.Lenient {
		engineOpts = append(engineOpts, storybuilder.WithLenientValidation())
	}

	engine, err := storybuilder.New(opts.Story, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}
