package runner

import (
	"context"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// IOHandler defines the strategy for interacting with the reader.
// This allows switching between Text (console) and JSON (structured) modes.
type IOHandler interface {
	// Output presents the current node to the reader.
	Output(ctx context.Context, view domain.View) error

	// Input reads a response from the reader after showing prompt.
	Input(ctx context.Context, prompt string) (string, error)

	// SystemOutput presents a meta-message (re-prompts, end notices).
	// This is distinct from story content.
	SystemOutput(ctx context.Context, msg string) error

	// Recap presents the texts of every node visited, in order.
	Recap(ctx context.Context, history []string) error
}

// ContentRenderer is a function that transforms node text before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// ImageDescriber returns a one-line text rendition of a node image.
type ImageDescriber func(name string) string
