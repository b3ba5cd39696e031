package storybuilder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/storybuilder/internal/compiler"
	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/internal/runtime"
	"github.com/aretw0/storybuilder/pkg/adapters/file"
	loamAdapter "github.com/aretw0/storybuilder/pkg/adapters/loam"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/ports"
	"github.com/aretw0/storybuilder/pkg/stories"
	"github.com/google/uuid"
)

// DefaultEntryNode is the start key used when neither the options nor the
// story source name one.
const DefaultEntryNode = "start"

// Engine is the high-level entry point for the library.
// It owns a validated story graph and wraps the stateless traversal runtime.
type Engine struct {
	runtime    *runtime.Engine
	loader     ports.GraphLoader
	graph      *domain.Graph
	issues     []domain.ValidationIssue
	entryNode  string
	maxChoices int
	lenient    bool
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	newID      func() string

	// Name is a human label for the story (its title or directory name).
	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom GraphLoader, bypassing source resolution.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEntryNode overrides the start node declared by the story source.
func WithEntryNode(nodeID string) Option {
	return func(e *Engine) {
		e.entryNode = nodeID
	}
}

// WithMaxChoices reports nodes with more than n choices as validation issues.
func WithMaxChoices(n int) Option {
	return func(e *Engine) {
		e.maxChoices = n
	}
}

// WithLenientValidation lets New succeed on a graph with validation issues.
// The issues are logged and remain available through Issues.
func WithLenientValidation() Option {
	return func(e *Engine) {
		e.lenient = true
	}
}

// WithSessionIDGenerator replaces the random session IDs assigned by Start.
func WithSessionIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New loads, compiles and validates a story.
//
// source selects the story when no loader is injected:
//   - "" uses the built-in default story
//   - a directory is read as a Loam repository (one markdown file per node)
//   - any other path is read as a YAML story file
//   - "builtin:<name>" selects another built-in story
//
// Unless WithLenientValidation is given, a graph with validation issues is
// rejected with a *domain.ValidationError.
func New(source string, opts ...Option) (*Engine, error) {
	eng := &Engine{newID: uuid.NewString}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		loader, name, err := resolveSource(source)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
		eng.Name = name
	} else if source != "" {
		eng.Name = filepath.Base(source)
	}
	if t, ok := eng.loader.(ports.Titled); ok && t.Title() != "" {
		eng.Name = t.Title()
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("story", eng.Name)
	}

	graph, err := compiler.Compile(eng.loader, eng.startKey())
	if err != nil {
		return nil, fmt.Errorf("failed to load story: %w", err)
	}
	eng.graph = graph

	var vopts []domain.ValidateOption
	if eng.maxChoices > 0 {
		vopts = append(vopts, domain.WithMaxChoices(eng.maxChoices))
	}
	eng.issues = graph.Validate(vopts...)
	if len(eng.issues) > 0 {
		if !eng.lenient {
			return nil, &domain.ValidationError{Issues: eng.issues}
		}
		for _, issue := range eng.issues {
			eng.logger.Warn("story validation issue", "kind", issue.Kind, "node_id", issue.NodeID, "detail", issue.String())
		}
	}

	eng.runtime = runtime.NewEngine(graph,
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)
	eng.logger.Debug("story loaded", "nodes", graph.Len(), "start", graph.StartKey())
	return eng, nil
}

func (e *Engine) startKey() string {
	if e.entryNode != "" {
		return e.entryNode
	}
	if sp, ok := e.loader.(ports.StartProvider); ok && sp.StartNode() != "" {
		return sp.StartNode()
	}
	return DefaultEntryNode
}

func resolveSource(source string) (ports.GraphLoader, string, error) {
	if source == "" {
		l, err := stories.OpenDefault()
		return l, stories.Default, err
	}
	if name, ok := strings.CutPrefix(source, "builtin:"); ok {
		l, err := stories.Open(name)
		return l, name, err
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, "", fmt.Errorf("story source: %w", err)
	}
	name := filepath.Base(source)
	if info.IsDir() {
		l, err := loamAdapter.Open(source)
		return l, name, err
	}
	l, err := file.Open(source)
	return l, strings.TrimSuffix(name, filepath.Ext(name)), err
}

// Start begins a new reading session with a fresh ID.
func (e *Engine) Start(ctx context.Context) (*domain.Session, error) {
	return e.runtime.Start(ctx, e.newID())
}

// StartWithID begins a new reading session under the given ID.
func (e *Engine) StartWithID(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.runtime.Start(ctx, sessionID)
}

// CurrentView projects the current node for rendering. It never changes the session.
func (e *Engine) CurrentView(session *domain.Session) (domain.View, error) {
	return e.runtime.CurrentView(session)
}

// Advance takes the choice at index (zero-based) and returns the next session.
// The given session is never modified.
func (e *Engine) Advance(ctx context.Context, session *domain.Session, index int) (*domain.Session, error) {
	return e.runtime.Advance(ctx, session, index)
}

// IsFinished reports whether the session reached an ending.
func (e *Engine) IsFinished(session *domain.Session) bool {
	return e.runtime.IsFinished(session)
}

// History returns the texts visited so far, oldest first.
func (e *Engine) History(session *domain.Session) []string {
	return e.runtime.History(session)
}

// Graph returns the loaded story graph.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Issues returns the validation issues found at load time (non-empty only in lenient mode).
func (e *Engine) Issues() []domain.ValidationIssue {
	return append([]domain.ValidationIssue{}, e.issues...)
}

// Inspect returns every node of the story for visualization tools.
func (e *Engine) Inspect() []domain.Node {
	return e.graph.Nodes()
}

// Loader returns the underlying GraphLoader used by the engine.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}

var _ ports.StoryEngine = (*Engine)(nil)
