package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/aretw0/storybuilder/pkg/domain"
)

// ErrNilSession is returned when an operation receives no session.
var ErrNilSession = errors.New("nil session")

// Engine walks a story graph. It is stateless: every call takes a session
// and returns a new one, so a single Engine can serve any number of readers.
type Engine struct {
	graph  *domain.Graph
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine over an already built graph.
func NewEngine(graph *domain.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:  graph,
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine walks.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Start creates a session positioned at the start node with its visit recorded.
// A start node without choices yields a session that is already finished.
func (e *Engine) Start(ctx context.Context, sessionID string) (*domain.Session, error) {
	node, err := e.graph.GetNode(e.graph.StartKey())
	if err != nil {
		return nil, fmt.Errorf("cannot start story: %w", err)
	}

	session := domain.NewSession(sessionID, node.ID).Visit(node)
	e.logger.Debug("session started", "session_id", sessionID, "node_id", node.ID)

	e.emitNode(ctx, e.hooks.OnSessionStart, domain.EventSessionStart, sessionID, node)
	e.emitNode(ctx, e.hooks.OnNodeEnter, domain.EventNodeEnter, sessionID, node)
	if node.IsTerminal() {
		e.emitNode(ctx, e.hooks.OnSessionFinish, domain.EventSessionFinish, sessionID, node)
	}
	return session, nil
}

// IsFinished reports whether the session's current node is an ending.
// Sessions pointing at nodes the graph does not know fall back to their status.
func (e *Engine) IsFinished(session *domain.Session) bool {
	if session == nil {
		return true
	}
	node, err := e.graph.GetNode(session.Current)
	if err != nil {
		return session.IsFinished()
	}
	return node.IsTerminal()
}

// History returns a copy of the visited texts, oldest first.
func (e *Engine) History(session *domain.Session) []string {
	if session == nil {
		return []string{}
	}
	return append([]string{}, session.VisitedTexts...)
}

func (e *Engine) emitNode(ctx context.Context, hook func(context.Context, *domain.NodeEvent), typ domain.EventType, sessionID string, node domain.Node) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: e.now(), Type: typ, SessionID: sessionID},
		NodeID:    node.ID,
		Terminal:  node.IsTerminal(),
	})
}

func (e *Engine) emitChoice(ctx context.Context, sessionID string, from domain.Node, index int) {
	if e.hooks.OnChoice == nil {
		return
	}
	c := from.Choices[index]
	e.hooks.OnChoice(ctx, &domain.ChoiceEvent{
		EventBase:  domain.EventBase{Timestamp: e.now(), Type: domain.EventChoice, SessionID: sessionID},
		FromNodeID: from.ID,
		ToNodeID:   c.Target,
		Index:      index,
		Label:      c.Label,
	})
}
