package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSessionStart  EventType = "session_start"
	EventNodeEnter     EventType = "node_enter"
	EventChoice        EventType = "choice"
	EventSessionFinish EventType = "session_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// NodeEvent represents entering a node, or starting/finishing a session at one.
type NodeEvent struct {
	EventBase
	NodeID   string `json:"node_id"`
	Terminal bool   `json:"terminal"`
}

// ChoiceEvent represents a reader taking a choice.
type ChoiceEvent struct {
	EventBase
	FromNodeID string `json:"from_node_id"`
	ToNodeID   string `json:"to_node_id"`
	Index      int    `json:"index"`
	Label      string `json:"label"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the caller's goroutine; nil hooks are skipped.
type LifecycleHooks struct {
	OnSessionStart  func(context.Context, *NodeEvent)
	OnNodeEnter     func(context.Context, *NodeEvent)
	OnChoice        func(context.Context, *ChoiceEvent)
	OnSessionFinish func(context.Context, *NodeEvent)
}

// ChainHooks combines several hook sets; each callback runs in argument order.
func ChainHooks(sets ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range sets {
		out.OnSessionStart = chainNode(out.OnSessionStart, h.OnSessionStart)
		out.OnNodeEnter = chainNode(out.OnNodeEnter, h.OnNodeEnter)
		out.OnSessionFinish = chainNode(out.OnSessionFinish, h.OnSessionFinish)
		out.OnChoice = chainChoice(out.OnChoice, h.OnChoice)
	}
	return out
}

func chainNode(a, b func(context.Context, *NodeEvent)) func(context.Context, *NodeEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *NodeEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainChoice(a, b func(context.Context, *ChoiceEvent)) func(context.Context, *ChoiceEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *ChoiceEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
