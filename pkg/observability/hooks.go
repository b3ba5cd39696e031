package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that log every event at debug level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "session_start", "session_id", e.SessionID, "node_id", e.NodeID)
		},
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "node_enter", "session_id", e.SessionID, "node_id", e.NodeID, "terminal", e.Terminal)
		},
		OnChoice: func(ctx context.Context, e *domain.ChoiceEvent) {
			logger.DebugContext(ctx, "choice",
				"session_id", e.SessionID,
				"from", e.FromNodeID,
				"to", e.ToNodeID,
				"index", e.Index,
				"label", e.Label,
			)
		},
		OnSessionFinish: func(ctx context.Context, e *domain.NodeEvent) {
			logger.DebugContext(ctx, "session_finish", "session_id", e.SessionID, "node_id", e.NodeID)
		},
	}
}
