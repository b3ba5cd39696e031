package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// Advance takes the choice at index (zero-based) from the current node and
// returns the session positioned at its target.
//
// On any error the given session is untouched and no new session is produced:
//   - the current node is an ending: domain.ErrSessionFinished
//   - index is out of range: *domain.InvalidChoiceError
//   - the target is not in the graph: *domain.UnknownNodeError
func (e *Engine) Advance(ctx context.Context, session *domain.Session, index int) (*domain.Session, error) {
	if session == nil {
		return nil, ErrNilSession
	}

	current, err := e.graph.GetNode(session.Current)
	if err != nil {
		return nil, fmt.Errorf("current node: %w", err)
	}
	if current.IsTerminal() {
		return nil, domain.ErrSessionFinished
	}
	if index < 0 || index >= len(current.Choices) {
		return nil, &domain.InvalidChoiceError{NodeID: current.ID, Index: index, Count: len(current.Choices)}
	}

	choice := current.Choices[index]
	target, err := e.graph.GetNode(choice.Target)
	if err != nil {
		e.logger.Warn("choice points to a missing node",
			"session_id", session.ID, "node_id", current.ID, "target", choice.Target)
		return nil, err
	}

	next := session.Visit(target)
	e.logger.Debug("advanced", "session_id", session.ID, "from", current.ID, "to", target.ID, "choice", index)

	e.emitChoice(ctx, session.ID, current, index)
	e.emitNode(ctx, e.hooks.OnNodeEnter, domain.EventNodeEnter, session.ID, target)
	if target.IsTerminal() {
		e.emitNode(ctx, e.hooks.OnSessionFinish, domain.EventSessionFinish, session.ID, target)
	}
	return next, nil
}
