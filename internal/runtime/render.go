package runtime

import (
	"fmt"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// CurrentView projects the session's current node for a front-end.
func (e *Engine) CurrentView(session *domain.Session) (domain.View, error) {
	if session == nil {
		return domain.View{}, ErrNilSession
	}
	node, err := e.graph.GetNode(session.Current)
	if err != nil {
		return domain.View{}, fmt.Errorf("current node: %w", err)
	}
	return domain.NewView(node), nil
}
