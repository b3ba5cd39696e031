package ports

import (
	"context"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// StoryEngine is the traversal surface used by adapters (HTTP, MCP, console).
// Implementations are stateless: sessions are passed in and returned.
type StoryEngine interface {
	Start(ctx context.Context) (*domain.Session, error)
	CurrentView(session *domain.Session) (domain.View, error)
	Advance(ctx context.Context, session *domain.Session, index int) (*domain.Session, error)
	IsFinished(session *domain.Session) bool
	History(session *domain.Session) []string

	// Graph returns the loaded story graph for introspection.
	Graph() *domain.Graph
}
