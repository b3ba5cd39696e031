package runner

import (
	"context"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/ports"
)

// RichResponse combines a session and its view for rich clients (Web, MCP, etc).
type RichResponse struct {
	Session  *domain.Session `json:"session"`
	View     domain.View     `json:"view"`
	Finished bool            `json:"finished"`
}

// StartAndView starts a session and renders its first node.
func StartAndView(ctx context.Context, engine ports.StoryEngine) (*RichResponse, error) {
	session, err := engine.Start(ctx)
	if err != nil {
		return nil, err
	}
	return respond(engine, session)
}

// AdvanceAndView performs a choice and immediately renders the resulting node,
// so rich clients always receive the content of the node they just entered.
func AdvanceAndView(ctx context.Context, engine ports.StoryEngine, session *domain.Session, index int) (*RichResponse, error) {
	next, err := engine.Advance(ctx, session, index)
	if err != nil {
		return nil, err
	}
	return respond(engine, next)
}

// View renders session without changing it.
func View(engine ports.StoryEngine, session *domain.Session) (*RichResponse, error) {
	return respond(engine, session)
}

func respond(engine ports.StoryEngine, session *domain.Session) (*RichResponse, error) {
	view, err := engine.CurrentView(session)
	if err != nil {
		// The session is still returned so the caller can recover.
		return &RichResponse{Session: session, Finished: engine.IsFinished(session)}, err
	}
	return &RichResponse{
		Session:  session,
		View:     view,
		Finished: engine.IsFinished(session),
	}, nil
}
