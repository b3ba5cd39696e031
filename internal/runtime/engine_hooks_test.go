package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/storybuilder/internal/runtime"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	g, err := domain.NewGraph("start",
		domain.Node{ID: "start", Text: "A", Choices: []domain.Choice{{Label: "x", Target: "end"}}},
		domain.Node{ID: "end", Text: "B"},
	)
	require.NoError(t, err)

	var events []string
	var choice *domain.ChoiceEvent
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	hooks := domain.LifecycleHooks{
		OnSessionStart: func(_ context.Context, e *domain.NodeEvent) {
			events = append(events, "start:"+e.NodeID)
		},
		OnNodeEnter: func(_ context.Context, e *domain.NodeEvent) {
			assert.Equal(t, fixed, e.Timestamp)
			assert.Equal(t, "s1", e.SessionID)
			events = append(events, "enter:"+e.NodeID)
		},
		OnChoice: func(_ context.Context, e *domain.ChoiceEvent) {
			choice = e
			events = append(events, "choice:"+e.Label)
		},
		OnSessionFinish: func(_ context.Context, e *domain.NodeEvent) {
			assert.True(t, e.Terminal)
			events = append(events, "finish:"+e.NodeID)
		},
	}

	engine := runtime.NewEngine(g,
		runtime.WithLifecycleHooks(hooks),
		runtime.WithClock(func() time.Time { return fixed }),
	)

	ctx := context.Background()
	session, err := engine.Start(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"start:start", "enter:start"}, events)

	// A rejected choice emits nothing.
	_, err = engine.Advance(ctx, session, 7)
	require.Error(t, err)
	assert.Len(t, events, 2)

	_, err = engine.Advance(ctx, session, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"start:start", "enter:start", "choice:x", "enter:end", "finish:end"}, events)

	require.NotNil(t, choice)
	assert.Equal(t, "start", choice.FromNodeID)
	assert.Equal(t, "end", choice.ToNodeID)
	assert.Equal(t, 0, choice.Index)
	assert.Equal(t, domain.EventChoice, choice.Type)
}
