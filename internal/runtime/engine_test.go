package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/storybuilder/internal/runtime"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, start string, nodes ...domain.Node) *runtime.Engine {
	t.Helper()
	g, err := domain.NewGraph(start, nodes...)
	require.NoError(t, err)
	return runtime.NewEngine(g)
}

func twoNodeEngine(t *testing.T) *runtime.Engine {
	return newEngine(t, "start",
		domain.Node{ID: "start", Text: "A", Choices: []domain.Choice{{Label: "x", Target: "end"}}},
		domain.Node{ID: "end", Text: "B", Choices: []domain.Choice{}},
	)
}

func branchingEngine(t *testing.T) *runtime.Engine {
	return newEngine(t, "hub",
		domain.Node{ID: "hub", Text: "Hub", Choices: []domain.Choice{
			{Label: "Zebra", Target: "z"},
			{Label: "Apple", Target: "a"},
			{Label: "Mango", Target: "m"},
		}},
		domain.Node{ID: "z", Text: "Z", Choices: []domain.Choice{{Label: "back", Target: "hub"}, {Label: "end", Target: "end"}}},
		domain.Node{ID: "a", Text: "A"},
		domain.Node{ID: "m", Text: "M", Choices: []domain.Choice{{Label: "end", Target: "end"}}},
		domain.Node{ID: "end", Text: "End"},
	)
}

func TestEngine_TwoNodeScenario(t *testing.T) {
	ctx := context.Background()
	engine := twoNodeEngine(t)

	session, err := engine.Start(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "start", session.Current)
	assert.Equal(t, []string{"A"}, engine.History(session))
	assert.False(t, engine.IsFinished(session))
	assert.Equal(t, domain.StatusActive, session.Status)

	next, err := engine.Advance(ctx, session, 0)
	require.NoError(t, err)
	assert.Equal(t, "end", next.Current)
	assert.Equal(t, []string{"A", "B"}, engine.History(next))
	assert.True(t, engine.IsFinished(next))
	assert.Equal(t, domain.StatusFinished, next.Status)
	assert.Equal(t, []string{"start", "end"}, next.Trail)

	// The original session is a value and stays where it was.
	assert.Equal(t, "start", session.Current)
	assert.Equal(t, []string{"A"}, session.VisitedTexts)
}

func TestEngine_ZeroChoiceStartIsFinished(t *testing.T) {
	engine := newEngine(t, "only", domain.Node{ID: "only", Text: "Short story."})

	session, err := engine.Start(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, engine.IsFinished(session))
	assert.Equal(t, []string{"Short story."}, engine.History(session))
}

func TestEngine_StartWithMissingStartNode(t *testing.T) {
	engine := newEngine(t, "nope", domain.Node{ID: "a", Text: "A"})

	_, err := engine.Start(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnknownNode)
}

func TestEngine_CurrentViewPreservesChoiceOrder(t *testing.T) {
	ctx := context.Background()
	engine := branchingEngine(t)
	session, err := engine.Start(ctx, "")
	require.NoError(t, err)

	view, err := engine.CurrentView(session)
	require.NoError(t, err)
	assert.Equal(t, "Hub", view.Text)
	require.Len(t, view.Choices, 3)
	assert.Equal(t, "Zebra", view.Choices[0].Label)
	assert.Equal(t, "Apple", view.Choices[1].Label)
	assert.Equal(t, "Mango", view.Choices[2].Label)
	for i, c := range view.Choices {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, i+1, c.Number)
	}

	// Choice k always routes to the k-th declared target.
	for k, want := range []string{"z", "a", "m"} {
		next, err := engine.Advance(ctx, session, k)
		require.NoError(t, err)
		assert.Equal(t, want, next.Current)
	}

	// Rendering never changes the session.
	assert.Equal(t, []string{"Hub"}, session.VisitedTexts)
}

func TestEngine_FailedAdvanceIsAtomic(t *testing.T) {
	ctx := context.Background()
	engine := branchingEngine(t)
	session, err := engine.Start(ctx, "")
	require.NoError(t, err)
	before := session.Snapshot()

	for _, idx := range []int{-1, 3, 99} {
		next, err := engine.Advance(ctx, session, idx)
		assert.Nil(t, next)
		assert.ErrorIs(t, err, domain.ErrInvalidChoiceIndex)

		var invalid *domain.InvalidChoiceError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, idx, invalid.Index)
		assert.Equal(t, 3, invalid.Count)

		assert.Equal(t, before, session)
		assert.False(t, engine.IsFinished(session))
	}
}

func TestEngine_TerminalClosure(t *testing.T) {
	ctx := context.Background()
	engine := twoNodeEngine(t)
	session, _ := engine.Start(ctx, "")
	finished, err := engine.Advance(ctx, session, 0)
	require.NoError(t, err)
	require.True(t, engine.IsFinished(finished))

	for _, idx := range []int{-1, 0, 1, 42} {
		next, err := engine.Advance(ctx, finished, idx)
		assert.Nil(t, next)
		assert.ErrorIs(t, err, domain.ErrSessionFinished)
	}
	assert.Equal(t, []string{"A", "B"}, engine.History(finished))
}

func TestEngine_HistoryGrowsByOne(t *testing.T) {
	ctx := context.Background()
	engine := branchingEngine(t)
	session, err := engine.Start(ctx, "")
	require.NoError(t, err)
	require.Len(t, engine.History(session), 1)

	// hub -> z -> hub -> z -> end
	for i, idx := range []int{0, 0, 0, 1} {
		next, err := engine.Advance(ctx, session, idx)
		require.NoError(t, err)
		assert.Len(t, engine.History(next), len(engine.History(session))+1, "step %d", i)
		session = next
	}
	assert.Equal(t, []string{"Hub", "Z", "Hub", "Z", "End"}, engine.History(session))
	assert.True(t, engine.IsFinished(session))
}

func TestEngine_Determinism(t *testing.T) {
	ctx := context.Background()
	path := []int{0, 0, 2, 0}

	play := func() *domain.Session {
		engine := branchingEngine(t)
		s, err := engine.Start(ctx, "")
		require.NoError(t, err)
		for _, idx := range path {
			s, err = engine.Advance(ctx, s, idx)
			require.NoError(t, err)
		}
		return s
	}

	first := play()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, play())
	}
	assert.Equal(t, "end", first.Current)
	assert.Equal(t, []string{"Hub", "Z", "Hub", "M", "End"}, first.VisitedTexts)
}

func TestEngine_HistoryReturnsCopy(t *testing.T) {
	engine := twoNodeEngine(t)
	session, _ := engine.Start(context.Background(), "")

	h := engine.History(session)
	h[0] = "tampered"
	assert.Equal(t, []string{"A"}, engine.History(session))
}

func TestEngine_DanglingTargetDoesNotCorruptSession(t *testing.T) {
	ctx := context.Background()
	engine := newEngine(t, "start",
		domain.Node{ID: "start", Text: "A", Choices: []domain.Choice{{Label: "void", Target: "ghost"}}},
	)
	session, err := engine.Start(ctx, "")
	require.NoError(t, err)
	before := session.Snapshot()

	next, err := engine.Advance(ctx, session, 0)
	assert.Nil(t, next)
	assert.ErrorIs(t, err, domain.ErrUnknownNode)
	assert.Equal(t, before, session)
}

func TestEngine_NilSession(t *testing.T) {
	engine := twoNodeEngine(t)

	_, err := engine.Advance(context.Background(), nil, 0)
	assert.ErrorIs(t, err, runtime.ErrNilSession)
	_, err = engine.CurrentView(nil)
	assert.ErrorIs(t, err, runtime.ErrNilSession)
	assert.True(t, engine.IsFinished(nil))
	assert.Empty(t, engine.History(nil))
}
