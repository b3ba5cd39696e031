package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph_RejectsMalformedNodes(t *testing.T) {
	_, err := domain.NewGraph("a", domain.Node{ID: ""})
	assert.ErrorIs(t, err, domain.ErrMalformedGraph)

	_, err = domain.NewGraph("a", domain.Node{ID: "a"}, domain.Node{ID: "a"})
	assert.ErrorIs(t, err, domain.ErrMalformedGraph)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestGraph_GetNode(t *testing.T) {
	g, err := domain.NewGraph("start",
		domain.Node{ID: "start", Text: "Hello", Image: "hello.png", Choices: []domain.Choice{{Label: "Go", Target: "end"}}},
		domain.Node{ID: "end", Text: "Bye"},
	)
	require.NoError(t, err)

	assert.Equal(t, "start", g.StartKey())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []string{"end", "start"}, g.Keys())

	node, err := g.GetNode("start")
	require.NoError(t, err)
	assert.Equal(t, "Hello", node.Text)
	assert.Equal(t, "hello.png", node.Image)
	assert.False(t, node.IsTerminal())

	_, err = g.GetNode("missing")
	assert.ErrorIs(t, err, domain.ErrUnknownNode)
	var unknown *domain.UnknownNodeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "missing", unknown.NodeID)
}

func TestGraph_IsImmutable(t *testing.T) {
	choices := []domain.Choice{{Label: "Go", Target: "end"}}
	g, err := domain.NewGraph("start",
		domain.Node{ID: "start", Text: "Hello", Choices: choices},
		domain.Node{ID: "end", Text: "Bye"},
	)
	require.NoError(t, err)

	// Mutating the input slice or a returned node leaves the graph untouched.
	choices[0].Target = "elsewhere"
	node, _ := g.GetNode("start")
	node.Choices[0].Label = "Changed"

	again, _ := g.GetNode("start")
	assert.Equal(t, "end", again.Choices[0].Target)
	assert.Equal(t, "Go", again.Choices[0].Label)

	keys := g.Keys()
	keys[0] = "zzz"
	assert.Equal(t, []string{"end", "start"}, g.Keys())
}

func TestSession_Visit(t *testing.T) {
	s := domain.NewSession("id-1", "a")
	next := s.Visit(domain.Node{ID: "a", Text: "A", Choices: []domain.Choice{{Label: "x", Target: "b"}}})
	final := next.Visit(domain.Node{ID: "b", Text: "B"})

	assert.Empty(t, s.Trail, "original session must not change")
	assert.Equal(t, []string{"A"}, next.VisitedTexts)
	assert.False(t, next.IsFinished())

	assert.Equal(t, "b", final.Current)
	assert.Equal(t, []string{"a", "b"}, final.Trail)
	assert.Equal(t, []string{"A", "B"}, final.VisitedTexts)
	assert.True(t, final.IsFinished())
	assert.Equal(t, "id-1", final.ID)
}

func TestSession_Snapshot(t *testing.T) {
	s := &domain.Session{ID: "x", Current: "a", Trail: []string{"a"}, VisitedTexts: []string{"A"}}
	snap := s.Snapshot()
	snap.Trail[0] = "z"
	snap.VisitedTexts = append(snap.VisitedTexts, "B")

	assert.Equal(t, []string{"a"}, s.Trail)
	assert.Equal(t, []string{"A"}, s.VisitedTexts)

	var nilSession *domain.Session
	assert.Nil(t, nilSession.Snapshot())
}

func TestNewView(t *testing.T) {
	v := domain.NewView(domain.Node{
		ID:   "start",
		Text: "Hello",
		Choices: []domain.Choice{
			{Label: "Left", Target: "l"},
			{Label: "Right", Target: "r"},
		},
	})
	assert.False(t, v.Terminal)
	require.Len(t, v.Choices, 2)
	assert.Equal(t, domain.ChoiceView{Index: 1, Number: 2, Label: "Right", Target: "r"}, v.Choices[1])

	end := domain.NewView(domain.Node{ID: "end", Text: "Bye"})
	assert.True(t, end.Terminal)
	assert.NotNil(t, end.Choices)
	assert.Empty(t, end.Choices)
}
