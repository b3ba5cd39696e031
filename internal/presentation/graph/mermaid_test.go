package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/storybuilder/internal/presentation/graph"
	"github.com/aretw0/storybuilder/internal/testutils"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		nodes    []domain.Node
		contains []string
		excludes []string
	}{
		{
			name:  "Start And Ending Shapes",
			start: "start",
			nodes: testutils.TwoNodeStory(),
			contains: []string{
				"start((\"start\"))",
				"end_([\"end\"])",
				"start -- \"x\" --> end_",
			},
			excludes: []string{"classDef missing"},
		},
		{
			name:  "ID Sanitization",
			start: "path/to/file.md",
			nodes: []domain.Node{
				{ID: "path/to/file.md", Choices: []domain.Choice{{Label: "go", Target: "hyphen-ated"}}},
				{ID: "hyphen-ated"},
			},
			contains: []string{
				"path_to_file_md((\"path/to/file.md\"))",
				"hyphen_ated([\"hyphen-ated\"])",
			},
		},
		{
			name:  "Label Escaping",
			start: "a",
			nodes: []domain.Node{
				{ID: "a", Choices: []domain.Choice{{Label: `say "hi"`, Target: "b"}}},
				{ID: "b"},
			},
			contains: []string{`a -- "say 'hi'" --> b`},
		},
		{
			name:  "Dangling Edge",
			start: "a",
			nodes: []domain.Node{
				{ID: "a", Choices: []domain.Choice{{Label: "jump", Target: "ghost"}}},
			},
			contains: []string{
				`a -. "jump" .-> ghost`,
				`ghost{{"ghost ?"}}`,
				"class ghost missing;",
			},
		},
		{
			name:  "Missing Start",
			start: "nowhere",
			nodes: []domain.Node{{ID: "a"}},
			contains: []string{
				`nowhere{{"nowhere ?"}}`,
				`a(["a"])`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(testutils.MustGraph(t, tt.start, tt.nodes...), nil)
			assert.True(t, strings.HasPrefix(got, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
			assert.NotContains(t, got, "Overlay Styles")
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	g := testutils.MustGraph(t, "start", testutils.TwoNodeStory()...)

	s := domain.NewSession("s1", "start").Visit(domain.Node{ID: "start", Text: "A", Choices: []domain.Choice{{Label: "x", Target: "end"}}})
	overlay := graph.OverlayFor(s)

	got := graph.GenerateMermaid(g, overlay)
	assert.Contains(t, got, "classDef visited")
	assert.Contains(t, got, "class start visited;")
	assert.Contains(t, got, "class start current;")
	assert.NotContains(t, got, "class end_ visited;")

	assert.Nil(t, graph.OverlayFor(nil))
}
