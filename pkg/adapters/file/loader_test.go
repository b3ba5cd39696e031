package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/storybuilder/pkg/adapters/file"
	"github.com/aretw0/storybuilder/pkg/domain"
	contract "github.com/aretw0/storybuilder/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const story = `
title: Test story
start: zeta
nodes:
  zeta:
    text: First
    image: first.png
    choices:
      - label: Go on
        target: alpha
      - {label: Stop, target: end}
  alpha:
    text: Second
    choices:
      - label: Finish
        target: end
  end:
    text: The end
`

func TestFileLoader_Contract(t *testing.T) {
	loader, err := file.Parse([]byte(story))
	require.NoError(t, err)

	contract.GraphLoaderContractTest(t, loader, map[string]domain.Node{
		"zeta": {ID: "zeta", Text: "First", Image: "first.png", Choices: []domain.Choice{
			{Label: "Go on", Target: "alpha"},
			{Label: "Stop", Target: "end"},
		}},
		"alpha": {ID: "alpha", Text: "Second", Choices: []domain.Choice{{Label: "Finish", Target: "end"}}},
		"end":   {ID: "end", Text: "The end", Choices: []domain.Choice{}},
	})
}

func TestFileLoader_KeepsDocumentOrder(t *testing.T) {
	loader, err := file.Parse([]byte(story))
	require.NoError(t, err)

	ids, err := loader.ListNodes()
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "end"}, ids)
	assert.Equal(t, "zeta", loader.StartNode())
	assert.Equal(t, "Test story", loader.Title())
}

func TestFileLoader_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, []byte(story), 0o644))

	loader, err := file.Open(path)
	require.NoError(t, err)
	assert.Equal(t, "zeta", loader.StartNode())

	_, err = file.Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFileLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "no nodes", doc: "title: x\n", want: "story has no nodes"},
		{name: "empty nodes", doc: "nodes: {}\n", want: "story has no nodes"},
		{name: "nodes not a mapping", doc: "nodes:\n  - a\n", want: "nodes must be a mapping"},
		{name: "duplicate id", doc: "nodes:\n  a: {text: x}\n  a: {text: y}\n", want: "duplicate node id"},
		{name: "bad yaml", doc: "nodes: [", want: "decode story"},
		{name: "bad choice", doc: "nodes:\n  a:\n    choices: 3\n", want: "node a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
