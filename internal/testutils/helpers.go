package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// WriteFiles seeds dir with the given file name to content pairs.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// TwoNodeStory is the smallest interesting story: start ("A") leads to end ("B").
func TwoNodeStory() []domain.Node {
	return []domain.Node{
		{ID: "start", Text: "A", Choices: []domain.Choice{{Label: "x", Target: "end"}}},
		{ID: "end", Text: "B", Choices: []domain.Choice{}},
	}
}

// MustGraph builds a graph or fails the test.
func MustGraph(t *testing.T, start string, nodes ...domain.Node) *domain.Graph {
	t.Helper()
	g, err := domain.NewGraph(start, nodes...)
	require.NoError(t, err)
	return g
}
