package storybuilder_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/storybuilder"
	"github.com/aretw0/storybuilder/pkg/adapters/memory"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultStory(t *testing.T) {
	eng, err := storybuilder.New("", storybuilder.WithMaxChoices(3))
	require.NoError(t, err)

	assert.Equal(t, "El gato", eng.Name)
	assert.Equal(t, "inicio", eng.Graph().StartKey())
	assert.Empty(t, eng.Issues())

	s, err := eng.Start(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, []string{"El gato corre."}, eng.History(s))
}

func TestNew_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
start: a
nodes:
  a:
    text: A
    choices:
      - {label: x, target: b}
  b:
    text: B
`), 0o644))

	eng, err := storybuilder.New(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", eng.Name)

	ctx := context.Background()
	s, err := eng.Start(ctx)
	require.NoError(t, err)
	s, err = eng.Advance(ctx, s, 0)
	require.NoError(t, err)
	assert.True(t, eng.IsFinished(s))
	assert.Equal(t, []string{"A", "B"}, eng.History(s))
}

func TestNew_LoamDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "begin.md"), []byte("---\nstart: true\nchoices:\n  - label: On\n    target: finish\n---\nBeginning"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "finish.md"), []byte("---\nid: finish\n---\nFinish"), 0o644))

	eng, err := storybuilder.New(dir)
	require.NoError(t, err)
	assert.Equal(t, "begin", eng.Graph().StartKey())
	assert.Equal(t, 2, eng.Graph().Len())
}

func TestNew_MissingSource(t *testing.T) {
	_, err := storybuilder.New(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = storybuilder.New("builtin:dragon")
	assert.Error(t, err)
}

func brokenLoader(t *testing.T) *memory.Loader {
	t.Helper()
	loader, err := memory.NewFromNodes(
		domain.Node{ID: "start", Text: "A", Choices: []domain.Choice{
			{Label: "ok", Target: "end"},
			{Label: "void", Target: "ghost"},
		}},
		domain.Node{ID: "end", Text: "B"},
	)
	require.NoError(t, err)
	return loader
}

func TestNew_StrictValidationRejectsBrokenGraph(t *testing.T) {
	_, err := storybuilder.New("", storybuilder.WithLoader(brokenLoader(t)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidGraph)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, domain.ValidationIssue{Kind: domain.IssueDanglingEdge, NodeID: "start", ChoiceIndex: 1, Target: "ghost"}, verr.Issues[0])
}

func TestNew_LenientValidationLogsIssues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	eng, err := storybuilder.New("",
		storybuilder.WithLoader(brokenLoader(t)),
		storybuilder.WithLenientValidation(),
		storybuilder.WithLogger(logger),
	)
	require.NoError(t, err)
	assert.Len(t, eng.Issues(), 1)
	assert.Contains(t, buf.String(), "dangling_edge")

	// The broken edge is still a runtime failure that leaves the session alone.
	ctx := context.Background()
	s, err := eng.Start(ctx)
	require.NoError(t, err)
	_, err = eng.Advance(ctx, s, 1)
	assert.ErrorIs(t, err, domain.ErrUnknownNode)
	assert.Equal(t, []string{"A"}, eng.History(s))
}

func TestNew_EntryNodeResolution(t *testing.T) {
	loader, err := memory.NewFromNodes(
		domain.Node{ID: "start", Text: "default"},
		domain.Node{ID: "inicio", Text: "provided"},
		domain.Node{ID: "custom", Text: "override"},
	)
	require.NoError(t, err)
	lenient := storybuilder.WithLenientValidation()

	eng, err := storybuilder.New("", storybuilder.WithLoader(loader), lenient)
	require.NoError(t, err)
	assert.Equal(t, "start", eng.Graph().StartKey())

	loader.WithStart("inicio")
	eng, err = storybuilder.New("", storybuilder.WithLoader(loader), lenient)
	require.NoError(t, err)
	assert.Equal(t, "inicio", eng.Graph().StartKey())

	eng, err = storybuilder.New("", storybuilder.WithLoader(loader), lenient, storybuilder.WithEntryNode("custom"))
	require.NoError(t, err)
	assert.Equal(t, "custom", eng.Graph().StartKey())
}

func TestEngine_HooksAndIDs(t *testing.T) {
	loader, err := memory.NewFromNodes(
		domain.Node{ID: "start", Text: "A", Choices: []domain.Choice{{Label: "x", Target: "end"}}},
		domain.Node{ID: "end", Text: "B"},
	)
	require.NoError(t, err)

	var finished []string
	eng, err := storybuilder.New("",
		storybuilder.WithLoader(loader),
		storybuilder.WithSessionIDGenerator(func() string { return "fixed-id" }),
		storybuilder.WithLifecycleHooks(domain.LifecycleHooks{
			OnSessionFinish: func(_ context.Context, e *domain.NodeEvent) {
				finished = append(finished, e.SessionID+"@"+e.NodeID)
			},
		}),
	)
	require.NoError(t, err)

	ctx := context.Background()
	s, err := eng.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", s.ID)

	_, err = eng.Advance(ctx, s, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"fixed-id@end"}, finished)

	assert.Len(t, eng.Inspect(), 2)
	assert.Same(t, loader, eng.Loader())
}
