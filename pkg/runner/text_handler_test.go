package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out,
		WithTextHandlerRenderer(func(s string) (string, error) { return "Rendered: " + s, nil }),
		WithTextHandlerImages(func(name string) string { return "[img " + name + "]" }),
	)

	view := domain.NewView(domain.Node{
		ID:    "start",
		Text:  "Hello World",
		Image: "cat.png",
		Choices: []domain.Choice{
			{Label: "Pet", Target: "a"},
			{Label: "Feed", Target: "b"},
		},
	})
	require.NoError(t, handler.Output(context.Background(), view))

	assert.Equal(t, "\nRendered: Hello World\n[img cat.png]\n1. Pet\n2. Feed\n", out.String())
}

func TestTextHandler_OutputTerminal(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out)

	require.NoError(t, handler.Output(context.Background(), domain.NewView(domain.Node{ID: "end", Text: "Bye."})))
	assert.Equal(t, "\nBye.\n"+TerminalNotice+"\n", out.String())
}

func TestTextHandler_Input(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("  2 \n"), out)

	val, err := handler.Input(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "2", val)
	assert.Equal(t, "> ", out.String())
}

func TestTextHandler_InputRejectsOversized(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "4")
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("123456\n1\n"), out)

	val, err := handler.Input(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "1", val)
	assert.Contains(t, out.String(), "Please try again.")
}

func TestTextHandler_Recap(t *testing.T) {
	out := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), out)

	require.NoError(t, handler.Recap(context.Background(), []string{"A", "B"}))
	assert.Equal(t, "\n=== Full story ===\n- A\n- B\n", out.String())
}
