package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_Output(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	view := domain.NewView(domain.Node{ID: "a", Text: "Hello", Choices: []domain.Choice{{Label: "Go", Target: "b"}}})
	require.NoError(t, handler.Output(context.Background(), view))
	require.NoError(t, handler.SystemOutput(context.Background(), "note"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &msg))
	assert.Equal(t, MessageView, msg.Type)
	require.NotNil(t, msg.View)
	assert.Equal(t, "a", msg.View.NodeID)
	assert.Equal(t, 1, msg.View.Choices[0].Number)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &msg))
	assert.Equal(t, MessageSystem, msg.Type)
	assert.Equal(t, "note", msg.Message)
}

func TestJSONHandler_Input(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare number", "2\n", "2"},
		{"json string", "\"3\"\n", "3"},
		{"object", "{\"choice\": 1}\n", "1"},
		{"plain text", "quit\n", "quit"},
		{"no trailing newline", "2", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			handler := NewJSONHandler(strings.NewReader(tt.input), buf)

			val, err := handler.Input(context.Background(), "Choose")
			require.NoError(t, err)
			assert.Equal(t, tt.want, val)
			assert.Contains(t, buf.String(), `"type":"prompt"`)
		})
	}
}
