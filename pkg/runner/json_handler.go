package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// JSON-Lines message types written by JSONHandler.
const (
	MessageView   = "view"
	MessagePrompt = "prompt"
	MessageSystem = "system"
	MessageRecap  = "recap"
)

// Message is one line of JSONHandler output.
type Message struct {
	Type    string       `json:"type"`
	View    *domain.View `json:"view,omitempty"`
	Prompt  string       `json:"prompt,omitempty"`
	Message string       `json:"message,omitempty"`
	History []string     `json:"history,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, view domain.View) error {
	return h.Encoder.Encode(Message{Type: MessageView, View: &view})
}

// Input accepts a bare number, a JSON string, or an object {"choice": n}.
// Choice numbers are 1-based as in the text handler.
func (h *JSONHandler) Input(ctx context.Context, prompt string) (string, error) {
	if err := h.Encoder.Encode(Message{Type: MessagePrompt, Prompt: prompt}); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		return SanitizeInput(s)
	}

	var obj struct {
		Choice *int `json:"choice"`
	}
	if err := json.Unmarshal([]byte(text), &obj); err == nil && obj.Choice != nil {
		return strconv.Itoa(*obj.Choice), nil
	}

	return SanitizeInput(text)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(Message{Type: MessageSystem, Message: msg})
}

func (h *JSONHandler) Recap(ctx context.Context, history []string) error {
	return h.Encoder.Encode(Message{Type: MessageRecap, History: history})
}
