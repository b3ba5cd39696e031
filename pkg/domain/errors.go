package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned when a key does not name a node of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidChoiceIndex is returned when a choice index is outside the current node's choices.
	ErrInvalidChoiceIndex = errors.New("invalid choice index")

	// ErrSessionFinished is returned when advancing a session whose current node is terminal.
	ErrSessionFinished = errors.New("session finished")

	// ErrSessionNotFound is returned when a session ID cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMalformedGraph is returned when nodes cannot form a graph at all (missing or duplicate IDs).
	ErrMalformedGraph = errors.New("malformed graph")

	// ErrInvalidGraph is matched by ValidationError.
	ErrInvalidGraph = errors.New("invalid graph")
)

// UnknownNodeError carries the key that could not be resolved.
type UnknownNodeError struct {
	NodeID string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %q", e.NodeID)
}

// Is allows errors.Is(err, ErrUnknownNode).
func (e *UnknownNodeError) Is(target error) bool {
	return target == ErrUnknownNode
}

// InvalidChoiceError is returned by Advance when the index is out of range.
type InvalidChoiceError struct {
	NodeID string
	Index  int
	Count  int
}

func (e *InvalidChoiceError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("invalid choice index %d: node %q has no choices", e.Index, e.NodeID)
	}
	return fmt.Sprintf("invalid choice index %d for node %q (valid: 0..%d)", e.Index, e.NodeID, e.Count-1)
}

// Is allows errors.Is(err, ErrInvalidChoiceIndex).
func (e *InvalidChoiceError) Is(target error) bool {
	return target == ErrInvalidChoiceIndex
}
