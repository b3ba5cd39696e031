package memory

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// Loader implements ports.GraphLoader using an in-memory map.
type Loader struct {
	nodes map[string][]byte
	start string
}

// NewLoader creates a loader from raw JSON node definitions keyed by ID.
func NewLoader(data map[string]string) *Loader {
	nodes := make(map[string][]byte, len(data))
	for k, v := range data {
		nodes[k] = []byte(v)
	}
	return &Loader{nodes: nodes}
}

// NewFromNodes creates a loader from domain objects, serializing them as the
// file-backed loaders would.
func NewFromNodes(nodes ...domain.Node) (*Loader, error) {
	data := make(map[string][]byte, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node missing ID", domain.ErrMalformedGraph)
		}
		if _, dup := data[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", domain.ErrMalformedGraph, n.ID)
		}
		if n.Choices == nil {
			n.Choices = []domain.Choice{}
		}
		bytes, err := json.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal node %s: %w", n.ID, err)
		}
		data[n.ID] = bytes
	}
	return &Loader{nodes: data}, nil
}

// WithStart records the start node, making the loader a ports.StartProvider.
func (l *Loader) WithStart(id string) *Loader {
	l.start = id
	return l
}

// StartNode returns the start key set by WithStart.
func (l *Loader) StartNode() string {
	return l.start
}

// GetNode retrieves the raw definition of a node by ID.
func (l *Loader) GetNode(id string) ([]byte, error) {
	content, ok := l.nodes[id]
	if !ok {
		return nil, &domain.UnknownNodeError{NodeID: id}
	}
	return content, nil
}

// ListNodes returns all available node IDs.
func (l *Loader) ListNodes() ([]string, error) {
	keys := make([]string, 0, len(l.nodes))
	for k := range l.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
