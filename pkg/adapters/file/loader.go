// Package file works on the local filesystem.
//
// Loader reads a whole story from a single YAML document:
//
//	title: El gato
//	start: inicio
//	nodes:
//	  inicio:
//	    text: El gato corre.
//	    image: gato_corriendo.png
//	    choices:
//	      - label: Se esconde en una caja.
//	        target: caja
//
// Node order is kept as written, so listings follow the author's layout.
//
// Store keeps reader sessions as one JSON file each.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/storybuilder/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ErrNoNodes is returned when a document has no "nodes" mapping.
var ErrNoNodes = errors.New("story has no nodes")

type storyDocument struct {
	Title string    `yaml:"title"`
	Start string    `yaml:"start"`
	Nodes yaml.Node `yaml:"nodes"`
}

type nodeDocument struct {
	Text    string           `yaml:"text"`
	Image   string           `yaml:"image"`
	Choices []choiceDocument `yaml:"choices"`
}

type choiceDocument struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// Loader implements ports.GraphLoader, ports.StartProvider and ports.Titled
// over a parsed YAML story.
type Loader struct {
	title string
	start string
	order []string
	nodes map[string][]byte
}

// Open reads and parses a YAML story file.
func Open(path string) (*Loader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read story: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes a YAML story document.
func Parse(data []byte) (*Loader, error) {
	var doc storyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode story: %w", err)
	}
	if doc.Nodes.Kind == 0 {
		return nil, ErrNoNodes
	}
	if doc.Nodes.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: nodes must be a mapping of id to node", doc.Nodes.Line)
	}

	l := &Loader{
		title: doc.Title,
		start: doc.Start,
		nodes: make(map[string][]byte, len(doc.Nodes.Content)/2),
	}

	// Mapping content alternates key and value.
	for i := 0; i+1 < len(doc.Nodes.Content); i += 2 {
		key, value := doc.Nodes.Content[i], doc.Nodes.Content[i+1]
		id := key.Value
		if id == "" {
			return nil, fmt.Errorf("line %d: empty node id", key.Line)
		}
		if _, dup := l.nodes[id]; dup {
			return nil, fmt.Errorf("line %d: %w: duplicate node id %q", key.Line, domain.ErrMalformedGraph, id)
		}

		var nd nodeDocument
		if err := value.Decode(&nd); err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}

		raw, err := json.Marshal(nd.toDomain(id))
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
		l.nodes[id] = raw
		l.order = append(l.order, id)
	}

	if len(l.order) == 0 {
		return nil, ErrNoNodes
	}
	return l, nil
}

func (nd nodeDocument) toDomain(id string) domain.Node {
	choices := make([]domain.Choice, len(nd.Choices))
	for i, c := range nd.Choices {
		choices[i] = domain.Choice{Label: c.Label, Target: c.Target}
	}
	return domain.Node{ID: id, Text: nd.Text, Image: nd.Image, Choices: choices}
}

// GetNode returns the JSON definition of a node.
func (l *Loader) GetNode(id string) ([]byte, error) {
	raw, ok := l.nodes[id]
	if !ok {
		return nil, &domain.UnknownNodeError{NodeID: id}
	}
	return raw, nil
}

// ListNodes returns node IDs in document order.
func (l *Loader) ListNodes() ([]string, error) {
	return append([]string{}, l.order...), nil
}

// StartNode returns the document's "start" key.
func (l *Loader) StartNode() string {
	return l.start
}

// Title returns the document's "title".
func (l *Loader) Title() string {
	return l.title
}
