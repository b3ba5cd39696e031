package dsl

import (
	"fmt"

	"github.com/aretw0/storybuilder/internal/compiler"
	"github.com/aretw0/storybuilder/pkg/adapters/memory"
	"github.com/aretw0/storybuilder/pkg/domain"
)

// Builder manages the story construction.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
	start string
}

// New creates a new story builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a new node in the story.
// If the node already exists, it returns the existing builder.
// The first node added is the start node unless Start says otherwise.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.Node{ID: id, Choices: []domain.Choice{}},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	if b.start == "" {
		b.start = id
	}
	return nb
}

// Start sets the start node.
func (b *Builder) Start(id string) *Builder {
	b.start = id
	return b
}

// Nodes returns the built nodes in the order they were added.
func (b *Builder) Nodes() []domain.Node {
	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}
	return nodes
}

// Build compiles the story into a memory loader that knows its start node.
func (b *Builder) Build() (*memory.Loader, error) {
	loader, err := memory.NewFromNodes(b.Nodes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader.WithStart(b.start), nil
}

// Graph compiles the story straight into a graph.
func (b *Builder) Graph() (*domain.Graph, error) {
	loader, err := b.Build()
	if err != nil {
		return nil, err
	}
	return compiler.Compile(loader, b.start)
}
