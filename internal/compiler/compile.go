package compiler

import (
	"fmt"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/ports"
)

// Compile reads every node exposed by loader and assembles the graph.
// Structural defects are left for Graph.Validate; only unreadable or
// unkeyable nodes fail here.
func Compile(loader ports.GraphLoader, start string) (*domain.Graph, error) {
	ids, err := loader.ListNodes()
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	p := NewParser()
	nodes := make([]domain.Node, 0, len(ids))
	for _, id := range ids {
		raw, err := loader.GetNode(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load node %s: %w", id, err)
		}
		node, err := p.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse node %s: %w", id, err)
		}
		nodes = append(nodes, *node)
	}

	return domain.NewGraph(start, nodes...)
}
