package domain

import (
	"fmt"
	"sort"
)

// Graph is an immutable story graph: a start key plus nodes keyed by ID.
//
// A Graph may be structurally invalid (dangling edges, missing start, ...).
// Construction never rejects such defects; Validate reports them.
type Graph struct {
	start string
	nodes map[string]Node
	keys  []string
}

// NewGraph builds a graph from nodes. It only fails when the nodes cannot be
// keyed at all: an empty ID or the same ID declared twice.
func NewGraph(start string, nodes ...Node) (*Graph, error) {
	g := &Graph{
		start: start,
		nodes: make(map[string]Node, len(nodes)),
		keys:  make([]string, 0, len(nodes)),
	}
	for i, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: node #%d has no id", ErrMalformedGraph, i)
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %q", ErrMalformedGraph, n.ID)
		}
		g.nodes[n.ID] = n.clone()
		g.keys = append(g.keys, n.ID)
	}
	sort.Strings(g.keys)
	return g, nil
}

// StartKey returns the key designated as the story entry point.
// It may not name an existing node; Validate reports that case.
func (g *Graph) StartKey() string {
	return g.start
}

// GetNode returns the node for key, or an *UnknownNodeError.
// The returned node is a copy; mutating it does not affect the graph.
func (g *Graph) GetNode(key string) (Node, error) {
	n, ok := g.nodes[key]
	if !ok {
		return Node{}, &UnknownNodeError{NodeID: key}
	}
	return n.clone(), nil
}

// Has reports whether key names a node.
func (g *Graph) Has(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Keys returns every node key in lexical order.
func (g *Graph) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Nodes returns copies of every node, ordered by key.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, g.nodes[k].clone())
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}
