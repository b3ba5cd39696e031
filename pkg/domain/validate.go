package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IssueKind classifies a structural defect of a graph.
type IssueKind string

const (
	IssueMissingStart    IssueKind = "missing_start"
	IssueDanglingEdge    IssueKind = "dangling_edge"
	IssueUnreachableNode IssueKind = "unreachable_node"
	IssueDeadEnd         IssueKind = "dead_end"
	IssueExcessChoices   IssueKind = "excess_choices"
)

// ValidationIssue describes one defect found by Graph.Validate.
type ValidationIssue struct {
	Kind   IssueKind `json:"kind"`
	NodeID string    `json:"node_id"`

	// ChoiceIndex and Target are set for dangling edges.
	ChoiceIndex int    `json:"choice_index,omitempty"`
	Target      string `json:"target,omitempty"`

	// Count and Limit are set for excess choices.
	Count int `json:"count,omitempty"`
	Limit int `json:"limit,omitempty"`
}

// MarshalJSON always writes choice_index for dangling edges, where 0 is a
// real index rather than an absent one.
func (i ValidationIssue) MarshalJSON() ([]byte, error) {
	type plain ValidationIssue
	out := struct {
		plain
		ChoiceIndex *int `json:"choice_index,omitempty"`
	}{plain: plain(i)}
	if i.Kind == IssueDanglingEdge {
		idx := i.ChoiceIndex
		out.ChoiceIndex = &idx
	}
	return json.Marshal(out)
}

func (i ValidationIssue) String() string {
	switch i.Kind {
	case IssueMissingStart:
		return fmt.Sprintf("start node %q does not exist", i.NodeID)
	case IssueDanglingEdge:
		return fmt.Sprintf("node %q: choice %d points to missing node %q", i.NodeID, i.ChoiceIndex+1, i.Target)
	case IssueUnreachableNode:
		return fmt.Sprintf("node %q is unreachable from the start", i.NodeID)
	case IssueDeadEnd:
		return fmt.Sprintf("node %q cannot reach any ending", i.NodeID)
	case IssueExcessChoices:
		return fmt.Sprintf("node %q has %d choices (limit %d)", i.NodeID, i.Count, i.Limit)
	default:
		return fmt.Sprintf("%s: %s", i.Kind, i.NodeID)
	}
}

// ValidationError aggregates the issues that made a graph unacceptable.
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("found %d validation issues:\n- %s", len(e.Issues), strings.Join(lines, "\n- "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidGraph
}

// ValidateOption configures Graph.Validate.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	maxChoices int
}

// WithMaxChoices reports nodes with more than n choices. Zero disables the check.
func WithMaxChoices(n int) ValidateOption {
	return func(c *validateConfig) {
		c.maxChoices = n
	}
}

// Validate reports every structural defect of the graph. It never fails and
// never mutates the graph. An empty result means the graph is well formed.
//
// Order is deterministic: a missing start first, then issues per node in key
// order (dangling edges by choice position, excess choices, unreachable, dead end).
//
// Reachability is only checked when the start node exists. Dead ends are
// checked for every node regardless of reachability.
func (g *Graph) Validate(opts ...ValidateOption) []ValidationIssue {
	cfg := validateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var issues []ValidationIssue

	startExists := g.Has(g.start)
	if !startExists {
		issues = append(issues, ValidationIssue{Kind: IssueMissingStart, NodeID: g.start})
	}

	var reachable map[string]bool
	if startExists {
		reachable = g.forwardReach(g.start)
	}
	canEnd := g.backwardReachFromEndings()

	for _, key := range g.keys {
		node := g.nodes[key]
		for i, c := range node.Choices {
			if !g.Has(c.Target) {
				issues = append(issues, ValidationIssue{
					Kind:        IssueDanglingEdge,
					NodeID:      key,
					ChoiceIndex: i,
					Target:      c.Target,
				})
			}
		}
		if cfg.maxChoices > 0 && len(node.Choices) > cfg.maxChoices {
			issues = append(issues, ValidationIssue{
				Kind:   IssueExcessChoices,
				NodeID: key,
				Count:  len(node.Choices),
				Limit:  cfg.maxChoices,
			})
		}
		if startExists && !reachable[key] {
			issues = append(issues, ValidationIssue{Kind: IssueUnreachableNode, NodeID: key})
		}
		if !canEnd[key] {
			issues = append(issues, ValidationIssue{Kind: IssueDeadEnd, NodeID: key})
		}
	}

	return issues
}

// forwardReach walks choices breadth-first from key. Dangling targets are skipped.
func (g *Graph) forwardReach(key string) map[string]bool {
	visited := map[string]bool{key: true}
	queue := []string{key}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, c := range g.nodes[current].Choices {
			if !g.Has(c.Target) || visited[c.Target] {
				continue
			}
			visited[c.Target] = true
			queue = append(queue, c.Target)
		}
	}
	return visited
}

// backwardReachFromEndings returns the nodes from which some terminal node is reachable.
func (g *Graph) backwardReachFromEndings() map[string]bool {
	incoming := make(map[string][]string, len(g.nodes))
	var queue []string
	canEnd := make(map[string]bool, len(g.nodes))

	for _, key := range g.keys {
		node := g.nodes[key]
		if node.IsTerminal() {
			canEnd[key] = true
			queue = append(queue, key)
		}
		for _, c := range node.Choices {
			if g.Has(c.Target) {
				incoming[c.Target] = append(incoming[c.Target], key)
			}
		}
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, from := range incoming[current] {
			if canEnd[from] {
				continue
			}
			canEnd[from] = true
			queue = append(queue, from)
		}
	}
	return canEnd
}
