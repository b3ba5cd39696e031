package domain

// Choice is a labeled edge from one node to another.
type Choice struct {
	Label  string `json:"label" yaml:"label"`
	Target string `json:"target" yaml:"target"`
}

// Node represents a single point in the story graph.
type Node struct {
	ID string `json:"id" yaml:"id"`

	// Text is the narrative shown when the node is visited.
	Text string `json:"text" yaml:"text"`

	// Image is an opaque reference to an illustration (usually a file name).
	// Empty means the node has no illustration.
	Image string `json:"image,omitempty" yaml:"image,omitempty"`

	// Choices are ordered. Position 0 is presented to readers as choice 1.
	Choices []Choice `json:"choices" yaml:"choices"`
}

// IsTerminal reports whether the node ends the story.
func (n Node) IsTerminal() bool {
	return len(n.Choices) == 0
}

func (n Node) clone() Node {
	out := n
	out.Choices = make([]Choice, len(n.Choices))
	copy(out.Choices, n.Choices)
	return out
}
