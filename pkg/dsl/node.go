package dsl

import "github.com/aretw0/storybuilder/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Text sets the narrative shown when the node is visited.
func (n *NodeBuilder) Text(content string) *NodeBuilder {
	n.node.Text = content
	return n
}

// Image sets the illustration reference.
func (n *NodeBuilder) Image(ref string) *NodeBuilder {
	n.node.Image = ref
	return n
}

// Choice appends a labeled choice leading to target.
func (n *NodeBuilder) Choice(label, target string) *NodeBuilder {
	n.node.Choices = append(n.node.Choices, domain.Choice{Label: label, Target: target})
	return n
}

// Terminal removes every choice, making the node an ending.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Choices = []domain.Choice{}
	return n
}

// Add continues with another node of the same story.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build returns a copy of the underlying domain.Node.
func (n *NodeBuilder) Build() domain.Node {
	out := n.node
	out.Choices = append([]domain.Choice{}, n.node.Choices...)
	return out
}
