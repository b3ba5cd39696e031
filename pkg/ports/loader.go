package ports

// GraphLoader defines how the engine retrieves node definitions.
// This allows the story source (YAML, Loam, Memory) to be decoupled.
type GraphLoader interface {
	// GetNode retrieves the JSON definition of a node by ID.
	GetNode(id string) ([]byte, error)

	// ListNodes returns every node ID available in the story.
	ListNodes() ([]string, error)
}

// StartProvider is implemented by loaders whose source names the start node.
type StartProvider interface {
	// StartNode returns the start key, or "" when the source does not declare one.
	StartNode() string
}

// Titled is implemented by loaders whose source carries a human title.
type Titled interface {
	Title() string
}
