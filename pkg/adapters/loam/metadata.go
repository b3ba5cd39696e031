package loam

// NodeMetadata is the frontmatter of a story node file.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type NodeMetadata struct {
	ID    string `json:"id" mapstructure:"id"`
	Image string `json:"image" mapstructure:"image"`

	// Start marks the node that opens the story.
	Start bool `json:"start" mapstructure:"start"`

	// Choices holds raw entries, decoded one by one into ChoiceMetadata.
	Choices []any `json:"choices" mapstructure:"choices"`
}

// ChoiceMetadata is a single entry of the "choices" list.
// "text" and "to" are accepted as aliases of "label" and "target".
type ChoiceMetadata struct {
	Label  string `mapstructure:"label"`
	Text   string `mapstructure:"text"`
	Target string `mapstructure:"target"`
	To     string `mapstructure:"to"`
}

func (c ChoiceMetadata) label() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Text
}

func (c ChoiceMetadata) target() string {
	if c.Target != "" {
		return c.Target
	}
	return c.To
}
