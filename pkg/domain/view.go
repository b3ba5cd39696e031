package domain

// ChoiceView is a choice as presented to a reader.
type ChoiceView struct {
	// Index is the zero-based position accepted by Advance.
	Index int `json:"index"`
	// Number is the one-based position shown to readers.
	Number int    `json:"number"`
	Label  string `json:"label"`
	Target string `json:"target"`
}

// View is what a front-end renders for the current node of a session.
type View struct {
	NodeID   string       `json:"node_id"`
	Text     string       `json:"text"`
	Image    string       `json:"image,omitempty"`
	Choices  []ChoiceView `json:"choices"`
	Terminal bool         `json:"terminal"`
}

// NewView projects a node into a view.
func NewView(node Node) View {
	choices := make([]ChoiceView, len(node.Choices))
	for i, c := range node.Choices {
		choices[i] = ChoiceView{Index: i, Number: i + 1, Label: c.Label, Target: c.Target}
	}
	return View{
		NodeID:   node.ID,
		Text:     node.Text,
		Image:    node.Image,
		Choices:  choices,
		Terminal: node.IsTerminal(),
	}
}
