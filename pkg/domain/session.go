package domain

// SessionStatus defines whether a traversal can still advance.
type SessionStatus string

const (
	StatusActive   SessionStatus = "active"   // Current node has choices
	StatusFinished SessionStatus = "finished" // Current node is an ending
)

// Session is the traversal state of one reader through one graph.
//
// Sessions are values: the engine never mutates a session it was given and
// always returns a fresh one. Trail and VisitedTexts grow together, one entry
// per visited node, starting with the start node.
type Session struct {
	ID string `json:"id,omitempty"`

	// Current is the key of the node being shown.
	Current string `json:"current"`

	// Status is derived from the current node: finished iff it has no choices.
	Status SessionStatus `json:"status"`

	// VisitedTexts holds the text of every visited node, in order.
	VisitedTexts []string `json:"visited_texts"`

	// Trail holds the key of every visited node, in order.
	Trail []string `json:"trail"`
}

// NewSession creates an empty session positioned at start.
// Callers normally use the engine's Start, which also records the first visit.
func NewSession(id, start string) *Session {
	return &Session{
		ID:           id,
		Current:      start,
		Status:       StatusActive,
		VisitedTexts: []string{},
		Trail:        []string{},
	}
}

// IsFinished reports whether the session reached an ending.
func (s *Session) IsFinished() bool {
	return s.Status == StatusFinished
}

// Snapshot returns a deep copy of the session.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.VisitedTexts = append([]string{}, s.VisitedTexts...)
	out.Trail = append([]string{}, s.Trail...)
	return &out
}

// Visit returns a copy of the session moved to node, with its text recorded.
func (s *Session) Visit(node Node) *Session {
	next := s.Snapshot()
	next.Current = node.ID
	next.VisitedTexts = append(next.VisitedTexts, node.Text)
	next.Trail = append(next.Trail, node.ID)
	next.Status = StatusActive
	if node.IsTerminal() {
		next.Status = StatusFinished
	}
	return next
}
