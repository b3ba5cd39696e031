// Package validator turns graph validation issues into a report for the
// validate command.
package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// Report summarizes a validated story graph.
type Report struct {
	Story   string                   `json:"story"`
	Start   string                   `json:"start"`
	Nodes   int                      `json:"nodes"`
	Endings int                      `json:"endings"`
	Issues  []domain.ValidationIssue `json:"issues"`
}

// NewReport validates g and collects the result.
func NewReport(story string, g *domain.Graph, opts ...domain.ValidateOption) Report {
	r := Report{
		Story:  story,
		Start:  g.StartKey(),
		Nodes:  g.Len(),
		Issues: g.Validate(opts...),
	}
	for _, n := range g.Nodes() {
		if n.IsTerminal() {
			r.Endings++
		}
	}
	if r.Issues == nil {
		r.Issues = []domain.ValidationIssue{}
	}
	return r
}

// OK reports whether the graph has no issues.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

// Err returns a *domain.ValidationError, or nil when the graph is valid.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return &domain.ValidationError{Issues: r.Issues}
}

// WriteText prints the report for humans.
func (r Report) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Story:   %s\n", r.Story)
	fmt.Fprintf(w, "Start:   %s\n", r.Start)
	fmt.Fprintf(w, "Nodes:   %d (%d endings)\n", r.Nodes, r.Endings)
	if r.OK() {
		fmt.Fprintln(w, "Graph is valid! ✅")
		return
	}
	fmt.Fprintf(w, "Found %d issues:\n", len(r.Issues))
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  [%s] %s\n", issue.Kind, issue.String())
	}
}

// WriteJSON prints the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
