package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// OverlayFor builds the overlay of a session. A nil session yields nil.
func OverlayFor(s *domain.Session) *GraphOverlay {
	if s == nil {
		return nil
	}
	return &GraphOverlay{
		VisitedNodes: append([]string(nil), s.Trail...),
		CurrentNode:  s.Current,
	}
}

// GenerateMermaid produces a Mermaid flowchart for a story graph.
// It applies semantic styling:
// - Start: ((Circle))
// - Ending: ([Stadium])
// - Default: [Rectangle]
// Choices become labelled edges; edges to missing nodes are dotted and the
// missing target is drawn as {{Hexagon}}.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	missing := make(map[string]bool)
	for _, node := range g.Nodes() {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch {
		case node.ID == g.StartKey():
			opener, closer = "((", "))"
		case node.IsTerminal():
			opener, closer = "([", "])"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(node.ID), closer)

		for _, c := range node.Choices {
			arrow := fmt.Sprintf("-- \"%s\" -->", escapeLabel(c.Label))
			if !g.Has(c.Target) {
				arrow = fmt.Sprintf("-. \"%s\" .->", escapeLabel(c.Label))
				missing[c.Target] = true
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID, arrow, sanitizeMermaidID(c.Target))
		}
	}

	if len(missing) > 0 || !g.Has(g.StartKey()) {
		sb.WriteString("\n    %% Missing Nodes\n")
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#c62828,stroke-dasharray:4 2,color:#000;\n")
		if !g.Has(g.StartKey()) {
			missing[g.StartKey()] = true
		}
		for _, id := range sortedKeys(missing) {
			safeID := sanitizeMermaidID(id)
			fmt.Fprintf(&sb, "    %s{{\"%s ?\"}}\n", safeID, escapeLabel(id))
			fmt.Fprintf(&sb, "    class %s missing;\n", safeID)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := sanitizeMermaidID(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.CurrentNode != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
	// "end" is a Mermaid keyword.
	if strings.EqualFold(s, "end") {
		s += "_"
	}
	return s
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
