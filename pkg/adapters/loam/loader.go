package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository (one markdown file per node) to the
// GraphLoader interface. The file body is the node text; the frontmatter
// carries the image and the choices.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict keeps numeric types consistent across formats; read-only avoids
	// Loam's sandbox behaviour since stories are never written back.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

// GetNode retrieves a node and re-encodes it as a domain.Node.
func (l *Loader) GetNode(id string) ([]byte, error) {
	ctx := context.Background()

	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	rawID := doc.Data.ID
	if rawID == "" {
		rawID = doc.ID
	}
	nodeID := trimExtension(rawID)

	choices, err := decodeChoices(doc.Data.Choices)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", nodeID, err)
	}

	node := domain.Node{
		ID:      nodeID,
		Text:    strings.TrimSpace(doc.Content),
		Image:   doc.Data.Image,
		Choices: choices,
	}

	bytes, err := json.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal node data: %w", err)
	}
	return bytes, nil
}

func decodeChoices(raw []any) ([]domain.Choice, error) {
	choices := make([]domain.Choice, 0, len(raw))
	for i, item := range raw {
		switch v := item.(type) {
		case map[string]any, map[any]any:
			var cm ChoiceMetadata
			if err := mapstructure.Decode(v, &cm); err != nil {
				return nil, fmt.Errorf("choice %d: %w", i+1, err)
			}
			if cm.target() == "" {
				return nil, fmt.Errorf("choice %d: missing target", i+1)
			}
			choices = append(choices, domain.Choice{Label: cm.label(), Target: trimExtension(cm.target())})
		default:
			return nil, fmt.Errorf("choice %d: invalid definition type %T", i+1, v)
		}
	}
	return choices, nil
}

// ListNodes lists all nodes in the repository.
func (l *Loader) ListNodes() ([]string, error) {
	ctx := context.Background()
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	return ids, nil
}

// StartNode returns the first node flagged with "start: true", or "".
func (l *Loader) StartNode() string {
	docs, err := l.Repo.List(context.Background())
	if err != nil {
		return ""
	}
	for _, doc := range docs {
		if !doc.Data.Start {
			continue
		}
		if doc.Data.ID != "" {
			return trimExtension(doc.Data.ID)
		}
		return trimExtension(doc.ID)
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
