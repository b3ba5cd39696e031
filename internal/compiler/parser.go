package compiler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/storybuilder/pkg/domain"
)

// ErrMissingID is returned when a node definition carries no id.
var ErrMissingID = errors.New("node missing ID")

// Parser is responsible for converting raw bytes into a Node.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the JSON node definition produced by the loaders.
func (p *Parser) Parse(data []byte) (*domain.Node, error) {
	var node domain.Node
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse node: %w", err)
	}
	if node.ID == "" {
		return nil, ErrMissingID
	}
	if node.Choices == nil {
		node.Choices = []domain.Choice{}
	}
	return &node, nil
}
