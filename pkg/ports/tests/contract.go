package tests

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter
// complies with ports.GraphLoader. Loaders may re-encode their source, so nodes
// are compared after decoding rather than byte for byte.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, want map[string]domain.Node) {
	t.Helper()

	t.Run("GetNode_Success", func(t *testing.T) {
		for id, expected := range want {
			content, err := loader.GetNode(id)
			if err != nil {
				t.Fatalf("unexpected error getting node %s: %v", id, err)
			}
			var got domain.Node
			if err := json.Unmarshal(content, &got); err != nil {
				t.Fatalf("node %s is not valid JSON: %v", id, err)
			}
			if got.ID != expected.ID || got.Text != expected.Text || got.Image != expected.Image {
				t.Errorf("node mismatch for %s. got %+v, want %+v", id, got, expected)
			}
			if len(got.Choices) != len(expected.Choices) {
				t.Fatalf("choice count mismatch for %s. got %d, want %d", id, len(got.Choices), len(expected.Choices))
			}
			for i := range expected.Choices {
				if got.Choices[i] != expected.Choices[i] {
					t.Errorf("choice %d mismatch for %s. got %+v, want %+v", i, id, got.Choices[i], expected.Choices[i])
				}
			}
		}
	})

	t.Run("GetNode_NotFound", func(t *testing.T) {
		_, err := loader.GetNode("non-existent-node")
		if err == nil {
			t.Error("expected error for non-existent node, got nil")
		}
	})

	t.Run("ListNodes", func(t *testing.T) {
		nodes, err := loader.ListNodes()
		if err != nil {
			t.Fatalf("unexpected error listing nodes: %v", err)
		}

		if len(nodes) != len(want) {
			t.Errorf("expected %d nodes, got %d", len(want), len(nodes))
		}

		lookup := make(map[string]bool)
		for _, id := range nodes {
			lookup[id] = true
		}
		for id := range want {
			if !lookup[id] {
				t.Errorf("node %s missing from list", id)
			}
		}
	})
}
