package runner_test

import (
	"testing"

	"github.com/aretw0/storybuilder"
	"github.com/aretw0/storybuilder/pkg/dsl"
	"github.com/stretchr/testify/require"
)

// newCaveEngine builds:
//
//	start -> left (end)
//	start -> right -> left
func newCaveEngine(t *testing.T) *storybuilder.Engine {
	t.Helper()
	b := dsl.New()
	b.Add("start").Text("Once upon a time.").Choice("Go left", "left").Choice("Go right", "right")
	b.Add("left").Text("You found treasure.").Terminal()
	b.Add("right").Text("A dragon!").Image("dragon.png").Choice("Run", "left")

	loader, err := b.Build()
	require.NoError(t, err)

	eng, err := storybuilder.New("", storybuilder.WithLoader(loader))
	require.NoError(t, err)
	return eng
}
