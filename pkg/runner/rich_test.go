package runner_test

import (
	"context"
	"testing"

	"github.com/aretw0/storybuilder/pkg/domain"
	"github.com/aretw0/storybuilder/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceAndView(t *testing.T) {
	eng := newCaveEngine(t)
	ctx := context.Background()

	resp, err := runner.StartAndView(ctx, eng)
	require.NoError(t, err)
	assert.Equal(t, "start", resp.View.NodeID)
	assert.False(t, resp.Finished)

	resp, err = runner.AdvanceAndView(ctx, eng, resp.Session, 1)
	require.NoError(t, err)
	assert.Equal(t, "right", resp.View.NodeID)
	assert.Equal(t, "dragon.png", resp.View.Image)

	_, err = runner.AdvanceAndView(ctx, eng, resp.Session, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidChoiceIndex)

	resp, err = runner.AdvanceAndView(ctx, eng, resp.Session, 0)
	require.NoError(t, err)
	assert.True(t, resp.Finished)
	assert.True(t, resp.View.Terminal)

	again, err := runner.View(eng, resp.Session)
	require.NoError(t, err)
	assert.Equal(t, resp.View, again.View)
}
