package http

import (
	"testing"

	"github.com/aretw0/storybuilder/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamManager_BroadcastAndCancel(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())

	ch, cancel := sm.Subscribe("s1")
	other, cancelOther := sm.Subscribe("s2")
	defer cancelOther()
	assert.Equal(t, 1, sm.Subscribers("s1"))

	sm.Broadcast("s1", Event{Data: "a"})
	sm.Broadcast("s1", Event{Data: "b", Final: true})

	assert.Equal(t, Event{Data: "a"}, <-ch)
	assert.Equal(t, Event{Data: "b", Final: true}, <-ch)
	assert.Empty(t, other)

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, sm.Subscribers("s1"))
}

func TestStreamManager_DropsWhenBufferFull(t *testing.T) {
	sm := NewStreamManager(logging.NewNop())
	ch, cancel := sm.Subscribe("s")
	defer cancel()

	for i := 0; i < 20; i++ {
		sm.Broadcast("s", Event{Data: "x"})
	}
	require.Len(t, ch, cap(ch))
}
