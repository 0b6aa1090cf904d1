package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFansOut(t *testing.T) {
	hub := NewHub()
	a, cancelA := hub.Subscribe()
	b, cancelB := hub.Subscribe()
	defer cancelA()
	defer cancelB()

	hub.Publish(Event{Kind: KindItem, Action: ActionCreated, ID: 7})

	for _, ch := range []<-chan Event{a, b} {
		e := <-ch
		assert.Equal(t, KindItem, e.Kind)
		assert.Equal(t, ActionCreated, e.Action)
		assert.Equal(t, int64(7), e.ID)
		assert.False(t, e.At.IsZero())
	}
}

func TestPublishDropsWhenFull(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	for i := 0; i < BufferSize+10; i++ {
		hub.Publish(Event{Kind: KindTag, ID: int64(i)})
	}

	require.Len(t, ch, BufferSize)
	assert.Equal(t, int64(0), (<-ch).ID)
}

func TestCancelUnsubscribes(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.Subscribers())

	cancel()
	cancel()
	assert.Equal(t, 0, hub.Subscribers())

	_, ok := <-ch
	assert.False(t, ok)

	hub.Publish(Event{Kind: KindRoom})
}

func TestNilHubPublish(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish(Event{Kind: KindItem}) })
}
