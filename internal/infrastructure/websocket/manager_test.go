package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"reliefnet/internal/domain/entity"
)

func receive(t *testing.T, ch <-chan []byte) ([]byte, bool) {
	t.Helper()
	select {
	case msg, ok := <-ch:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for feed message")
		return nil, false
	}
}

func TestManagerBroadcast(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)

	alice := &Client{UserID: "alice", Send: make(chan []byte, 4)}
	bob := &Client{UserID: "bob", Send: make(chan []byte, 4)}
	m.Register <- alice
	m.Register <- bob

	m.Publish(entity.NewFeedEvent("help_request", entity.EventCreated, "req-1", map[string]string{"type": "limpieza"}))

	for _, c := range []*Client{alice, bob} {
		msg, ok := receive(t, c.Send)
		require.True(t, ok)

		var event entity.FeedEvent
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, "help_request.created", event.Type)
		assert.Equal(t, "req-1", event.ID)
	}

	m.Unregister <- bob
	_, ok := receive(t, bob.Send)
	assert.False(t, ok, "unregistered client channel is closed")

	cancel()
	<-m.Done()

	_, ok = receive(t, alice.Send)
	assert.False(t, ok, "shutdown closes remaining clients")
	assert.Equal(t, 0, m.ClientCount())
}

func TestManagerDropsSlowClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)
	defer func() {
		cancel()
		<-m.Done()
	}()

	slow := &Client{UserID: "slow", Send: make(chan []byte)}
	m.Register <- slow
	assert.Eventually(t, func() bool { return m.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	m.Publish(entity.NewFeedEvent("resource", entity.EventDeleted, "res-1", nil))

	assert.Eventually(t, func() bool { return m.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-slow.Send
	assert.False(t, ok)
}
