package websocket

import (
	"testing"
	"time"

	"client-retention-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func (h *Hub) hasClient(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

func TestHubSendDeliversToRegisteredClient(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userID := uuid.New()
	client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	hub.register <- client

	require.Eventually(t, func() bool { return hub.hasClient(userID) }, time.Second, 5*time.Millisecond)

	hub.Send(userID, model.Notification{Id: uuid.New(), UserId: userID, Title: "Client retained"})

	select {
	case msg := <-client.Send:
		require.NotEmpty(t, msg)
	case <-time.After(time.Second):
		t.Fatal("notification was not delivered")
	}
}

func TestHubSlowConsumerDropsWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	userID := uuid.New()
	// Zero-capacity buffer: the first push already counts as a slow consumer.
	client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	hub.register <- client

	require.Eventually(t, func() bool { return hub.hasClient(userID) }, time.Second, 5*time.Millisecond)

	// First push drops the connection. The unregister handler is the only
	// place that closes Send; a second close here would panic the hub
	// goroutine and take the process down.
	hub.Send(userID, model.Notification{Id: uuid.New(), UserId: userID})

	require.Eventually(t, func() bool { return !hub.hasClient(userID) }, time.Second, 5*time.Millisecond)

	// Channel is closed exactly once.
	_, open := <-client.Send
	require.False(t, open)

	// Sending to the now-unknown user is a no-op.
	hub.Send(userID, model.Notification{Id: uuid.New(), UserId: userID})
}
