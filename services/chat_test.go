package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrisphere/models"
)

// newClockedStore returns a store whose clock advances one second per call.
func newClockedStore(maxMessages, maxSessions int, ttl time.Duration) (*ChatStore, *time.Time) {
	store := NewChatStore(maxMessages, maxSessions, ttl)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	return store, &now
}

func TestChatStoreCapsMessages(t *testing.T) {
	store := NewChatStore(4, 0, 0)
	id, _ := store.Open("u1", "")
	for i := 0; i < 5; i++ {
		require.True(t, store.Append("u1", id, models.ChatMessage{Sender: models.SenderUser, Text: string(rune('a' + i))}))
	}
	msgs, ok := store.Lookup("u1", id)
	require.True(t, ok)
	require.Len(t, msgs, 4)
	assert.Equal(t, ChatGreeting, msgs[0].Text)
	assert.Equal(t, "c", msgs[1].Text)
	assert.Equal(t, "e", msgs[3].Text)
}

func TestChatStoreSessionsBelongToOwner(t *testing.T) {
	store := NewChatStore(0, 0, 0)

	id, history := store.Open("u1", "")
	require.NotEmpty(t, id)
	require.Len(t, history, 1)
	assert.Equal(t, models.SenderAI, history[0].Sender)

	resumed, _ := store.Open("u1", id)
	assert.Equal(t, id, resumed)

	_, ok := store.Lookup("u2", id)
	assert.False(t, ok)
	assert.False(t, store.Append("u2", id, models.ChatMessage{Sender: models.SenderUser, Text: "hijack"}))

	foreign, _ := store.Open("u2", id)
	assert.NotEqual(t, id, foreign)

	invented, _ := store.Open("u1", "chosen-by-client")
	assert.NotEqual(t, "chosen-by-client", invented)
	_, ok = store.Lookup("u1", "chosen-by-client")
	assert.False(t, ok)

	msgs, ok := store.Lookup("u1", id)
	require.True(t, ok)
	assert.Len(t, msgs, 1)
}

func TestChatStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store, _ := newClockedStore(0, 2, time.Hour)

	first, _ := store.Open("u1", "")
	second, _ := store.Open("u2", "")
	store.Open("u1", first)

	third, _ := store.Open("u3", "")
	assert.Equal(t, 2, store.Len())

	_, ok := store.Lookup("u2", second)
	assert.False(t, ok)
	_, ok = store.Lookup("u1", first)
	assert.True(t, ok)
	_, ok = store.Lookup("u3", third)
	assert.True(t, ok)
}

func TestChatStoreExpiresIdleSessions(t *testing.T) {
	store, now := newClockedStore(0, 0, time.Minute)

	id, _ := store.Open("u1", "")
	*now = now.Add(2 * time.Minute)

	_, ok := store.Lookup("u1", id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())

	fresh, _ := store.Open("u1", id)
	assert.NotEqual(t, id, fresh)
}

func TestChatStoreReturnsCopies(t *testing.T) {
	store := NewChatStore(0, 0, 0)
	id, history := store.Open("u1", "")
	history[0].Text = "changed"

	msgs, ok := store.Lookup("u1", id)
	require.True(t, ok)
	assert.Equal(t, ChatGreeting, msgs[0].Text)
}
