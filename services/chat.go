package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"agrisphere/models"
)

// ChatGreeting opens every new transcript.
const ChatGreeting = "Hello! I'm your agriculture AI assistant. Ask me anything about crop prediction, weather, soil, or farming!"

const (
	// DefaultMaxMessages bounds a transcript; the oldest turns after the
	// greeting are dropped first.
	DefaultMaxMessages = 100
	// DefaultMaxSessions bounds the store; the least recently used session
	// is evicted when a new one would exceed it.
	DefaultMaxSessions = 1000
	// DefaultSessionIdleTTL expires sessions nobody has touched.
	DefaultSessionIdleTTL = 24 * time.Hour
)

type chatSession struct {
	owner    string
	messages []models.ChatMessage
	lastUsed time.Time
}

// ChatStore keeps transcripts in memory for the life of the process. Every
// session belongs to the user it was issued to.
type ChatStore struct {
	mu          sync.Mutex
	sessions    map[string]*chatSession
	maxMessages int
	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time
}

// NewChatStore returns a store; non-positive limits take the defaults.
func NewChatStore(maxMessages, maxSessions int, idleTTL time.Duration) *ChatStore {
	if maxMessages < 2 {
		maxMessages = DefaultMaxMessages
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	if idleTTL <= 0 {
		idleTTL = DefaultSessionIdleTTL
	}
	return &ChatStore{
		sessions:    make(map[string]*chatSession),
		maxMessages: maxMessages,
		maxSessions: maxSessions,
		idleTTL:     idleTTL,
		now:         time.Now,
	}
}

// Open resumes sessionID when it was issued to userID and is still live.
// Otherwise it starts a new session. It returns the session id in use and a
// copy of its transcript.
func (s *ChatStore) Open(userID, sessionID string) (string, []models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := s.owned(userID, sessionID, now)
	if sess == nil {
		sessionID, sess = s.create(userID, now)
	}
	sess.lastUsed = now
	return sessionID, copyMessages(sess.messages)
}

// Lookup returns the transcript when userID owns the live session.
func (s *ChatStore) Lookup(userID, sessionID string) ([]models.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.owned(userID, sessionID, s.now())
	if sess == nil {
		return nil, false
	}
	return copyMessages(sess.messages), true
}

// Append adds messages in order. It reports false when the session is gone
// or belongs to someone else.
func (s *ChatStore) Append(userID, sessionID string, msgs ...models.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := s.owned(userID, sessionID, now)
	if sess == nil {
		return false
	}
	for _, m := range msgs {
		if m.SentAt.IsZero() {
			m.SentAt = now
		}
		sess.messages = append(sess.messages, m)
	}
	if over := len(sess.messages) - s.maxMessages; over > 0 {
		sess.messages = append(sess.messages[:1], sess.messages[1+over:]...)
	}
	sess.lastUsed = now
	return true
}

// Len is the number of live and not yet swept sessions.
func (s *ChatStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *ChatStore) owned(userID, sessionID string, now time.Time) *chatSession {
	sess, ok := s.sessions[sessionID]
	if !ok || sess.owner != userID {
		return nil
	}
	if now.Sub(sess.lastUsed) > s.idleTTL {
		delete(s.sessions, sessionID)
		return nil
	}
	return sess
}

func (s *ChatStore) create(userID string, now time.Time) (string, *chatSession) {
	if len(s.sessions) >= s.maxSessions {
		s.evict(now)
	}
	id := uuid.NewString()
	sess := &chatSession{
		owner:    userID,
		messages: []models.ChatMessage{{Sender: models.SenderAI, Text: ChatGreeting, SentAt: now}},
		lastUsed: now,
	}
	s.sessions[id] = sess
	return id, sess
}

// evict drops expired sessions, then the least recently used ones until
// there is room for one more.
func (s *ChatStore) evict(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.idleTTL {
			delete(s.sessions, id)
		}
	}
	for len(s.sessions) >= s.maxSessions {
		var oldestID string
		var oldest time.Time
		for id, sess := range s.sessions {
			if oldestID == "" || sess.lastUsed.Before(oldest) {
				oldestID, oldest = id, sess.lastUsed
			}
		}
		delete(s.sessions, oldestID)
	}
}

func copyMessages(msgs []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
