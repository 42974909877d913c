package memory

import (
	"sync"
	"time"

	"album-uploader/internal/domain"
	"album-uploader/internal/ports/output"
	"album-uploader/pkg/mutex"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage
// Uses sync.Map for concurrent access to chat sessions and a keyed mutex to
// serialize transitions of the same chat. Sessions are lost on restart.
type MemorySessionStore struct {
	sessions sync.Map
	locks    mutex.KeyedMutex
	timeout  time.Duration
}

// NewMemorySessionStore creates a new in-memory session store.
// timeout: Duration after which an untouched session is treated as idle (0 disables expiry)
func NewMemorySessionStore(timeout time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		timeout: timeout,
	}
}

// GetTimeout returns the configured session timeout duration.
func (m *MemorySessionStore) GetTimeout() time.Duration {
	return m.timeout
}

// Get retrieves the session of a chat.
// Returns a fresh idle session if none exists or the stored one has expired.
// Expired sessions are deleted (lazy cleanup).
func (m *MemorySessionStore) Get(chatID string) domain.Session {
	value, exists := m.sessions.Load(chatID)
	if !exists {
		return domain.NewSession(chatID)
	}

	session, ok := value.(domain.Session)
	if !ok {
		// If data is malformed, delete and start over
		m.sessions.Delete(chatID)
		return domain.NewSession(chatID)
	}

	if session.IsExpired(m.timeout) {
		m.sessions.Delete(chatID)
		return domain.NewSession(chatID)
	}

	return session
}

// Put creates or updates a chat session.
// The session's LastAccessTime is updated to the current time before storing.
func (m *MemorySessionStore) Put(session domain.Session) {
	session.LastAccessTime = time.Now()
	m.sessions.Store(session.ChatID, session)
}

// WithLock runs fn while holding the lock of chatID
func (m *MemorySessionStore) WithLock(chatID string, fn func() error) error {
	m.locks.Lock(chatID)
	defer m.locks.Unlock(chatID)
	return fn()
}

// Len returns the number of stored sessions, including expired ones not yet cleaned up
func (m *MemorySessionStore) Len() int {
	n := 0
	m.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
