package output

import "album-uploader/internal/domain"

// SessionStore interface - Output port
// Holds one conversational state per chat. Implementations must be safe for
// concurrent use; sessions of different chats are fully independent.
type SessionStore interface {
	// Get returns the session for a chat, or a fresh idle session when none
	// exists or the stored one has expired.
	Get(chatID string) domain.Session

	// Put creates or replaces the session of session.ChatID.
	Put(session domain.Session)

	// WithLock runs fn with exclusive access to one chat's session. It is the
	// only prescribed mutation path: fn must not be run concurrently with
	// another WithLock call for the same chat.
	WithLock(chatID string, fn func() error) error
}
