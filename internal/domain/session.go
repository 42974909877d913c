package domain

import "time"

// Phase represents the position of a chat in the upload conversation
type Phase string

const (
	// PhaseIdle - No conversation in progress
	PhaseIdle Phase = "IDLE"
	// PhaseAwaitingAlbumSelection - Album keyboard was sent, waiting for a button tap
	PhaseAwaitingAlbumSelection Phase = "AWAITING_ALBUM_SELECTION"
	// PhaseAwaitingImage - Album chosen, waiting for the photo
	PhaseAwaitingImage Phase = "AWAITING_IMAGE"
)

// Session represents the conversational state of one chat.
// SelectedAlbumID is set if and only if Phase is PhaseAwaitingImage.
type Session struct {
	ChatID          string    // Telegram chat identifier
	Phase           Phase     // Current state machine position
	SelectedAlbumID string    // Album chosen through the inline keyboard
	LastAccessTime  time.Time // For abandoned session expiration checking
}

// NewSession creates an idle session for a chat
func NewSession(chatID string) Session {
	return Session{
		ChatID:         chatID,
		Phase:          PhaseIdle,
		LastAccessTime: time.Now(),
	}
}

// AwaitAlbumSelection returns the session moved to PhaseAwaitingAlbumSelection.
// Any pending album selection is discarded.
func (s Session) AwaitAlbumSelection() Session {
	s.Phase = PhaseAwaitingAlbumSelection
	s.SelectedAlbumID = ""
	return s
}

// AwaitImage returns the session moved to PhaseAwaitingImage for the given album
func (s Session) AwaitImage(albumID string) Session {
	s.Phase = PhaseAwaitingImage
	s.SelectedAlbumID = albumID
	return s
}

// Reset returns the session moved back to PhaseIdle
func (s Session) Reset() Session {
	s.Phase = PhaseIdle
	s.SelectedAlbumID = ""
	return s
}

// IsValid checks the phase/album invariant
func (s Session) IsValid() bool {
	switch s.Phase {
	case PhaseIdle, PhaseAwaitingAlbumSelection:
		return s.SelectedAlbumID == ""
	case PhaseAwaitingImage:
		return s.SelectedAlbumID != ""
	default:
		return false
	}
}

// IsExpired checks if the session has been untouched for longer than timeout.
// A non-positive timeout disables expiration.
func (s Session) IsExpired(timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}
	return time.Since(s.LastAccessTime) > timeout
}
