package domain

import (
	"testing"
	"time"
)

// Default test values
const (
	defaultTimeout = 30 * time.Minute
	testChatID     = "123456789"
)

// TestNewSession tests session creation and initialization
func TestNewSession(t *testing.T) {
	session := NewSession(testChatID)

	if session.ChatID != testChatID {
		t.Errorf("expected ChatID %s, got %s", testChatID, session.ChatID)
	}

	if session.Phase != PhaseIdle {
		t.Errorf("expected phase %s, got %s", PhaseIdle, session.Phase)
	}

	if session.SelectedAlbumID != "" {
		t.Errorf("expected empty SelectedAlbumID, got %s", session.SelectedAlbumID)
	}

	if session.LastAccessTime.IsZero() {
		t.Error("expected LastAccessTime to be set, got zero value")
	}

	if !session.IsValid() {
		t.Error("expected new session to satisfy the phase invariant")
	}
}

// TestSessionTransitions tests that helper transitions keep the album invariant
func TestSessionTransitions(t *testing.T) {
	session := NewSession(testChatID).AwaitAlbumSelection()
	if session.Phase != PhaseAwaitingAlbumSelection || !session.IsValid() {
		t.Fatalf("unexpected session after AwaitAlbumSelection: %+v", session)
	}

	session = session.AwaitImage("alb-42")
	if session.Phase != PhaseAwaitingImage {
		t.Errorf("expected phase %s, got %s", PhaseAwaitingImage, session.Phase)
	}
	if session.SelectedAlbumID != "alb-42" {
		t.Errorf("expected SelectedAlbumID alb-42, got %s", session.SelectedAlbumID)
	}
	if !session.IsValid() {
		t.Error("expected AWAITING_IMAGE session with album to be valid")
	}

	// Restart discards the pending selection
	restarted := session.AwaitAlbumSelection()
	if restarted.SelectedAlbumID != "" || !restarted.IsValid() {
		t.Errorf("expected restart to discard album, got %+v", restarted)
	}

	reset := session.Reset()
	if reset.Phase != PhaseIdle || reset.SelectedAlbumID != "" {
		t.Errorf("expected idle session without album, got %+v", reset)
	}

	// Transitions return copies
	if session.Phase != PhaseAwaitingImage {
		t.Error("expected original session to be left untouched")
	}
}

// TestSessionIsValid tests the phase/album invariant check
func TestSessionIsValid(t *testing.T) {
	cases := []struct {
		name    string
		session Session
		valid   bool
	}{
		{"idle", Session{Phase: PhaseIdle}, true},
		{"idle with album", Session{Phase: PhaseIdle, SelectedAlbumID: "a"}, false},
		{"selecting with album", Session{Phase: PhaseAwaitingAlbumSelection, SelectedAlbumID: "a"}, false},
		{"awaiting image without album", Session{Phase: PhaseAwaitingImage}, false},
		{"awaiting image", Session{Phase: PhaseAwaitingImage, SelectedAlbumID: "a"}, true},
		{"unknown phase", Session{Phase: "DONE"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.session.IsValid(); got != tc.valid {
				t.Errorf("expected IsValid %v, got %v", tc.valid, got)
			}
		})
	}
}

// TestSessionIsExpired tests session expiration check logic
func TestSessionIsExpired(t *testing.T) {
	session := NewSession(testChatID)

	// New session should not be expired
	if session.IsExpired(defaultTimeout) {
		t.Error("expected new session to not be expired")
	}

	// Session with LastAccessTime 31 minutes ago should be expired
	session.LastAccessTime = time.Now().Add(-31 * time.Minute)
	if !session.IsExpired(defaultTimeout) {
		t.Error("expected session with LastAccessTime 31 minutes ago to be expired")
	}

	// Session with LastAccessTime 29 minutes ago should not be expired
	session.LastAccessTime = time.Now().Add(-29 * time.Minute)
	if session.IsExpired(defaultTimeout) {
		t.Error("expected session with LastAccessTime 29 minutes ago to not be expired")
	}

	// Zero timeout disables expiration
	session.LastAccessTime = time.Now().Add(-24 * time.Hour)
	if session.IsExpired(0) {
		t.Error("expected zero timeout to disable expiration")
	}
}
