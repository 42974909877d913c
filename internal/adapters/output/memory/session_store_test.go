package memory

import (
	"errors"
	"sync"
	"testing"
	"time"

	"album-uploader/internal/domain"
)

// Default test configuration values
const (
	testTimeout = 30 * time.Minute
	testChatID  = "123456789"
)

// ============================================================================
// Session store: retrieval and expiry
// ============================================================================

// TestNewMemorySessionStoreStoresTimeout tests that the configured timeout is kept
func TestNewMemorySessionStoreStoresTimeout(t *testing.T) {
	timeout := 45 * time.Minute

	store := NewMemorySessionStore(timeout)

	if store == nil {
		t.Fatal("expected NewMemorySessionStore to return non-nil store")
	}
	if store.GetTimeout() != timeout {
		t.Errorf("expected timeout %v, got %v", timeout, store.GetTimeout())
	}
}

// TestGetReturnsIdleSessionForUnknownChat tests that a chat never seen starts idle
func TestGetReturnsIdleSessionForUnknownChat(t *testing.T) {
	store := NewMemorySessionStore(testTimeout)

	session := store.Get(testChatID)

	if session.ChatID != testChatID {
		t.Errorf("expected chat id %s, got %s", testChatID, session.ChatID)
	}
	if session.Phase != domain.PhaseIdle {
		t.Errorf("expected phase %s, got %s", domain.PhaseIdle, session.Phase)
	}
	if session.SelectedAlbumID != "" {
		t.Errorf("expected no album, got %s", session.SelectedAlbumID)
	}
	if store.Len() != 0 {
		t.Errorf("expected Get not to store anything, got %d sessions", store.Len())
	}
}

// TestPutThenGetReturnsStoredSession tests a round trip through the store
func TestPutThenGetReturnsStoredSession(t *testing.T) {
	store := NewMemorySessionStore(testTimeout)
	before := time.Now()

	store.Put(domain.NewSession(testChatID).AwaitImage("album-1"))
	session := store.Get(testChatID)

	if session.Phase != domain.PhaseAwaitingImage {
		t.Errorf("expected phase %s, got %s", domain.PhaseAwaitingImage, session.Phase)
	}
	if session.SelectedAlbumID != "album-1" {
		t.Errorf("expected album-1, got %s", session.SelectedAlbumID)
	}
	if session.LastAccessTime.Before(before) {
		t.Error("expected Put to refresh LastAccessTime")
	}
}

// TestGetReturnsIdleForExpiredSession tests that expired sessions are reset and removed
func TestGetReturnsIdleForExpiredSession(t *testing.T) {
	store := NewMemorySessionStore(5 * time.Minute)

	session := domain.NewSession(testChatID).AwaitImage("album-1")
	session.LastAccessTime = time.Now().Add(-6 * time.Minute)
	// Store directly in sync.Map to bypass Put's LastAccessTime update
	store.sessions.Store(testChatID, session)

	got := store.Get(testChatID)

	if got.Phase != domain.PhaseIdle {
		t.Errorf("expected expired session to come back idle, got %s", got.Phase)
	}
	if _, exists := store.sessions.Load(testChatID); exists {
		t.Error("expected expired session to be deleted")
	}
}

// TestGetKeepsSessionWhenExpiryDisabled tests that a zero timeout never expires sessions
func TestGetKeepsSessionWhenExpiryDisabled(t *testing.T) {
	store := NewMemorySessionStore(0)

	session := domain.NewSession(testChatID).AwaitAlbumSelection()
	session.LastAccessTime = time.Now().Add(-72 * time.Hour)
	store.sessions.Store(testChatID, session)

	got := store.Get(testChatID)

	if got.Phase != domain.PhaseAwaitingAlbumSelection {
		t.Errorf("expected phase %s, got %s", domain.PhaseAwaitingAlbumSelection, got.Phase)
	}
}

// TestGetDropsMalformedEntry tests that a foreign value in the map is discarded
func TestGetDropsMalformedEntry(t *testing.T) {
	store := NewMemorySessionStore(testTimeout)
	store.sessions.Store(testChatID, "not a session")

	got := store.Get(testChatID)

	if got.Phase != domain.PhaseIdle {
		t.Errorf("expected idle session, got %s", got.Phase)
	}
	if store.Len() != 0 {
		t.Errorf("expected malformed entry to be removed, got %d sessions", store.Len())
	}
}

// TestSessionsAreIsolatedPerChat tests that chats do not share state
func TestSessionsAreIsolatedPerChat(t *testing.T) {
	store := NewMemorySessionStore(testTimeout)

	store.Put(domain.NewSession("chat-a").AwaitImage("album-1"))
	store.Put(domain.NewSession("chat-b").AwaitAlbumSelection())

	if got := store.Get("chat-a"); got.SelectedAlbumID != "album-1" {
		t.Errorf("expected chat-a on album-1, got %q", got.SelectedAlbumID)
	}
	if got := store.Get("chat-b"); got.Phase != domain.PhaseAwaitingAlbumSelection {
		t.Errorf("expected chat-b awaiting selection, got %s", got.Phase)
	}
}

// ============================================================================
// Session store: per-chat locking
// ============================================================================

// TestWithLockReturnsCallbackError tests that the callback error is passed through
func TestWithLockReturnsCallbackError(t *testing.T) {
	store := NewMemorySessionStore(testTimeout)
	expected := errors.New("boom")

	err := store.WithLock(testChatID, func() error { return expected })

	if !errors.Is(err, expected) {
		t.Errorf("expected %v, got %v", expected, err)
	}
}

// TestWithLockSerializesReadModifyWrite tests that concurrent transitions of one
// chat never lose an update
func TestWithLockSerializesReadModifyWrite(t *testing.T) {
	store := NewMemorySessionStore(testTimeout)
	const workers = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.WithLock(testChatID, func() error {
				session := store.Get(testChatID)
				counter++
				store.Put(session.AwaitAlbumSelection())
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("expected %d increments, got %d", workers, counter)
	}
	if got := store.Get(testChatID); got.Phase != domain.PhaseAwaitingAlbumSelection {
		t.Errorf("expected phase %s, got %s", domain.PhaseAwaitingAlbumSelection, got.Phase)
	}
}
