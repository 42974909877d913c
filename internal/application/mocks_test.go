package application

import (
	"context"
	"sync"

	"album-uploader/internal/domain"
)

// Mock implementations for testing

// MockAlbumCatalog implements output.AlbumCatalog for testing
type MockAlbumCatalog struct {
	ListAlbumsFunc func(ctx context.Context) ([]domain.Album, error)

	mu    sync.Mutex
	Calls int
}

func (m *MockAlbumCatalog) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	if m.ListAlbumsFunc != nil {
		return m.ListAlbumsFunc(ctx)
	}
	return testAlbums(), nil
}

// MockImageFetcher implements output.ImageFetcher for testing
type MockImageFetcher struct {
	ResolveImageFunc func(ctx context.Context, fileRef string) (*domain.Image, error)

	mu       sync.Mutex
	FileRefs []string
}

func (m *MockImageFetcher) ResolveImage(ctx context.Context, fileRef string) (*domain.Image, error) {
	m.mu.Lock()
	m.FileRefs = append(m.FileRefs, fileRef)
	m.mu.Unlock()
	if m.ResolveImageFunc != nil {
		return m.ResolveImageFunc(ctx, fileRef)
	}
	return &domain.Image{
		FileRef: fileRef,
		Bytes:   []byte("image-bytes"),
		Format:  "jpeg",
		Width:   1920,
		Height:  1080,
	}, nil
}

// MockUploadSink implements output.UploadSink for testing
type MockUploadSink struct {
	UploadFunc func(ctx context.Context, record domain.UploadRecord) (*domain.Receipt, error)

	mu      sync.Mutex
	Records []domain.UploadRecord
}

func (m *MockUploadSink) Upload(ctx context.Context, record domain.UploadRecord) (*domain.Receipt, error) {
	m.mu.Lock()
	m.Records = append(m.Records, record)
	m.mu.Unlock()
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, record)
	}
	return &domain.Receipt{ID: "rec123", Collection: "images"}, nil
}

// RecordCount returns the number of upload calls
func (m *MockUploadSink) RecordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Records)
}

// SentMessage is a captured ChatTransport.SendMessage call
type SentMessage struct {
	ChatID  string
	Text    string
	Options []domain.InlineOption
}

// AnsweredCallback is a captured ChatTransport.AnswerCallback call
type AnsweredCallback struct {
	QueryID string
	Text    string
	Alert   bool
}

// MockChatTransport implements output.ChatTransport for testing
type MockChatTransport struct {
	SendMessageFunc    func(ctx context.Context, chatID, text string, options []domain.InlineOption) error
	AnswerCallbackFunc func(ctx context.Context, queryID, text string, alert bool) error

	mu       sync.Mutex
	Messages []SentMessage
	Answers  []AnsweredCallback
}

func (m *MockChatTransport) SendMessage(ctx context.Context, chatID, text string, options []domain.InlineOption) error {
	m.mu.Lock()
	m.Messages = append(m.Messages, SentMessage{ChatID: chatID, Text: text, Options: options})
	m.mu.Unlock()
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, chatID, text, options)
	}
	return nil
}

func (m *MockChatTransport) AnswerCallback(ctx context.Context, queryID, text string, alert bool) error {
	m.mu.Lock()
	m.Answers = append(m.Answers, AnsweredCallback{QueryID: queryID, Text: text, Alert: alert})
	m.mu.Unlock()
	if m.AnswerCallbackFunc != nil {
		return m.AnswerCallbackFunc(ctx, queryID, text, alert)
	}
	return nil
}

// MessageCount returns the number of sent messages
func (m *MockChatTransport) MessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}

// MockUploadHistory implements output.UploadHistory for testing
type MockUploadHistory struct {
	RecordUploadFunc func(ctx context.Context, request domain.UploadEntryRequest) (*domain.UploadResponse, error)
	ListUploadsFunc  func(condition domain.QueryUploadRequest) (*domain.UploadListResponse, error)

	// Captured values for assertions
	Entries       []domain.UploadEntryRequest
	LastCondition *domain.QueryUploadRequest
}

func (m *MockUploadHistory) RecordUpload(ctx context.Context, request domain.UploadEntryRequest) (*domain.UploadResponse, error) {
	m.Entries = append(m.Entries, request)
	if m.RecordUploadFunc != nil {
		return m.RecordUploadFunc(ctx, request)
	}
	return &domain.UploadResponse{ChatID: request.ChatID, Title: request.Title}, nil
}

func (m *MockUploadHistory) ListUploads(condition domain.QueryUploadRequest) (*domain.UploadListResponse, error) {
	m.LastCondition = &condition
	if m.ListUploadsFunc != nil {
		return m.ListUploadsFunc(condition)
	}
	return &domain.UploadListResponse{}, nil
}

// MockDeduplicationGate implements output.DeduplicationGate for testing
type MockDeduplicationGate struct {
	ShouldProcessFunc func(updateID int64) bool

	Forgotten []int64
}

func (m *MockDeduplicationGate) ShouldProcess(updateID int64) bool {
	if m.ShouldProcessFunc != nil {
		return m.ShouldProcessFunc(updateID)
	}
	return true
}

func (m *MockDeduplicationGate) Forget(updateID int64) {
	m.Forgotten = append(m.Forgotten, updateID)
}

// SyncQueue runs every submitted update immediately on the caller goroutine
type SyncQueue struct {
	Handler UpdateHandlerFunc
	Err     error
}

func (q *SyncQueue) Submit(update domain.Update) error {
	if q.Err != nil {
		return q.Err
	}
	return q.Handler(context.Background(), update)
}

func testAlbums() []domain.Album {
	return []domain.Album{
		{ID: "alb-41", Name: "Holidays"},
		{ID: "alb-42", Name: "Landscapes"},
	}
}

func strPtr(s string) *string {
	return &s
}
