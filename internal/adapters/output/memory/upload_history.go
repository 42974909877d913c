package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"album-uploader/internal/domain"
	"album-uploader/internal/ports/output"

	"github.com/google/uuid"
)

// Compile-time check to ensure MemoryUploadHistory implements UploadHistory interface
var _ output.UploadHistory = (*MemoryUploadHistory)(nil)

// MemoryUploadHistory struct - Output adapter keeping the most recent uploads in memory.
// Used when no database is configured; the oldest entries are dropped past maxEntries.
type MemoryUploadHistory struct {
	mu         sync.RWMutex
	entries    []domain.Upload
	maxEntries int
}

// NewMemoryUploadHistory creates an in-memory history holding up to maxEntries uploads
func NewMemoryUploadHistory(maxEntries int) *MemoryUploadHistory {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryUploadHistory{
		entries:    make([]domain.Upload, 0),
		maxEntries: maxEntries,
	}
}

// RecordUpload appends a completed upload
func (m *MemoryUploadHistory) RecordUpload(_ context.Context, request domain.UploadEntryRequest) (*domain.UploadResponse, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	entry := domain.Upload{
		ID:             &id,
		ChatID:         request.ChatID,
		AlbumID:        request.AlbumID,
		Title:          request.Title,
		Resolution:     request.Resolution,
		RemoteRecordID: request.RemoteRecordID,
		CreatedAt:      &now,
	}

	m.mu.Lock()
	m.entries = append(m.entries, entry)
	if len(m.entries) > m.maxEntries {
		m.entries = m.entries[len(m.entries)-m.maxEntries:]
	}
	m.mu.Unlock()

	response := entry.ToResponse()
	return &response, nil
}

// ListUploads filters, orders by creation time and paginates the stored uploads
func (m *MemoryUploadHistory) ListUploads(condition domain.QueryUploadRequest) (*domain.UploadListResponse, error) {
	m.mu.RLock()
	matched := make([]domain.Upload, 0, len(m.entries))
	for _, entry := range m.entries {
		if condition.ChatID != nil && entry.ChatID != *condition.ChatID {
			continue
		}
		if condition.AlbumID != nil && entry.AlbumID != *condition.AlbumID {
			continue
		}
		matched = append(matched, entry)
	}
	m.mu.RUnlock()

	// entries are kept in insertion order, which is creation order
	if condition.SortMethod == nil || !condition.SortMethod.Asc {
		slices.Reverse(matched)
	}

	total := int64(len(matched))
	if condition.Pagination != nil {
		start := condition.Pagination.Offset
		if start > len(matched) {
			start = len(matched)
		}
		end := len(matched)
		if condition.Pagination.Limit >= 0 && start+condition.Pagination.Limit < end {
			end = start + condition.Pagination.Limit
		}
		matched = matched[start:end]
	}

	result := domain.UploadListResponse{
		Uploads:     make([]domain.UploadResponse, 0, len(matched)),
		CurrentPage: condition.Page,
		TotalItem:   &total,
	}
	if condition.Pagination != nil {
		result.PerPage = &condition.Pagination.Limit
	}
	for i := range matched {
		result.Uploads = append(result.Uploads, matched[i].ToResponse())
	}
	return &result, nil
}
