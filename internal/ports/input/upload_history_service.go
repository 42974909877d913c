package input

import "album-uploader/internal/domain"

// UploadHistoryService interface - Input port (use case)
// Defines what the application can report about completed uploads
type UploadHistoryService interface {
	ListUploads(condition domain.QueryUploadRequest) (*domain.UploadListResponse, error)
}
