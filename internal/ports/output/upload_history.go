package output

import (
	"context"

	"album-uploader/internal/domain"
)

// UploadHistory interface - Output port
// Records completed uploads for operators.
type UploadHistory interface {
	RecordUpload(ctx context.Context, request domain.UploadEntryRequest) (*domain.UploadResponse, error)
	ListUploads(condition domain.QueryUploadRequest) (*domain.UploadListResponse, error)
}
