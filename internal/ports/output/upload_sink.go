package output

import (
	"context"

	"album-uploader/internal/domain"
)

// UploadSink interface - Output port
// Persists an image plus metadata under a chosen album.
type UploadSink interface {
	// Upload stores the record and returns the backend receipt.
	// An album deleted between selection and upload surfaces here as a
	// *domain.CollaboratorError, the caller does not revalidate the catalog.
	Upload(ctx context.Context, record domain.UploadRecord) (*domain.Receipt, error)
}
