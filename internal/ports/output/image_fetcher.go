package output

import (
	"context"

	"album-uploader/internal/domain"
)

// ImageFetcher interface - Output port
// Resolves a platform file reference to raw bytes and pixel dimensions.
type ImageFetcher interface {
	ResolveImage(ctx context.Context, fileRef string) (*domain.Image, error)
}
