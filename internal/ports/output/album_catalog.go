package output

import (
	"context"

	"album-uploader/internal/domain"
)

// AlbumCatalog interface - Output port
// Lists the destination albums a user may choose from.
type AlbumCatalog interface {
	// ListAlbums returns the current catalog. It is called on every selection
	// event, results are never cached across sessions.
	// Returns a *domain.CollaboratorError on network or API failure.
	ListAlbums(ctx context.Context) ([]domain.Album, error)
}
