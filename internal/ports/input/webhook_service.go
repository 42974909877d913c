package input

import "album-uploader/internal/domain"

// WebhookService interface - Input port (use case)
// Defines what the application can do with inbound chat platform updates
type WebhookService interface {
	// HandleUpdate accepts one parsed update for processing.
	// Returns domain.ErrDuplicateUpdate when the update id was already accepted,
	// or a queue error when the update could not be scheduled.
	HandleUpdate(update domain.Update) error
}
