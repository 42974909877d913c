package application

import (
	"album-uploader/internal/domain"
	"album-uploader/internal/ports/input"
	"album-uploader/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure WebhookService implements input.WebhookService
var _ input.WebhookService = (*WebhookService)(nil)

// UpdateQueue schedules accepted updates for processing
type UpdateQueue interface {
	Submit(update domain.Update) error
}

// WebhookService struct - Application service implementing the webhook use case
type WebhookService struct {
	gate  output.DeduplicationGate
	queue UpdateQueue
}

// NewWebhookService func - Creates new webhook service
func NewWebhookService(gate output.DeduplicationGate, queue UpdateQueue) *WebhookService {
	return &WebhookService{
		gate:  gate,
		queue: queue,
	}
}

// HandleUpdate func - Use case: accept one inbound update.
// Duplicates are rejected before any processing. When the update cannot be
// scheduled its id is released so a platform redelivery is handled.
// Deduplication is process local, and a redelivery arriving between
// ShouldProcess and Forget is acknowledged as a duplicate and dropped.
func (s *WebhookService) HandleUpdate(update domain.Update) error {
	if !s.gate.ShouldProcess(update.ID) {
		logrus.Infof("Skipping duplicate update %d for chat %s", update.ID, update.ChatID)
		return domain.ErrDuplicateUpdate
	}

	if err := s.queue.Submit(update); err != nil {
		s.gate.Forget(update.ID)
		logrus.WithError(err).WithFields(logrus.Fields{
			"update_id": update.ID,
			"chat_id":   update.ChatID,
		}).Error("Failed to schedule update")
		return err
	}
	return nil
}
