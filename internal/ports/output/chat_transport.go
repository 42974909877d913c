package output

import (
	"context"

	"album-uploader/internal/domain"
)

// ChatTransport interface - Output port
// Defines what the application needs from the chat messaging platform
type ChatTransport interface {
	// SendMessage sends text to a chat. Non-empty options are rendered as an
	// inline keyboard with one button per option.
	SendMessage(ctx context.Context, chatID, text string, options []domain.InlineOption) error

	// AnswerCallback acknowledges a callback query, as a toast or as an alert
	AnswerCallback(ctx context.Context, queryID, text string, alert bool) error
}
