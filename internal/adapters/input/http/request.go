package http

import (
	"strconv"

	"album-uploader/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type (
	// QueryUploadRequest struct - HTTP query request DTO
	QueryUploadRequest struct {
		ChatID  *string `json:"chat_id,omitempty" form:"chat_id" query:"chat_id" validate:"omitempty,numeric"`
		AlbumID *string `json:"album_id,omitempty" form:"album_id" query:"album_id" validate:"omitempty,max=64"`

		Limit *int  `json:"limit,omitempty" form:"limit" query:"limit" validate:"omitempty,gte=1,lte=100"`
		Page  *int  `json:"page,omitempty" form:"page" query:"page" validate:"omitempty,gte=1"`
		Asc   *bool `json:"asc,omitempty" form:"asc" query:"asc"`
	}
)

// ToDomainUpdate converts a Bot API update into a domain update.
// Returns domain.ErrMalformedUpdate when it carries neither a message nor a
// callback query. Messages that are neither text nor photo become an empty
// text command so the user still receives guidance.
func ToDomainUpdate(update tgbotapi.Update) (domain.Update, error) {
	updateID := int64(update.UpdateID)

	switch {
	case update.Message != nil:
		message := update.Message
		if message.Chat == nil {
			return domain.Update{}, domain.ErrMalformedUpdate
		}
		chatID := strconv.FormatInt(message.Chat.ID, 10)

		if len(message.Photo) > 0 {
			// sizes are ordered smallest first
			largest := message.Photo[len(message.Photo)-1]
			var caption *string
			if message.Caption != "" {
				caption = &message.Caption
			}
			return domain.NewPhotoMessage(updateID, chatID, largest.FileID, caption), nil
		}
		return domain.NewTextCommand(updateID, chatID, message.Text), nil

	case update.CallbackQuery != nil:
		query := update.CallbackQuery
		var chatID string
		switch {
		case query.Message != nil && query.Message.Chat != nil:
			chatID = strconv.FormatInt(query.Message.Chat.ID, 10)
		case query.From != nil:
			chatID = strconv.FormatInt(query.From.ID, 10)
		default:
			return domain.Update{}, domain.ErrMalformedUpdate
		}
		return domain.NewCallbackQuery(updateID, chatID, query.ID, query.Data), nil

	default:
		return domain.Update{}, domain.ErrMalformedUpdate
	}
}
