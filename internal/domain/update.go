package domain

// UpdateKind represents the variant of an inbound platform update
type UpdateKind string

const (
	// UpdateKindText - Text message, usually a command
	UpdateKindText UpdateKind = "text"
	// UpdateKindPhoto - Photo message with optional caption
	UpdateKindPhoto UpdateKind = "photo"
	// UpdateKindCallback - Inline keyboard button tap
	UpdateKindCallback UpdateKind = "callback_query"
)

// Update represents one inbound webhook event (domain entity).
// Fields outside the variant selected by Kind are left empty.
type Update struct {
	ID     int64
	Kind   UpdateKind
	ChatID string

	// UpdateKindText
	Text string

	// UpdateKindPhoto
	FileRef string
	Caption *string

	// UpdateKindCallback
	QueryID string
	AlbumID string
}

// NewTextCommand creates a text update
func NewTextCommand(updateID int64, chatID, text string) Update {
	return Update{
		ID:     updateID,
		Kind:   UpdateKindText,
		ChatID: chatID,
		Text:   text,
	}
}

// NewPhotoMessage creates a photo update
func NewPhotoMessage(updateID int64, chatID, fileRef string, caption *string) Update {
	return Update{
		ID:      updateID,
		Kind:    UpdateKindPhoto,
		ChatID:  chatID,
		FileRef: fileRef,
		Caption: caption,
	}
}

// NewCallbackQuery creates a callback query update
func NewCallbackQuery(updateID int64, chatID, queryID, albumID string) Update {
	return Update{
		ID:      updateID,
		Kind:    UpdateKindCallback,
		ChatID:  chatID,
		QueryID: queryID,
		AlbumID: albumID,
	}
}
