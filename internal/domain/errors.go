package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedUpdate indicates the webhook body has neither a message nor a callback query
	ErrMalformedUpdate = errors.New("malformed update")

	// ErrDuplicateUpdate indicates the update id was already handled by this process
	ErrDuplicateUpdate = errors.New("duplicate update")

	// ErrConfiguration indicates required configuration is missing or invalid
	ErrConfiguration = errors.New("invalid configuration")

	// ErrQueueClosed indicates the dispatcher no longer accepts updates
	ErrQueueClosed = errors.New("update queue closed")

	// ErrQueueFull indicates the dispatcher shard for a chat is saturated
	ErrQueueFull = errors.New("update queue full")
)

// CollaboratorKind identifies the external service that failed
type CollaboratorKind string

const (
	// CollaboratorAlbumCatalog - Album listing
	CollaboratorAlbumCatalog CollaboratorKind = "album_catalog"
	// CollaboratorImageFetch - File resolution, download or measurement
	CollaboratorImageFetch CollaboratorKind = "image_fetch"
	// CollaboratorUpload - Upload backend
	CollaboratorUpload CollaboratorKind = "upload"
	// CollaboratorChatTransport - Chat platform send/answer
	CollaboratorChatTransport CollaboratorKind = "chat_transport"
)

// CollaboratorError is returned by every output adapter on network or API failure
type CollaboratorError struct {
	Kind    CollaboratorKind
	Message string
	Err     error
}

// NewCollaboratorError creates a collaborator error wrapping err
func NewCollaboratorError(kind CollaboratorKind, message string, err error) *CollaboratorError {
	return &CollaboratorError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func (e *CollaboratorError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// IsCollaboratorError reports whether err carries a CollaboratorError of the given kind
func IsCollaboratorError(err error, kind CollaboratorKind) bool {
	var collabErr *CollaboratorError
	if !errors.As(err, &collabErr) {
		return false
	}
	return collabErr.Kind == kind
}
