package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// Duplicate response
	Duplicate = Status{Code: http.StatusOK, Message: []string{"Duplicate update ignored"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`

	CurrentPage *int   `json:"current_page,omitempty"`
	PerPage     *int   `json:"per_page,omitempty"`
	TotalItem   *int64 `json:"total_item,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// UploadResponse struct - HTTP response DTO for a single upload
	UploadResponse struct {
		ID             *uuid.UUID `json:"id,omitempty" mapstructure:"id"`
		ChatID         string     `json:"chat_id,omitempty" mapstructure:"chat_id"`
		AlbumID        string     `json:"album_id,omitempty" mapstructure:"album_id"`
		Title          string     `json:"title,omitempty" mapstructure:"title"`
		Resolution     string     `json:"resolution,omitempty" mapstructure:"resolution"`
		RemoteRecordID string     `json:"remote_record_id,omitempty" mapstructure:"remote_record_id"`
		CreatedAt      *time.Time `json:"created_at,omitempty" mapstructure:"created_at"`
	}
)
