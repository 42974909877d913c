package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// UploadEntryRequest struct - Domain request DTO for recording an upload
	UploadEntryRequest struct {
		ChatID         string
		AlbumID        string
		Title          string
		Resolution     string
		RemoteRecordID string
	}

	// QueryUploadRequest struct - Domain query request DTO
	QueryUploadRequest struct {
		ChatID  *string
		AlbumID *string

		Limit      *int
		Page       *int
		Asc        *bool
		Pagination *Pagination
		SortMethod *SortMethod
	}

	// Pagination struct
	Pagination struct {
		Limit  int
		Offset int
	}

	// SortMethod struct
	SortMethod struct {
		Asc     bool
		OrderBy string
	}

	// UploadResponse struct - Domain response DTO
	UploadResponse struct {
		ID             *uuid.UUID `json:"id,omitempty"`
		ChatID         string     `json:"chat_id,omitempty"`
		AlbumID        string     `json:"album_id,omitempty"`
		Title          string     `json:"title,omitempty"`
		Resolution     string     `json:"resolution,omitempty"`
		RemoteRecordID string     `json:"remote_record_id,omitempty"`
		CreatedAt      *time.Time `json:"created_at,omitempty"`
	}

	// UploadListResponse struct - Domain list response DTO
	UploadListResponse struct {
		Uploads     []UploadResponse
		CurrentPage *int
		PerPage     *int
		TotalItem   *int64
	}
)

// ToResponse converts an upload entity to its response DTO
func (u *Upload) ToResponse() UploadResponse {
	return UploadResponse{
		ID:             u.ID,
		ChatID:         u.ChatID,
		AlbumID:        u.AlbumID,
		Title:          u.Title,
		Resolution:     u.Resolution,
		RemoteRecordID: u.RemoteRecordID,
		CreatedAt:      u.CreatedAt,
	}
}
