package postgres

import (
	"context"
	"fmt"

	"album-uploader/internal/domain"
	"album-uploader/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Compile-time check to ensure UploadHistoryRepository implements UploadHistory interface
var _ output.UploadHistory = (*UploadHistoryRepository)(nil)

// sortableColumns lists the columns accepted as OrderBy
var sortableColumns = map[string]bool{
	"created_at": true,
	"title":      true,
	"album_id":   true,
}

// UploadHistoryRepository struct - Secondary/Driven adapter for PostgreSQL
type UploadHistoryRepository struct {
	dbGorm *gorm.DB
}

// NewUploadHistoryRepository func - Creates new PostgreSQL repository and migrates the schema
func NewUploadHistoryRepository(dbGorm *gorm.DB) (*UploadHistoryRepository, error) {
	if err := domain.MigrateDatabase(dbGorm); err != nil {
		return nil, fmt.Errorf("failed to migrate upload history: %w", err)
	}
	return &UploadHistoryRepository{
		dbGorm: dbGorm,
	}, nil
}

// RecordUpload func - Inserts a completed upload
func (p *UploadHistoryRepository) RecordUpload(ctx context.Context, request domain.UploadEntryRequest) (*domain.UploadResponse, error) {
	upload := domain.Upload{
		ChatID:         request.ChatID,
		AlbumID:        request.AlbumID,
		Title:          request.Title,
		Resolution:     request.Resolution,
		RemoteRecordID: request.RemoteRecordID,
	}
	if err := p.dbGorm.WithContext(ctx).Create(&upload).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	response := upload.ToResponse()
	return &response, nil
}

func (p *UploadHistoryRepository) condition(condition domain.QueryUploadRequest) map[string]interface{} {
	expression := make(map[string]interface{})
	if condition.ChatID != nil {
		expression["chat_id"] = *condition.ChatID
	}
	if condition.AlbumID != nil {
		expression["album_id"] = *condition.AlbumID
	}
	return expression
}

// page - Applies ordering and pagination to a filtered query
func (p *UploadHistoryRepository) page(tx *gorm.DB, condition domain.QueryUploadRequest) *gorm.DB {
	order := "created_at"
	asc := false
	if condition.SortMethod != nil {
		if sortableColumns[condition.SortMethod.OrderBy] {
			order = condition.SortMethod.OrderBy
		}
		asc = condition.SortMethod.Asc
	}
	if asc {
		tx = tx.Order(order + " ASC")
	} else {
		tx = tx.Order(order + " DESC")
	}
	if condition.Pagination != nil {
		tx = tx.Limit(condition.Pagination.Limit).Offset(condition.Pagination.Offset)
	}
	return tx
}

// ListUploads func - Retrieves uploads with filtering and pagination
func (p *UploadHistoryRepository) ListUploads(condition domain.QueryUploadRequest) (*domain.UploadListResponse, error) {
	var (
		upload  domain.Upload
		uploads []domain.Upload
	)
	cond := p.condition(condition)

	var totalItem int64
	if err := p.dbGorm.Model(&upload).Where(cond).Count(&totalItem).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	tx := p.page(p.dbGorm.Where(cond), condition).Find(&uploads)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return nil, tx.Error
	}

	result := domain.UploadListResponse{
		Uploads:     make([]domain.UploadResponse, 0, len(uploads)),
		CurrentPage: condition.Page,
		TotalItem:   &totalItem,
	}
	if condition.Pagination != nil {
		result.PerPage = &condition.Pagination.Limit
	}
	for i := range uploads {
		result.Uploads = append(result.Uploads, uploads[i].ToResponse())
	}
	return &result, nil
}
