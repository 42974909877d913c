package application

import (
	"album-uploader/internal/domain"
	"album-uploader/internal/ports/input"
	"album-uploader/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure UploadHistoryService implements input.UploadHistoryService
var _ input.UploadHistoryService = (*UploadHistoryService)(nil)

// Default page size of the upload history listing
const defaultHistoryPageSize = 20

// UploadHistoryService struct - Application service implementing history use cases
type UploadHistoryService struct {
	repo output.UploadHistory
}

// NewUploadHistoryService func - Creates new upload history service
func NewUploadHistoryService(repo output.UploadHistory) *UploadHistoryService {
	return &UploadHistoryService{
		repo: repo,
	}
}

// ListUploads func - Use case: list completed uploads with pagination and filtering.
// Newest first unless Asc is set.
func (s *UploadHistoryService) ListUploads(condition domain.QueryUploadRequest) (*domain.UploadListResponse, error) {
	var (
		page    int
		perPage int
		offset  int
	)
	if condition.Page != nil && *condition.Page > 0 {
		page = *condition.Page
	} else {
		page = 1
	}
	condition.Page = &page
	if condition.Limit != nil && *condition.Limit > 0 {
		perPage = *condition.Limit
	} else {
		perPage = defaultHistoryPageSize
	}
	condition.Limit = &perPage
	offset = (page - 1) * perPage
	condition.Pagination = &domain.Pagination{
		Limit:  perPage,
		Offset: offset,
	}
	asc := false
	if condition.Asc != nil {
		asc = *condition.Asc
	}
	condition.SortMethod = &domain.SortMethod{
		Asc:     asc,
		OrderBy: "created_at",
	}

	result, err := s.repo.ListUploads(condition)
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return result, nil
}
