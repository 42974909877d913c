package http

import (
	"album-uploader/internal/domain"
	"album-uploader/internal/ports/input"
	"album-uploader/pkg/validator"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	srv       input.UploadHistoryService
	db        *gorm.DB
	validator validator.Validator
}

// New func - Creates new HTTP handler. db may be nil when history is kept in memory.
func New(srv input.UploadHistoryService, db *gorm.DB) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		db:        db,
		validator: validator.New(),
	}
}

// HealthCheck func
// HealthCheck godoc
// @Summary Health check
// @Description Reports 200 when the service and its database are reachable
// @Tags HEALTH
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if hdl.db == nil {
		return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
	}

	sqlDB, err := hdl.db.DB()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	err = sqlDB.PingContext(c.UserContext())
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// ListUploads func
// ListUploads godoc
// @Summary List uploads
// @Description List completed uploads, newest first unless asc is set
// @Tags UPLOAD
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Router /v1/api/uploads [get]
// @param chat_id query string false "chat id"
// @param album_id query string false "album id"
// @param page query int false "page"
// @param limit query int false "limit"
// @param asc query bool false "asc"
func (hdl *HTTPHandler) ListUploads(c *fiber.Ctx) error {
	condition := QueryUploadRequest{}
	if err := c.QueryParser(&condition); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	if err := hdl.validator.ValidateStruct(condition); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	// Convert HTTP query request to domain query request
	domainCondition := domain.QueryUploadRequest{
		ChatID:  condition.ChatID,
		AlbumID: condition.AlbumID,
		Limit:   condition.Limit,
		Page:    condition.Page,
		Asc:     condition.Asc,
	}
	result, err := hdl.srv.ListUploads(domainCondition)
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	// Convert domain response to HTTP response
	data := make([]UploadResponse, 0, len(result.Uploads))
	for _, upload := range result.Uploads {
		data = append(data, UploadResponse{
			ID:             upload.ID,
			ChatID:         upload.ChatID,
			AlbumID:        upload.AlbumID,
			Title:          upload.Title,
			Resolution:     upload.Resolution,
			RemoteRecordID: upload.RemoteRecordID,
			CreatedAt:      upload.CreatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:      Success,
		Data:        data,
		CurrentPage: result.CurrentPage,
		PerPage:     result.PerPage,
		TotalItem:   result.TotalItem,
	})
}
