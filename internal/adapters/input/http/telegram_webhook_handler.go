package http

import (
	"errors"

	"album-uploader/internal/domain"
	"album-uploader/internal/ports/input"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// TelegramWebhookHandler struct - Primary/Driving adapter for the Telegram webhook
type TelegramWebhookHandler struct {
	service input.WebhookService
}

// NewTelegramWebhookHandler func - Creates new Telegram webhook handler
func NewTelegramWebhookHandler(service input.WebhookService) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{
		service: service,
	}
}

// HandleWebhook func - Accepts one update and acknowledges it before processing
// @Summary Telegram Webhook
// @Description Receives one Bot API update. 200 once accepted (or ignored as a duplicate), 400 when the body has neither message nor callback_query
// @Tags TELEGRAM
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /webhook/telegram [post]
func (h *TelegramWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	var update tgbotapi.Update
	if err := c.BodyParser(&update); err != nil {
		logrus.WithError(err).Error("Failed to parse webhook body")
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	domainUpdate, err := ToDomainUpdate(update)
	if err != nil {
		logrus.WithError(err).WithField("update_id", update.UpdateID).Warn("Rejected update")
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}

	err = h.service.HandleUpdate(domainUpdate)
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
	case errors.Is(err, domain.ErrDuplicateUpdate):
		return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Duplicate})
	default:
		logrus.WithError(err).WithField("update_id", domainUpdate.ID).Error("Failed to accept update")
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
}
