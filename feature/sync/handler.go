package sync

import (
	"booking-bridge/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// webhookEnvelope is the delivery format of the booking platform.
type webhookEnvelope struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

// Handler handles HTTP requests for the sync engine.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/webhook", h.HandleWebhook)
	app.Get("/sync/status", h.HandleStatus)
	app.Post("/sync/resync", h.HandleResync)
}

// HandleWebhook accepts a change event from the booking platform.
// @Summary Accept Webhook
// @Description Accept a booking platform change event and queue it for processing.
// @Tags sync
// @Accept json
// @Produce json
// @Param event body webhookEnvelope true "Change event"
// @Success 200 {object} map[string]string "Acknowledged"
// @Failure 400 {object} map[string]string "Malformed payload"
// @Router /webhook [post]
func (h *Handler) HandleWebhook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var envelope webhookEnvelope
	if err := c.BodyParser(&envelope); err != nil {
		l.Warn("Rejecting malformed webhook body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed payload",
		})
	}
	if envelope.Action == "" || envelope.Payload == nil {
		l.Warn("Rejecting webhook body without action or payload")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing action or payload",
		})
	}

	rayID, _ := c.Locals("ray_id").(string)
	accepted := h.service.Accept(rayID, envelope.Action, envelope.Payload, c.Body())

	// Acknowledge before any sync work happens; unrecognized actions are
	// acknowledged too so the platform stops redelivering them.
	message := "queued"
	if !accepted {
		message = "ignored"
	}
	return c.JSON(fiber.Map{"message": message})
}

// HandleStatus reports queue depth and unsynced record counts.
// @Summary Sync Status
// @Description Report queue depth and per-table unsynced record counts.
// @Tags sync
// @Produce json
// @Success 200 {object} StatusReport "Engine status"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Status(c.Context())
	if err != nil {
		l.Error("Status check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleResync queues a refresh for every unsynced reservation and block.
// @Summary Resync
// @Description Queue a refresh for every record whose mirror is behind.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]int "Number of queued jobs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/resync [post]
func (h *Handler) HandleResync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	queued, err := h.service.Resync(c.Context())
	if err != nil {
		l.Error("Resync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Resync queued", zap.Int("jobs", queued))
	return c.JSON(fiber.Map{"queued": queued})
}
