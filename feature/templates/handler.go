package templates

import (
	"errors"

	"site-settings/core/jsonfile"
	"site-settings/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for templates.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the template routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/template")
	group.Get("/", h.HandleGetTemplate)
	group.Put("/", h.HandleSaveTemplate)
}

// HandleGetTemplate returns the resolved template.
// @Summary Get Template
// @Description Resolve the template through the personal, shared and built-in tiers.
// @Tags template
// @Produce json
// @Success 200 {object} map[string]interface{} "Template content"
// @Router /template [get]
func (h *Handler) HandleGetTemplate(c *fiber.Ctx) error {
	content, source := h.service.ResolveWithSource()
	c.Set("X-Template-Source", string(source))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(content)
}

// HandleSaveTemplate replaces the personal template.
// @Summary Save Template
// @Description Validate the body as JSON and store it as the personal template.
// @Tags template
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Saved"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /template [put]
func (h *Handler) HandleSaveTemplate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Save(c.Body()); err != nil {
		l.Error("Template save failed", zap.Error(err))
		status := fiber.StatusInternalServerError
		if errors.Is(err, jsonfile.ErrInvalidJSON) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status": "saved",
		"path":   h.service.PersonalPath(),
	})
}
