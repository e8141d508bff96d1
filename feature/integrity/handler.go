package integrity

import (
	"site-settings/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/snapshots", h.HandleSnapshotCheck)
	group.Get("/templates", h.HandleTemplateCheck)
	group.Get("/database", h.HandleDatabaseCheck)
}

// HandleIntegrityCheck runs all checks.
// @Summary Run All Integrity Checks
// @Description Checks snapshot histories, templates, the audit table and the archive bucket.
// @Tags integrity
// @Produce json
// @Success 200 {object} integrity.Report
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	return c.JSON(h.service.Run(c.UserContext()))
}

// HandleSnapshotCheck checks every server folder.
// @Summary Check Snapshots
// @Description Reports servers without snapshots, undated snapshot names and snapshots holding invalid JSON.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Snapshot Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/snapshots [get]
func (h *Handler) HandleSnapshotCheck(c *fiber.Ctx) error {
	issues, count, err := h.service.CheckSnapshots()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Snapshot check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "checked", "servers": count, "issues": issues})
}

// HandleTemplateCheck validates the template files.
// @Summary Check Templates
// @Description Reports template tiers that exist but hold invalid JSON.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Template Report"
// @Router /integrity/templates [get]
func (h *Handler) HandleTemplateCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "checked", "issues": h.service.CheckTemplates()})
}

// HandleDatabaseCheck validates the audit table.
// @Summary Check Audit Table
// @Description Verifies the audit table columns when a database is connected.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Database Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	if h.service.db == nil {
		return c.JSON(fiber.Map{"status": "skipped"})
	}
	issues, err := h.service.CheckDatabase()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Database check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "checked", "issues": issues})
}
