package archive

import (
	"errors"

	"site-settings/core/logger"
	"site-settings/feature/servers"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for archives.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type restoreRequest struct {
	Key string `json:"key"`
}

// RegisterRoutes registers the archive routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/archive")
	group.Post("/:name", h.HandleUpload)
	group.Get("/:name", h.HandleList)
	group.Post("/:name/restore", h.HandleRestore)
	group.Delete("/:name", h.HandlePrune)
}

// HandleUpload archives a server folder.
// @Summary Archive Server
// @Description Pack the server folder and upload it to the archive bucket.
// @Tags archive
// @Produce json
// @Param name path string true "Server name"
// @Success 201 {object} archive.Result
// @Failure 404 {object} map[string]string "Not Found"
// @Router /archive/{name} [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	res, err := h.service.Upload(c.UserContext(), c.Params("name"))
	if err != nil {
		return h.fail(c, "Archive upload failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleList lists the archives of a server.
// @Summary List Archives
// @Description List stored archives of a server, newest first.
// @Tags archive
// @Produce json
// @Param name path string true "Server name"
// @Success 200 {object} map[string]interface{} "Archives"
// @Router /archive/{name} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	objects, err := h.service.List(c.UserContext(), c.Params("name"))
	if err != nil {
		return h.fail(c, "Archive list failed", err)
	}
	return c.JSON(fiber.Map{"archives": objects})
}

// HandleRestore restores an archive into a new server folder.
// @Summary Restore Archive
// @Description Unpack an archive into the server folder. The folder must not exist.
// @Tags archive
// @Accept json
// @Produce json
// @Param name path string true "Server name"
// @Success 201 {object} map[string]interface{} "Restored"
// @Failure 409 {object} map[string]string "Server exists"
// @Router /archive/{name}/restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	var req restoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	files, err := h.service.Restore(c.UserContext(), c.Params("name"), req.Key)
	if err != nil {
		return h.fail(c, "Archive restore failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "restored", "files": files})
}

// HandlePrune removes old archives.
// @Summary Prune Archives
// @Description Keep only the newest archives of a server.
// @Tags archive
// @Produce json
// @Param name path string true "Server name"
// @Param keep query int false "Archives to keep" default(5)
// @Success 200 {object} map[string]interface{} "Pruned"
// @Router /archive/{name} [delete]
func (h *Handler) HandlePrune(c *fiber.Ctx) error {
	removed, err := h.service.Prune(c.UserContext(), c.Params("name"), c.QueryInt("keep", 5))
	if err != nil {
		return h.fail(c, "Archive prune failed", err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))

	status := servers.StatusFor(err)
	switch {
	case errors.Is(err, ErrDisabled):
		status = fiber.StatusServiceUnavailable
	case errors.Is(err, ErrInvalidKey):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
