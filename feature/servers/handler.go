package servers

import (
	"encoding/json"
	"errors"

	"site-settings/core/jsonfile"
	"site-settings/core/logger"
	"site-settings/core/snapshot"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for servers.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Name        string `json:"name"`
	UseTemplate bool   `json:"useTemplate"`
}

type copyRequest struct {
	Target string `json:"target"`
}

type jsonRequest struct {
	Path    string          `json:"path"`
	Content json.RawMessage `json:"content"`
}

// RegisterRoutes registers the server routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/servers")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleCreate)
	group.Get("/:name/snapshots", h.HandleSnapshots)
	group.Get("/:name/latest", h.HandleLatest)
	group.Put("/:name/config", h.HandleSave)
	group.Post("/:name/copy", h.HandleCopy)
	group.Get("/:name/changelog", h.HandleChangelog)
	group.Get("/:name/missing", h.HandleMissing)
	group.Delete("/:name", h.HandleDelete)

	files := app.Group("/json")
	files.Post("/read", h.HandleReadJSON)
	files.Post("/write", h.HandleWriteJSON)
}

// HandleList lists the servers.
// @Summary List Servers
// @Description List the server folders under the servers root.
// @Tags servers
// @Produce json
// @Success 200 {object} map[string]interface{} "Server names"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /servers [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	names, err := h.service.List()
	if err != nil {
		return h.fail(c, "List servers failed", err)
	}
	return c.JSON(fiber.Map{"root": h.service.Root(), "servers": names})
}

// HandleCreate creates a server.
// @Summary Create Server
// @Description Create a server folder seeded with the template or the minimal configuration.
// @Tags servers
// @Accept json
// @Produce json
// @Success 201 {object} map[string]string "Created"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Server exists"
// @Router /servers [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	path, err := h.service.Create(c.UserContext(), req.Name, req.UseTemplate)
	if err != nil {
		return h.fail(c, "Create server failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "created", "path": path})
}

// HandleSnapshots lists the snapshots of a server.
// @Summary List Snapshots
// @Description List snapshot files of a server, newest first.
// @Tags servers
// @Produce json
// @Param name path string true "Server name"
// @Success 200 {object} map[string]interface{} "Snapshot names"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{name}/snapshots [get]
func (h *Handler) HandleSnapshots(c *fiber.Ctx) error {
	names, err := h.service.Snapshots(c.Params("name"))
	if err != nil {
		return h.fail(c, "List snapshots failed", err)
	}
	return c.JSON(fiber.Map{"snapshots": names})
}

// HandleLatest returns the newest snapshot content.
// @Summary Latest Snapshot
// @Description Return the newest snapshot of a server. File and date are sent as headers.
// @Tags servers
// @Produce json
// @Param name path string true "Server name"
// @Success 200 {object} map[string]interface{} "Snapshot content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{name}/latest [get]
func (h *Handler) HandleLatest(c *fiber.Ctx) error {
	latest, err := h.service.Latest(c.Params("name"))
	if err != nil {
		return h.fail(c, "Load latest snapshot failed", err)
	}
	c.Set("X-Snapshot-File", latest.File)
	c.Set("X-Snapshot-Date", latest.Date)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(latest.Content)
}

// HandleSave stores the body as a new snapshot.
// @Summary Save Config
// @Description Validate the body and write it as a new snapshot.
// @Tags servers
// @Accept json
// @Produce json
// @Param name path string true "Server name"
// @Success 201 {object} map[string]string "Saved"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{name}/config [put]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	path, err := h.service.Save(c.UserContext(), c.Params("name"), c.Body())
	if err != nil {
		return h.fail(c, "Save config failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "saved", "path": path})
}

// HandleCopy copies a server to a new name.
// @Summary Copy Server
// @Description Clone all snapshots of a server, renaming every occurrence of its name.
// @Tags servers
// @Accept json
// @Produce json
// @Param name path string true "Source server name"
// @Success 201 {object} map[string]interface{} "Copied"
// @Failure 404 {object} map[string]string "Source missing"
// @Failure 409 {object} map[string]string "Target exists"
// @Router /servers/{name}/copy [post]
func (h *Handler) HandleCopy(c *fiber.Ctx) error {
	var req copyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	count, err := h.service.Copy(c.UserContext(), c.Params("name"), req.Target)
	if err != nil {
		return h.fail(c, "Copy server failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "copied", "files": count})
}

// HandleChangelog returns the change log of a server.
// @Summary Change Log
// @Description Return the plain-text change log of a server.
// @Tags servers
// @Produce plain
// @Param name path string true "Server name"
// @Success 200 {string} string "Change log"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{name}/changelog [get]
func (h *Handler) HandleChangelog(c *fiber.Ctx) error {
	text, err := h.service.Changelog(c.Params("name"))
	if err != nil {
		return h.fail(c, "Read change log failed", err)
	}
	return c.SendString(text)
}

// HandleMissing lists template keys absent from the latest snapshot.
// @Summary Missing Template Items
// @Description Compare the latest snapshot against the resolved template.
// @Tags servers
// @Produce json
// @Param name path string true "Server name"
// @Success 200 {object} map[string]interface{} "Missing items"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{name}/missing [get]
func (h *Handler) HandleMissing(c *fiber.Ctx) error {
	items, err := h.service.MissingTemplateItems(c.Params("name"))
	if err != nil {
		return h.fail(c, "Missing template items failed", err)
	}
	return c.JSON(fiber.Map{"missing": items, "count": len(items)})
}

// HandleDelete soft-deletes a server.
// @Summary Delete Server
// @Description Rename the server folder with a deleted marker and timestamp.
// @Tags servers
// @Produce json
// @Param name path string true "Server name"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /servers/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	backup, err := h.service.Delete(c.UserContext(), c.Params("name"))
	if err != nil {
		return h.fail(c, "Delete server failed", err)
	}
	return c.JSON(fiber.Map{"status": "deleted", "backup": backup})
}

// HandleReadJSON reads a JSON file inside the managed roots.
// @Summary Read JSON
// @Description Read and validate a JSON file.
// @Tags json
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "File content"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 403 {object} map[string]string "Outside roots"
// @Router /json/read [post]
func (h *Handler) HandleReadJSON(c *fiber.Ctx) error {
	var req jsonRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	content, err := h.service.ReadJSON(req.Path)
	if err != nil {
		return h.fail(c, "Read JSON failed", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(content)
}

// HandleWriteJSON validates and writes a JSON file inside the managed roots.
// @Summary Write JSON
// @Description Validate content and write it pretty-printed. Content may be a JSON value or a string holding JSON text.
// @Tags json
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Written"
// @Failure 400 {object} map[string]string "Invalid JSON"
// @Failure 403 {object} map[string]string "Outside roots"
// @Router /json/write [post]
func (h *Handler) HandleWriteJSON(c *fiber.Ctx) error {
	var req jsonRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	content := []byte(req.Content)
	var text string
	if err := json.Unmarshal(req.Content, &text); err == nil {
		content = []byte(text)
	}

	if err := h.service.WriteJSON(req.Path, content); err != nil {
		return h.fail(c, "Write JSON failed", err)
	}
	return c.JSON(fiber.Map{"status": "written", "path": req.Path})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps a service error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, jsonfile.ErrInvalidJSON):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrOutsideRoot):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSourceMissing), errors.Is(err, snapshot.ErrNoSnapshots):
		return fiber.StatusNotFound
	case errors.Is(err, ErrTargetExists):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
