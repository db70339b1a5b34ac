package handler

import (
	"time"

	"barber-pos-api/internal/model"
	"barber-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

const serviceName = "barber-pos-api"

type UtilityHandler struct {
	service service.DataService
}

func NewUtilityHandler(s service.DataService) *UtilityHandler {
	return &UtilityHandler{service: s}
}

// Export returns every domain record as one JSON document
// GET /api/utility/export
func (h *UtilityHandler) Export(c *fiber.Ctx) error {
	snap, err := h.service.Export(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pos-export-`+snap.ExportedAt.Format("20060102-150405")+`.json"`)
	return c.JSON(snap)
}

// Import replaces all domain data with the uploaded document
// POST /api/utility/import
func (h *UtilityHandler) Import(c *fiber.Ctx) error {
	var snap model.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return badRequest(c, "Invalid JSON")
	}
	if err := h.service.Import(c.UserContext(), &snap, getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Data imported successfully"})
}

// Clear deletes all domain data. Users are kept.
// POST /api/utility/clear
func (h *UtilityHandler) Clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext(), getActor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All data cleared successfully"})
}

// Backup saves an export to the configured backup store
// POST /api/utility/backup
func (h *UtilityHandler) Backup(c *fiber.Ctx) error {
	result, err := h.service.Backup(c.UserContext(), getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Backup saved", "data": result})
}

// Health is the liveness probe
// GET /health
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().UTC(),
		"service":   serviceName,
	})
}
