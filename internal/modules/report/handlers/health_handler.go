package handlers

import (
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/upload"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	databaseDriver string
	uploadService  *upload.Service
}

func NewHealthHandler(databaseDriver string, uploadService *upload.Service) *HealthHandler {
	return &HealthHandler{databaseDriver: databaseDriver, uploadService: uploadService}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	archive := h.uploadService.GetProviderName()
	if archive == "" {
		archive = "disabled"
	}
	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "report-api",
		"database": h.databaseDriver,
		"archive":  archive,
	})
}
