package handlers

import (
	"net/url"
	"strings"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/colors"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/models"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/repositories"
	"github.com/gofiber/fiber/v2"
)

type InstructorHandler struct {
	instructorRepo repositories.InstructorRepo
}

func NewInstructorHandler(instructorRepo repositories.InstructorRepo) *InstructorHandler {
	return &InstructorHandler{instructorRepo: instructorRepo}
}

// ListInstructors godoc
// @Summary List instructor colors
// @Tags Instructors
// @Produce json
// @Success 200 {array} models.Instructor
// @Failure 500 {object} map[string]interface{}
// @Router /instructors [get]
func (h *InstructorHandler) ListInstructors(c *fiber.Ctx) error {
	instructors, err := h.instructorRepo.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch instructors",
		})
	}
	return c.JSON(instructors)
}

// UpsertInstructor godoc
// @Summary Set the color of an instructor
// @Description An empty color renders the instructor's cells in the fallback color
// @Tags Instructors
// @Accept json
// @Produce json
// @Param name path string true "Family name"
// @Param instructor body models.UpsertInstructorRequest true "Color"
// @Success 200 {object} models.Instructor
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /instructors/{name} [put]
func (h *InstructorHandler) UpsertInstructor(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || strings.TrimSpace(name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid instructor name",
		})
	}

	var req models.UpsertInstructorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := colors.ValidateColor(req.Color); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "color must be a hex value like #FF8800",
		})
	}

	instructor := &models.Instructor{FamilyName: strings.TrimSpace(name), Color: req.Color}
	if err := h.instructorRepo.Upsert(c.UserContext(), instructor); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save instructor",
		})
	}

	return c.JSON(instructor)
}
