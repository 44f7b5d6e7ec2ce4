package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/pdf"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/prompt"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/models"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
	outputDir     string
	paperFormat   string
}

func NewReportHandler(reportService *services.ReportService, outputDir, paperFormat string) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		outputDir:     outputDir,
		paperFormat:   paperFormat,
	}
}

// ExportTable godoc
// @Summary Export a table report
// @Description Render a grid as a table report and produce the selected HTML, PDF and XLSX outputs
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body models.ReportRequest true "Report data"
// @Success 200 {object} export.ExportResult
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reports/table [post]
func (h *ReportHandler) ExportTable(c *fiber.Ctx) error {
	return h.export(c, export.KindTable)
}

// ExportWeekplan godoc
// @Summary Export a weekplan report
// @Description Render a grid as a landscape weekplan; columns on public holidays are greyed out
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body models.ReportRequest true "Report data with weekdays and year"
// @Success 200 {object} export.ExportResult
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reports/weekplan [post]
func (h *ReportHandler) ExportWeekplan(c *fiber.Ctx) error {
	return h.export(c, export.KindWeekplan)
}

func (h *ReportHandler) export(c *fiber.Ctx, kind export.Kind) error {
	var body models.ReportRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := body.Options.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if len(body.Grid.HeaderLabels) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "grid.headers is required",
		})
	}

	req, err := h.buildRequest(kind, &body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	result, err := h.reportService.Export(c.UserContext(), req, &body.Grid, prompt.Static{Options: body.Options})
	if err != nil {
		return c.Status(exportStatus(err)).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

func (h *ReportHandler) buildRequest(kind export.Kind, body *models.ReportRequest) (*export.ExportRequest, error) {
	opts := []export.RequestOption{
		export.WithOutputDirs(h.outputDir, h.outputDir),
		export.WithPaperFormat(h.paperFormat),
		export.WithPaperFormat(body.PaperFormat),
	}
	if body.Landscape != nil {
		opts = append(opts, export.WithLandscape(*body.Landscape))
	}
	if body.Scale != nil {
		opts = append(opts, export.WithScale(*body.Scale))
	}

	if kind == export.KindWeekplan {
		days := make([]time.Time, 0, len(body.Weekdays))
		for _, raw := range body.Weekdays {
			day, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("invalid weekday %q, expected YYYY-MM-DD", raw)
			}
			days = append(days, day)
		}
		opts = append(opts, export.WithWeekdays(days, body.Year))
	}

	return export.NewExportRequest(kind, body.Title, opts...)
}

func exportStatus(err error) int {
	switch {
	case errors.Is(err, export.ErrShapeMismatch):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, pdf.ErrUnknownPaperFormat), errors.Is(err, export.ErrNoFormatSelected):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// GetHistory godoc
// @Summary List recent exports
// @Description Audit trail of export attempts, newest first
// @Tags Reports
// @Produce json
// @Param limit query int false "Maximum number of records (default 50)"
// @Success 200 {array} models.ExportRecord
// @Failure 400 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /reports/history [get]
func (h *ReportHandler) GetHistory(c *fiber.Ctx) error {
	query := models.HistoryQuery{Limit: services.DefaultHistoryLimit}
	if err := c.QueryParser(&query); err != nil || query.Limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "limit must be a non-negative number",
		})
	}

	records, err := h.reportService.History(c.UserContext(), query.Limit)
	if errors.Is(err, services.ErrHistoryUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(records)
}
