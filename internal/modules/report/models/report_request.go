package models

import (
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
)

// ReportRequest is the JSON body of the report endpoints
type ReportRequest struct {
	// Title may carry a subtitle after "<split>"
	Title       string          `json:"title" example:"Kursliste<split>Sommer 2024"`
	Grid        grid.MemoryGrid `json:"grid"`
	Options     export.Options  `json:"options"`
	PaperFormat string          `json:"paper_format,omitempty" example:"a4"`
	Landscape   *bool           `json:"landscape,omitempty"`
	Scale       *float64        `json:"scale,omitempty"`

	// Weekplan only: one ISO date per column
	Weekdays []string `json:"weekdays,omitempty" example:"2024-12-23"`
	Year     int      `json:"year,omitempty" example:"2024"`
}

// HistoryQuery bounds the export history listing
type HistoryQuery struct {
	Limit int `query:"limit"`
}
