package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ExportStatusDone      = "done"
	ExportStatusCancelled = "cancelled"
	ExportStatusFailed    = "failed"
)

// ExportRecord is the audit row written after every export attempt
type ExportRecord struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind  string    `gorm:"type:text;not null" json:"kind"`
	Title string    `gorm:"type:text" json:"title"`

	// Outputs
	HTMLPath    string         `gorm:"type:text" json:"html_path,omitempty"`
	PDFPath     string         `gorm:"type:text" json:"pdf_path,omitempty"`
	XLSXPath    string         `gorm:"type:text" json:"xlsx_path,omitempty"`
	ArchiveURLs datatypes.JSON `gorm:"type:jsonb" json:"archive_urls,omitempty" swaggertype:"array,string"`

	Options datatypes.JSON `gorm:"type:jsonb" json:"options" swaggertype:"object"`
	Status  string         `gorm:"type:text;not null" json:"status"`
	Error   string         `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (ExportRecord) TableName() string {
	return "report_exports"
}

// BeforeCreate sets UUID before creating
func (r *ExportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
