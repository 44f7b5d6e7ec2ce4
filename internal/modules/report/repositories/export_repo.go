package repositories

import (
	"context"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/models"
	"gorm.io/gorm"
)

type ExportRepo interface {
	Create(ctx context.Context, record *models.ExportRecord) error
	List(ctx context.Context, limit int) ([]models.ExportRecord, error)
}

type exportRepo struct {
	db *gorm.DB
}

func NewExportRepo(db *gorm.DB) ExportRepo {
	return &exportRepo{db: db}
}

func (r *exportRepo) Create(ctx context.Context, record *models.ExportRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *exportRepo) List(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	var records []models.ExportRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
