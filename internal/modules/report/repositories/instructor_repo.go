package repositories

import (
	"context"
	"database/sql"
	"sort"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/colors"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InstructorRepo stores instructor colors and serves them as a color lookup
type InstructorRepo interface {
	List(ctx context.Context) ([]models.Instructor, error)
	Upsert(ctx context.Context, instructor *models.Instructor) error
	Colors(ctx context.Context) (map[string]string, error)
}

type instructorRepo struct {
	db *gorm.DB
}

func NewInstructorRepo(db *gorm.DB) InstructorRepo {
	return &instructorRepo{db: db}
}

func (r *instructorRepo) List(ctx context.Context) ([]models.Instructor, error) {
	var instructors []models.Instructor
	err := r.db.WithContext(ctx).Order("family_name ASC").Find(&instructors).Error
	return instructors, err
}

func (r *instructorRepo) Upsert(ctx context.Context, instructor *models.Instructor) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "family_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"color", "updated_at"}),
	}).Create(instructor).Error
}

func (r *instructorRepo) Colors(ctx context.Context) (map[string]string, error) {
	instructors, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(instructors))
	for _, i := range instructors {
		out[i.FamilyName] = i.Color
	}
	return out, nil
}

// sqlInstructorRepo serves drivers without GORM support (sqlite)
type sqlInstructorRepo struct {
	store *colors.SQLStore
}

func NewSQLInstructorRepo(db *sql.DB, driver string) InstructorRepo {
	return &sqlInstructorRepo{store: colors.NewSQLStore(db, driver)}
}

func (r *sqlInstructorRepo) List(ctx context.Context) ([]models.Instructor, error) {
	table, err := r.store.Colors(ctx)
	if err != nil {
		return nil, err
	}
	instructors := make([]models.Instructor, 0, len(table))
	for name, color := range table {
		instructors = append(instructors, models.Instructor{FamilyName: name, Color: color})
	}
	sort.Slice(instructors, func(i, j int) bool {
		return instructors[i].FamilyName < instructors[j].FamilyName
	})
	return instructors, nil
}

func (r *sqlInstructorRepo) Upsert(ctx context.Context, instructor *models.Instructor) error {
	return r.store.Upsert(ctx, instructor.FamilyName, instructor.Color)
}

func (r *sqlInstructorRepo) Colors(ctx context.Context) (map[string]string, error) {
	return r.store.Colors(ctx)
}

var (
	_ colors.Lookup = (*instructorRepo)(nil)
	_ colors.Lookup = (*sqlInstructorRepo)(nil)
)
