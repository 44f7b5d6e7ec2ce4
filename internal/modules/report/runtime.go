// Package report wires the export pipeline from configuration. Both the
// HTTP API and the command line tool start from NewRuntime.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/colors"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/holiday"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/pdf"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/repositories"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/services"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/config"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/database"
	"github.com/rs/zerolog/log"
)

type Runtime struct {
	DB          *database.DB // nil without DATABASE_URL
	Instructors repositories.InstructorRepo
	Uploads     *upload.Service
	Reports     *services.ReportService
}

// NewRuntime connects the optional database and archive provider and builds
// the report service. opener is nil for headless surfaces.
func NewRuntime(ctx context.Context, cfg *config.Config, opener export.Opener) (*Runtime, error) {
	emptyMode, err := colors.ParseEmptyMode(cfg.EmptyColorMode)
	if err != nil {
		return nil, err
	}
	trimMode, err := export.ParseTrimMode(cfg.TrailingRowMode)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{}

	var records repositories.ExportRepo
	if cfg.DatabaseURL != "" {
		if rt.DB, err = database.NewDB(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		if rt.DB.GORM != nil {
			rt.Instructors = repositories.NewInstructorRepo(rt.DB.GORM)
			records = repositories.NewExportRepo(rt.DB.GORM)
		} else {
			rt.Instructors = repositories.NewSQLInstructorRepo(rt.DB.DB, rt.DB.Driver)
			log.Warn().Str("driver", rt.DB.Driver).Msg("⚠️ Export history disabled for this driver")
		}
	}

	lookup, err := colorLookup(cfg, rt.Instructors)
	if err != nil {
		rt.Close()
		return nil, err
	}

	provider, err := upload.NewProvider(ctx, upload.Config{
		Provider:        cfg.UploadProvider,
		ArchiveDir:      cfg.ArchiveDir,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Region:          cfg.AWSRegion,
		Bucket:          cfg.S3Bucket,
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to init upload provider: %w", err)
	}
	rt.Uploads = upload.NewService(provider)
	if rt.Uploads.Enabled() {
		log.Info().Str("provider", rt.Uploads.GetProviderName()).Msg("☁️ Report archive enabled")
	}

	rt.Reports = services.NewReportService(services.Dependencies{
		TemplateDir:    cfg.TemplateDir,
		TmpDir:         cfg.TmpDir,
		Annotator:      colors.NewAnnotator(lookup, emptyMode),
		Calendar:       holidayCalendar(cfg.HolidayCountry),
		Engine:         pdf.NewChromeEngine(cfg.ChromePath),
		Opener:         opener,
		Uploads:        rt.Uploads,
		Records:        records,
		TrimMode:       trimMode,
		PDFLoadTimeout: cfg.PDFLoadTimeout,
		NativeFallback: strings.EqualFold(cfg.PDFFallback, "native"),
	})

	return rt, nil
}

func (rt *Runtime) Close() error {
	if rt.DB == nil {
		return nil
	}
	return rt.DB.Close()
}

// colorLookup prefers the instructor table, then COLORS_FILE.
func colorLookup(cfg *config.Config, instructors repositories.InstructorRepo) (colors.Lookup, error) {
	if instructors != nil {
		return instructors, nil
	}
	if cfg.ColorsFile != "" {
		table, err := colors.LoadYAML(cfg.ColorsFile)
		if err != nil {
			return nil, err
		}
		log.Info().Int("instructors", len(table)).Str("file", cfg.ColorsFile).Msg("🎨 Loaded instructor colors")
		return table, nil
	}
	log.Warn().Msg("⚠️ No instructor colors configured, cells stay uncolored")
	return colors.StaticLookup{}, nil
}

func holidayCalendar(country string) holiday.Calendar {
	if country == "" || strings.EqualFold(country, "none") {
		return nil
	}
	c, err := holiday.ForCountry(country)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️ Holiday marking disabled")
		return nil
	}
	return c
}
