package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/colors"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/holiday"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/pdf"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/prompt"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/models"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/repositories"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const (
	tmpHTMLName = "tmp_report.html"
	tmpPDFName  = "tmp_report.pdf"
	tmpXLSXName = "tmp_report.xlsx"

	DefaultHistoryLimit = 50
)

var ErrHistoryUnavailable = errors.New("export history requires a GORM database")

// Dependencies wires a ReportService. Records, Uploads, Calendar and Opener
// are optional.
type Dependencies struct {
	TemplateDir string
	TmpDir      string

	Annotator *colors.Annotator
	Calendar  holiday.Calendar
	Engine    pdf.Engine
	Opener    export.Opener
	Uploads   *upload.Service
	Records   repositories.ExportRepo

	TrimMode       export.TrimMode
	PDFLoadTimeout time.Duration
	// NativeFallback renders PDFs with gofpdf when no browser is available
	NativeFallback bool
}

// ReportService runs the export pipeline: prompt, extract, annotate, render,
// convert and persist. Only one export runs at a time because every export
// shares the same temporary files.
type ReportService struct {
	mu sync.Mutex

	tmpDir    string
	html      *export.HTMLExporter
	exports   *export.Service
	converter *pdf.Converter
	annotator *colors.Annotator
	calendar  holiday.Calendar
	opener    export.Opener
	uploads   *upload.Service
	records   repositories.ExportRepo

	trimMode       export.TrimMode
	nativeFallback bool
	now            func() time.Time
}

func NewReportService(deps Dependencies) *ReportService {
	opener := deps.Opener
	if opener == nil {
		opener = export.NoopOpener{}
	}
	annotator := deps.Annotator
	if annotator == nil {
		annotator = colors.NewAnnotator(colors.StaticLookup{}, colors.EmptyWhite)
	}

	return &ReportService{
		tmpDir:         deps.TmpDir,
		html:           export.NewHTMLExporter(deps.TemplateDir),
		exports:        export.NewService(deps.TemplateDir),
		converter:      pdf.NewConverter(deps.Engine, opener, filepath.Join(deps.TmpDir, tmpPDFName), deps.PDFLoadTimeout),
		annotator:      annotator,
		calendar:       deps.Calendar,
		opener:         opener,
		uploads:        deps.Uploads,
		records:        deps.Records,
		trimMode:       deps.TrimMode,
		nativeFallback: deps.NativeFallback,
		now:            time.Now,
	}
}

// Locker guards the temporary files; the tmp sweeper takes it too.
func (s *ReportService) Locker() sync.Locker {
	return &s.mu
}

// Export asks p for the outputs and produces them from g. A cancelled prompt
// returns a result with Cancelled set and writes nothing.
func (s *ReportService) Export(ctx context.Context, req *export.ExportRequest, g grid.Grid, p prompt.Prompter) (*export.ExportResult, error) {
	opts, ok, err := p.Prompt(ctx)
	if err != nil {
		return nil, export.Wrap(export.StagePrompt, err)
	}
	if !ok {
		log.Info().Str("report", req.Name).Msg("🚫 Export cancelled")
		result := &export.ExportResult{Cancelled: true}
		s.record(ctx, req, opts, result, nil)
		return result, nil
	}

	if opts.PDF {
		// reject before anything is written
		if _, err := pdf.LookupPaper(req.PaperFormat); err != nil {
			err = export.Wrap(export.StageValidate, err)
			s.record(ctx, req, opts, nil, err)
			return nil, err
		}
	}

	s.mu.Lock()
	result, err := s.run(ctx, req, g, opts)
	s.mu.Unlock()

	s.record(ctx, req, opts, result, err)
	if err != nil {
		log.Error().Err(err).Str("report", req.Name).Msg("❌ Export failed")
		return nil, err
	}

	log.Info().
		Str("report", req.Name).
		Str("html", result.HTMLPath).
		Str("pdf", result.PDFPath).
		Str("xlsx", result.XLSXPath).
		Msg("✅ Export finished")
	return result, nil
}

func (s *ReportService) run(ctx context.Context, req *export.ExportRequest, g grid.Grid, opts export.Options) (*export.ExportResult, error) {
	data, err := s.buildData(ctx, req, g)
	if err != nil {
		return nil, err
	}

	markup, err := s.html.Render(req.Template, data)
	if err != nil {
		return nil, export.Wrap(export.StageRender, err)
	}

	result := &export.ExportResult{}
	now := s.now()

	tmpHTML, err := export.SaveToFile(filepath.Join(s.tmpDir, tmpHTMLName), []byte(markup), false)
	if err != nil {
		return nil, export.Wrap(export.StagePersist, err)
	}
	if opts.HTML {
		result.HTMLPath = tmpHTML
		if err := s.opener.Open(tmpHTML); err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to open HTML")
		}
		if opts.Save {
			out, err := req.HTMLOutputPath(now)
			if err != nil {
				return nil, export.Wrap(export.StagePersist, err)
			}
			if result.HTMLPath, err = export.SaveToFile(out, []byte(markup), true); err != nil {
				return nil, export.Wrap(export.StagePersist, err)
			}
			log.Info().Str("path", result.HTMLPath).Msg("✅ Saved HTML file")
		}
	}

	if opts.PDF {
		if result.PDFPath, err = s.exportPDF(ctx, req, data, tmpHTML, opts, now); err != nil {
			return nil, err
		}
	}

	if opts.XLSX {
		if result.XLSXPath, err = s.exportXLSX(req, data, opts, now); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// buildData extracts the snapshot and its color matrix.
func (s *ReportService) buildData(ctx context.Context, req *export.ExportRequest, g grid.Grid) (*export.ExportData, error) {
	var snap grid.Snapshot
	switch req.Kind {
	case export.KindWeekplan:
		snap = grid.ExtractWeekplan(g)
	default:
		snap = grid.ExtractTable(g)
	}

	cellColors, err := s.annotator.Annotate(ctx, g, snap.SourceRows)
	if err != nil {
		return nil, export.Wrap(export.StageAnnotate, err)
	}

	rows, cellColors := export.TrimTrailingEmptyRows(snap.Rows, cellColors, s.trimMode)

	if req.Kind == export.KindWeekplan && s.calendar != nil {
		cellColors = holiday.Mark(cellColors, req.Weekdays, req.Year, s.calendar)
	}

	style := export.DefaultStyle()
	if req.Landscape != nil && *req.Landscape {
		style.Orientation = "landscape"
	}
	style.PageSize = req.PaperFormat

	return &export.ExportData{
		Kind:       req.Kind,
		Title:      req.Title,
		ExtraTitle: req.ExtraTitle,
		CreatedAt:  s.now(),
		Headers:    snap.Headers,
		Rows:       rows,
		Colors:     cellColors,
		Style:      style,
	}, nil
}

func (s *ReportService) exportPDF(ctx context.Context, req *export.ExportRequest, data *export.ExportData, tmpHTML string, opts export.Options, now time.Time) (string, error) {
	var saveTo string
	if opts.Save {
		out, err := req.PDFOutputPath(now)
		if err != nil {
			return "", export.Wrap(export.StagePersist, err)
		}
		saveTo = out
	}

	converted, err := s.converter.Convert(ctx, pdf.ConvertRequest{
		HTMLPath:        tmpHTML,
		PaperFormat:     req.PaperFormat,
		Landscape:       req.Landscape,
		Scale:           req.Scale,
		PrintBackground: req.PrintBackground,
		Open:            true,
		SaveTo:          saveTo,
	})
	if errors.Is(err, pdf.ErrBrowserUnavailable) && s.nativeFallback {
		log.Warn().Err(err).Msg("⚠️ Browser unavailable, falling back to native PDF renderer")
		return s.nativePDF(data, saveTo)
	}
	if err != nil {
		return "", export.Wrap(export.StageConvert, err)
	}
	if converted == nil {
		return "", nil
	}
	if converted.OutputPath != "" {
		return converted.OutputPath, nil
	}
	return converted.TmpPath, nil
}

func (s *ReportService) nativePDF(data *export.ExportData, saveTo string) (string, error) {
	content, _, err := s.exports.Export(data, export.FormatPDF)
	if err != nil {
		return "", export.Wrap(export.StageConvert, err)
	}

	path, err := export.SaveToFile(filepath.Join(s.tmpDir, tmpPDFName), content, false)
	if err != nil {
		return "", export.Wrap(export.StagePersist, err)
	}
	if err := s.opener.Open(path); err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to open PDF")
	}
	if saveTo != "" {
		if path, err = export.SaveToFile(saveTo, content, true); err != nil {
			return "", export.Wrap(export.StagePersist, err)
		}
	}
	return path, nil
}

func (s *ReportService) exportXLSX(req *export.ExportRequest, data *export.ExportData, opts export.Options, now time.Time) (string, error) {
	content, _, err := s.exports.Export(data, export.FormatExcel)
	if err != nil {
		return "", export.Wrap(export.StageRender, err)
	}

	path := filepath.Join(s.tmpDir, tmpXLSXName)
	overrideCheck := false
	if opts.Save {
		if path, err = req.XLSXOutputPath(now); err != nil {
			return "", export.Wrap(export.StagePersist, err)
		}
		overrideCheck = true
	}

	saved, err := export.SaveToFile(path, content, overrideCheck)
	if err != nil {
		return "", export.Wrap(export.StagePersist, err)
	}
	log.Info().Str("path", saved).Msg("✅ Saved XLSX file")
	return saved, nil
}

// archive mirrors saved outputs to the upload provider. Failures only log.
func (s *ReportService) archive(ctx context.Context, result *export.ExportResult) []string {
	if !s.uploads.Enabled() || result == nil {
		return nil
	}

	var urls []string
	for _, path := range []string{result.HTMLPath, result.PDFPath, result.XLSXPath} {
		if path == "" {
			continue
		}
		uploaded, err := s.uploads.MirrorFile(ctx, path, nil)
		if err != nil {
			log.Warn().Err(export.Wrap(export.StageUpload, err)).Str("path", path).Msg("⚠️ Failed to archive report")
			continue
		}
		urls = append(urls, uploaded.URL)
	}
	return urls
}

func (s *ReportService) record(ctx context.Context, req *export.ExportRequest, opts export.Options, result *export.ExportResult, exportErr error) {
	var urls []string
	if exportErr == nil && !result.Cancelled && opts.Save {
		urls = s.archive(ctx, result)
	}

	if s.records == nil {
		return
	}

	rec := &models.ExportRecord{
		Kind:   string(req.Kind),
		Title:  req.Name,
		Status: models.ExportStatusDone,
	}
	if optsJSON, err := json.Marshal(opts); err == nil {
		rec.Options = datatypes.JSON(optsJSON)
	}
	if len(urls) > 0 {
		if urlsJSON, err := json.Marshal(urls); err == nil {
			rec.ArchiveURLs = datatypes.JSON(urlsJSON)
		}
	}

	switch {
	case exportErr != nil:
		rec.Status = models.ExportStatusFailed
		rec.Error = exportErr.Error()
	case result.Cancelled:
		rec.Status = models.ExportStatusCancelled
	default:
		rec.HTMLPath = result.HTMLPath
		rec.PDFPath = result.PDFPath
		rec.XLSXPath = result.XLSXPath
	}

	if err := s.records.Create(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("⚠️ Failed to record export")
	}
}

// History lists the most recent exports.
func (s *ReportService) History(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if s.records == nil {
		return nil, ErrHistoryUnavailable
	}
	if limit <= 0 || limit > 500 {
		limit = DefaultHistoryLimit
	}
	records, err := s.records.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return records, nil
}
