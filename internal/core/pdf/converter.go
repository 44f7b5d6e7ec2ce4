package pdf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
	"github.com/rs/zerolog/log"
)

const (
	// LoadedMarker is the element id templates emit once rendering finished.
	LoadedMarker = "loaded"

	DefaultLoadTimeout = 5 * time.Second
)

// ConvertRequest describes one conversion. Nil Landscape or Scale are
// measured from the rendered content.
type ConvertRequest struct {
	HTMLPath        string
	PaperFormat     string
	Landscape       *bool
	Scale           *float64
	PrintBackground bool

	// Open shows the temporary PDF to the user.
	Open bool
	// SaveTo, when set, receives a copy with collision-safe naming.
	SaveTo string
}

// Result describes a produced PDF.
type Result struct {
	TmpPath    string
	OutputPath string
	Layout     Layout
}

// Converter turns a rendered HTML file into a PDF.
type Converter struct {
	engine      Engine
	opener      export.Opener
	tmpPath     string
	loadTimeout time.Duration
}

func NewConverter(engine Engine, opener export.Opener, tmpPath string, loadTimeout time.Duration) *Converter {
	if opener == nil {
		opener = export.NoopOpener{}
	}
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}
	return &Converter{engine: engine, opener: opener, tmpPath: tmpPath, loadTimeout: loadTimeout}
}

// Convert prints the page to PDF. It returns (nil, nil) when the page never
// signals that it finished loading; no file is written in that case.
func (c *Converter) Convert(ctx context.Context, req ConvertRequest) (*Result, error) {
	paper, err := LookupPaper(req.PaperFormat)
	if err != nil {
		return nil, err
	}

	htmlPath, err := filepath.Abs(req.HTMLPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", req.HTMLPath, err)
	}

	log.Info().Str("html", htmlPath).Msg("🖨️ Converting HTML to PDF...")
	session, err := c.engine.Load(ctx, "file://"+filepath.ToSlash(htmlPath), LoadedMarker, c.loadTimeout)
	if errors.Is(err, ErrLoadTimeout) {
		log.Warn().Dur("timeout", c.loadTimeout).Msg("⚠️ Loading took too much time, aborting PDF conversion")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer session.Close()

	layout, err := ResolveLayout(req.Landscape, req.Scale, paper, func() (Box, error) {
		return session.ContentBox(ctx)
	})
	if err != nil {
		return nil, err
	}

	data, err := session.PrintToPDF(ctx, PrintParams{
		Landscape:       layout.Landscape,
		PrintBackground: req.PrintBackground,
		Scale:           layout.Scale,
		PaperWidth:      paper.Width,
		PaperHeight:     paper.Height,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Layout: layout}
	if result.TmpPath, err = export.SaveToFile(c.tmpPath, data, false); err != nil {
		return nil, err
	}

	if req.Open {
		if err := c.opener.Open(result.TmpPath); err != nil {
			log.Warn().Err(err).Msg("⚠️ Failed to open PDF")
		}
	}

	if req.SaveTo != "" {
		if result.OutputPath, err = export.SaveToFile(req.SaveTo, data, true); err != nil {
			return nil, err
		}
		log.Info().Str("path", result.OutputPath).Msg("✅ Saved PDF file")
	}

	return result, nil
}
