package pdf

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBrowserUnavailable = errors.New("headless browser unavailable")
	// ErrLoadTimeout means the page never showed its loaded marker.
	ErrLoadTimeout = errors.New("page load timed out")
)

// PrintParams are the print-to-PDF settings. Paper sizes are in inches.
type PrintParams struct {
	Landscape       bool
	PrintBackground bool
	Scale           float64
	PaperWidth      float64
	PaperHeight     float64
}

// Engine loads a page in a fresh browser instance.
type Engine interface {
	// Load opens url and waits up to timeout for an element with markerID.
	// On failure the browser is already shut down.
	Load(ctx context.Context, url, markerID string, timeout time.Duration) (Session, error)
}

// Session is a loaded page. Close terminates the browser.
type Session interface {
	ContentBox(ctx context.Context) (Box, error)
	PrintToPDF(ctx context.Context, params PrintParams) ([]byte, error)
	Close() error
}
