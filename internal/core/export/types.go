package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
)

// Kind is the report layout.
type Kind string

const (
	KindTable    Kind = "table"
	KindWeekplan Kind = "weekplan"
)

// ParseKind accepts "table" and "weekplan" in any case.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindTable:
		return KindTable, nil
	case KindWeekplan:
		return KindWeekplan, nil
	default:
		return "", fmt.Errorf("unknown report kind: %q", s)
	}
}

// Template returns the default template file name of the kind.
func (k Kind) Template() string {
	if k == KindWeekplan {
		return "TEMPLATE_WEEKPLAN_REPORT.html"
	}
	return "TEMPLATE_TABLE_REPORT.html"
}

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatHTML  ExportFormat = "html"
	FormatPDF   ExportFormat = "pdf"
	FormatExcel ExportFormat = "excel"
)

// Exporter is the interface for all export formats
type Exporter interface {
	Export(data *ExportData, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// ExportData is one rendered report: the snapshot plus its color matrix.
type ExportData struct {
	Kind       Kind
	Title      string
	ExtraTitle string
	CreatedAt  time.Time

	Headers []string
	Rows    [][]grid.Value
	// Colors is parallel to Rows; nil renders without cell styling.
	Colors [][]string

	Style ExportStyle
}

// ExportStyle defines styling options for the xlsx and native PDF exports
type ExportStyle struct {
	// PDF specific
	Orientation string // "portrait" or "landscape"
	PageSize    string // "A4", "Letter", etc.

	HeaderBold    bool
	HeaderBgColor string // Hex color

	FontFamily string
	FontSize   float64

	// Excel specific
	FreezeHeader bool
	AutoFilter   bool
}

// DefaultStyle returns default export styling
func DefaultStyle() ExportStyle {
	return ExportStyle{
		Orientation:   "portrait",
		PageSize:      "A4",
		HeaderBold:    true,
		HeaderBgColor: "#4472C4",
		FontFamily:    "Arial",
		FontSize:      10,
		FreezeHeader:  true,
		AutoFilter:    true,
	}
}

// TitleSeparator splits a report name into title and subtitle.
const TitleSeparator = "<split>"

// ExportRequest describes one export action. Build it with NewExportRequest
// and treat it as read-only afterwards.
type ExportRequest struct {
	Kind       Kind
	Template   string
	Name       string // raw report name, may contain TitleSeparator
	Title      string
	ExtraTitle string
	HTMLDir    string
	PDFDir     string

	PaperFormat     string
	Landscape       *bool
	Scale           *float64
	PrintBackground bool

	// weekplan only
	Weekdays []time.Time
	Year     int
}

// RequestOption customizes a request while it is built.
type RequestOption func(*ExportRequest)

func WithOutputDirs(htmlDir, pdfDir string) RequestOption {
	return func(r *ExportRequest) {
		r.HTMLDir = htmlDir
		r.PDFDir = pdfDir
	}
}

func WithTemplate(name string) RequestOption {
	return func(r *ExportRequest) {
		if name != "" {
			r.Template = name
		}
	}
}

func WithPaperFormat(format string) RequestOption {
	return func(r *ExportRequest) {
		if format != "" {
			r.PaperFormat = format
		}
	}
}

func WithLandscape(landscape bool) RequestOption {
	return func(r *ExportRequest) { r.Landscape = &landscape }
}

func WithScale(scale float64) RequestOption {
	return func(r *ExportRequest) { r.Scale = &scale }
}

func WithPrintBackground(enabled bool) RequestOption {
	return func(r *ExportRequest) { r.PrintBackground = enabled }
}

func WithWeekdays(days []time.Time, year int) RequestOption {
	return func(r *ExportRequest) {
		r.Weekdays = append([]time.Time(nil), days...)
		r.Year = year
	}
}

// NewExportRequest builds and validates a request. Weekplans always print in
// landscape and need both weekdays and year.
func NewExportRequest(kind Kind, name string, opts ...RequestOption) (*ExportRequest, error) {
	parts := strings.SplitN(name, TitleSeparator, 2)
	r := &ExportRequest{
		Kind:            kind,
		Template:        kind.Template(),
		Name:            name,
		Title:           parts[0],
		PaperFormat:     "a4",
		PrintBackground: true,
	}
	if len(parts) > 1 {
		r.ExtraTitle = parts[1]
	}

	for _, opt := range opts {
		opt(r)
	}

	switch kind {
	case KindTable:
	case KindWeekplan:
		if len(r.Weekdays) == 0 || r.Year == 0 {
			return nil, ErrMissingWeekplanParams
		}
		landscape := true
		r.Landscape = &landscape
	default:
		return nil, fmt.Errorf("unknown report kind: %q", kind)
	}

	return r, nil
}

// ExportName is the file-safe report name.
func (r *ExportRequest) ExportName() string {
	return strings.ReplaceAll(r.Name, TitleSeparator, "_")
}

// HTMLOutputPath is where a saved HTML report goes.
func (r *ExportRequest) HTMLOutputPath(now time.Time) (string, error) {
	if r.HTMLDir == "" {
		return filepath.Abs(fmt.Sprintf("%s_Export_%s.html", r.ExportName(), now.Format("2006-01-02")))
	}
	return filepath.Abs(filepath.Join(r.HTMLDir, r.ExportName()+".html"))
}

// PDFOutputPath is where a saved PDF report goes.
func (r *ExportRequest) PDFOutputPath(now time.Time) (string, error) {
	if r.PDFDir == "" {
		return filepath.Abs(fmt.Sprintf("%s_export_%s.pdf", r.ExportName(), now.Format("2006-01-02")))
	}
	return filepath.Abs(filepath.Join(r.PDFDir, r.ExportName()+".pdf"))
}

// XLSXOutputPath is where a saved spreadsheet goes; it shares the PDF directory.
func (r *ExportRequest) XLSXOutputPath(now time.Time) (string, error) {
	if r.PDFDir == "" {
		return filepath.Abs(fmt.Sprintf("%s_export_%s.xlsx", r.ExportName(), now.Format("2006-01-02")))
	}
	return filepath.Abs(filepath.Join(r.PDFDir, r.ExportName()+".xlsx"))
}

// Options is what the user picked before the export runs.
type Options struct {
	HTML bool `json:"html"`
	PDF  bool `json:"pdf"`
	Save bool `json:"save"`
	XLSX bool `json:"xlsx"`
}

// DefaultOptions matches the initial state of the option prompt.
func DefaultOptions() Options {
	return Options{PDF: true, Save: true}
}

// Validate requires at least one output format.
func (o Options) Validate() error {
	if !o.HTML && !o.PDF && !o.XLSX {
		return ErrNoFormatSelected
	}
	return nil
}

// ExportResult holds the absolute paths that were produced.
type ExportResult struct {
	HTMLPath  string `json:"html_path,omitempty"`
	PDFPath   string `json:"pdf_path,omitempty"`
	XLSXPath  string `json:"xlsx_path,omitempty"`
	Cancelled bool   `json:"cancelled"`
}
