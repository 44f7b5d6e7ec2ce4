package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// NativePDFExporter draws the report table with gofpdf. It needs no browser
// and is used when Chrome is unavailable; templates and CSS are ignored.
type NativePDFExporter struct{}

// NewNativePDFExporter creates a new PDF exporter
func NewNativePDFExporter() *NativePDFExporter {
	return &NativePDFExporter{}
}

const (
	lineHeight   = 5.0
	headerHeight = 7.0
)

// Export exports data to PDF format
func (p *NativePDFExporter) Export(data *ExportData, writer io.Writer) error {
	if len(data.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	orientation := "P"
	if data.Style.Orientation == "landscape" {
		orientation = "L"
	}
	pageSize := data.Style.PageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	fontSize := data.Style.FontSize
	if fontSize == 0 {
		fontSize = 10
	}

	pdf := gofpdf.New(orientation, "mm", pageSize, "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, tr(data.Title))
		pdf.Ln(10)
	}
	if data.ExtraTitle != "" {
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 8, tr(data.ExtraTitle))
		pdf.Ln(10)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	leftMargin, _, rightMargin, bottomMargin := pdf.GetMargins()
	colWidth := (pageWidth - leftMargin - rightMargin) / float64(len(data.Headers))

	drawHeader := func() {
		pdf.SetFont("Arial", "B", fontSize)
		r, g, b := hexToRGB(data.Style.HeaderBgColor)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, headerHeight, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", fontSize)
	}
	drawHeader()

	for rowIdx, row := range data.Rows {
		// row height follows the cell with the most lines
		lines := 1
		for _, value := range row {
			if n := len(value.Lines); n > lines {
				lines = n
			}
		}
		height := float64(lines) * lineHeight

		if pdf.GetY()+height > pageHeight-bottomMargin {
			pdf.AddPage()
			drawHeader()
		}

		x, y := pdf.GetXY()
		for colIdx, value := range row {
			fill := ""
			if rowIdx < len(data.Colors) && colIdx < len(data.Colors[rowIdx]) {
				fill = FillColor(data.Colors[rowIdx][colIdx])
			}
			if fill != "" {
				r, g, b := hexToRGB(fill)
				pdf.SetFillColor(r, g, b)
			}

			cx := x + float64(colIdx)*colWidth
			pdf.Rect(cx, y, colWidth, height, rectStyle(fill))
			pdf.SetXY(cx, y)
			text := value.Text
			if value.IsLines() {
				text = strings.Join(value.Lines, "\n")
			}
			pdf.MultiCell(colWidth, lineHeight, tr(text), "", "L", false)
		}
		pdf.SetXY(x, y+height)
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *NativePDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *NativePDFExporter) GetFileExtension() string {
	return ".pdf"
}

func rectStyle(fill string) string {
	if fill == "" {
		return "D"
	}
	return "FD"
}

// hexToRGB converts hex color to RGB values
func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")

	// Default to white if invalid
	if len(hex) != 6 {
		return 255, 255, 255
	}

	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
