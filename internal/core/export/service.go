package export

import (
	"bytes"
	"fmt"
)

// Service dispatches report data to the exporter of a format
type Service struct {
	exporters map[ExportFormat]Exporter
}

// NewService wires the HTML, native PDF and Excel exporters.
func NewService(templateDir string) *Service {
	return &Service{
		exporters: map[ExportFormat]Exporter{
			FormatHTML:  NewHTMLExporter(templateDir),
			FormatPDF:   NewNativePDFExporter(),
			FormatExcel: NewExcelExporter(),
		},
	}
}

// Export exports data to the specified format
func (s *Service) Export(data *ExportData, format ExportFormat) ([]byte, string, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, "", fmt.Errorf("unsupported export format: %s", format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(data, &buf); err != nil {
		return nil, "", fmt.Errorf("%s export failed: %w", format, err)
	}

	return buf.Bytes(), exporter.GetContentType(), nil
}
