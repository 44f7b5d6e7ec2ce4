package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter writes the report as a worksheet, carrying the cell colors
// over as solid fills.
type ExcelExporter struct {
	sheetName string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{
		sheetName: "Report",
	}
}

// Export exports data to Excel format
func (e *ExcelExporter) Export(data *ExportData, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	rowIndex := 1
	if data.Title != "" {
		f.SetCellValue(e.sheetName, cellName(1, rowIndex), data.Title)
		titleStyle, _ := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 14, Family: data.Style.FontFamily},
		})
		f.SetCellStyle(e.sheetName, cellName(1, rowIndex), cellName(1, rowIndex), titleStyle)
		rowIndex++

		if data.ExtraTitle != "" {
			f.SetCellValue(e.sheetName, cellName(1, rowIndex), data.ExtraTitle)
			rowIndex++
		}
		rowIndex++ // blank row
	}

	headerStyle, err := e.createHeaderStyle(f, data.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := rowIndex
	for col, header := range data.Headers {
		cell := cellName(col+1, rowIndex)
		f.SetCellValue(e.sheetName, cell, header)
		f.SetCellStyle(e.sheetName, cell, cell, headerStyle)
	}
	rowIndex++

	// one style per distinct fill color
	styles := map[string]int{}
	for r, row := range data.Rows {
		for col, value := range row {
			cell := cellName(col+1, rowIndex)
			f.SetCellValue(e.sheetName, cell, value.String())

			fill := ""
			if r < len(data.Colors) && col < len(data.Colors[r]) {
				fill = FillColor(data.Colors[r][col])
			}
			key := fill
			if value.IsLines() {
				key += "|wrap"
			}
			styleID, ok := styles[key]
			if !ok {
				styleID, err = e.createCellStyle(f, data.Style, fill, value.IsLines())
				if err != nil {
					return fmt.Errorf("failed to create cell style: %w", err)
				}
				styles[key] = styleID
			}
			f.SetCellStyle(e.sheetName, cell, cell, styleID)
		}
		rowIndex++
	}

	if data.Style.FreezeHeader {
		f.SetPanes(e.sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      headerRow,
			TopLeftCell: cellName(1, headerRow+1),
			ActivePane:  "bottomLeft",
		})
	}

	if data.Style.AutoFilter && len(data.Headers) > 0 {
		lastRow := headerRow + len(data.Rows)
		f.AutoFilter(e.sheetName, fmt.Sprintf("A%d:%s", headerRow, cellName(len(data.Headers), lastRow)), nil)
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

// GetContentType returns the MIME type for Excel files
func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// GetFileExtension returns the file extension for Excel files
func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

func (e *ExcelExporter) createHeaderStyle(f *excelize.File, style ExportStyle) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   style.HeaderBold,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Color:  "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(style.HeaderBgColor)},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func (e *ExcelExporter) createCellStyle(f *excelize.File, style ExportStyle, fill string, wrap bool) (int, error) {
	cellStyle := &excelize.Style{
		Font: &excelize.Font{
			Size:   style.FontSize,
			Family: style.FontFamily,
		},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: wrap},
	}

	// white stays unfilled so the sheet grid lines remain visible
	if fill != "" && fill != "FFFFFF" {
		cellStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{fill},
		}
	}

	return f.NewStyle(cellStyle)
}

var declColor = regexp.MustCompile(`#([0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)

// FillColor extracts the first hex color of a CSS declaration as "RRGGBB".
// Gradients yield their first color.
func FillColor(decl string) string {
	m := declColor.FindStringSubmatch(decl)
	if m == nil {
		return ""
	}
	hex := strings.ToUpper(m[1])
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return hex
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// stripHashFromColor removes # from hex color codes
func stripHashFromColor(color string) string {
	return strings.TrimPrefix(color, "#")
}
