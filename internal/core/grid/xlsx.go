package grid

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXGrid exposes one worksheet as a grid. The first sheet row holds the
// header labels; boolean cells become checkbox cells.
type XLSXGrid struct {
	*MemoryGrid
	SheetName string
	// Fills holds the worksheet background color per body cell ("RRGGBB"), if any.
	Fills map[[2]int]string
}

// OpenXLSX reads a worksheet from disk. An empty sheet name selects the first sheet.
func OpenXLSX(path, sheet string) (*XLSXGrid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return loadSheet(f, sheet)
}

// ReadXLSX reads a worksheet from an uploaded workbook.
func ReadXLSX(r io.Reader, sheet string) (*XLSXGrid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()
	return loadSheet(f, sheet)
}

func loadSheet(f *excelize.File, sheet string) (*XLSXGrid, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	g := &XLSXGrid{
		MemoryGrid: &MemoryGrid{},
		SheetName:  sheet,
		Fills:      make(map[[2]int]string),
	}
	if len(rows) == 0 {
		return g, nil
	}
	g.HeaderLabels = append([]string(nil), rows[0]...)

	for rowIdx, row := range rows[1:] {
		g.Cells = append(g.Cells, make([]*Cell, 0, len(row)))
		for colIdx, value := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}

			cell := Cell{Text: value}
			if cellType, err := f.GetCellType(sheet, cellName); err == nil && cellType == excelize.CellTypeBool {
				cell = Cell{Check: boolCheck(value)}
			}
			if value != "" || cell.Check != CheckNone {
				g.Set(rowIdx, colIdx, cell)
			}

			if fill := cellFill(f, sheet, cellName); fill != "" {
				g.Fills[[2]int{rowIdx, colIdx}] = fill
			}
		}
	}

	// widen the grid to the header row so short data rows stay addressable
	if n := len(g.HeaderLabels); n > 0 {
		for r := range g.Cells {
			for len(g.Cells[r]) < n {
				g.Cells[r] = append(g.Cells[r], nil)
			}
		}
	}

	return g, nil
}

// CellFill returns the worksheet fill color of a body cell, if one was set.
func (g *XLSXGrid) CellFill(row, col int) (string, bool) {
	fill, ok := g.Fills[[2]int{row, col}]
	return fill, ok
}

func boolCheck(value string) CheckState {
	switch value {
	case "TRUE", "true", "1":
		return Checked
	default:
		return Unchecked
	}
}

func cellFill(f *excelize.File, sheet, cellName string) string {
	styleID, err := f.GetCellStyle(sheet, cellName)
	if err != nil || styleID == 0 {
		return ""
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil || style.Fill.Type != "pattern" || len(style.Fill.Color) == 0 {
		return ""
	}
	return style.Fill.Color[0]
}
