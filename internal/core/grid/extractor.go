package grid

import "strings"

// Headers returns the header labels of every column.
func Headers(g Grid) []string {
	headers := make([]string, g.ColumnCount())
	for c := range headers {
		headers[c] = g.HeaderLabel(c)
	}
	return headers
}

// ExtractTable reads a tabular report. Empty text falls back to the checkbox
// glyph of the cell; rows without any content are skipped.
func ExtractTable(g Grid) Snapshot {
	snap := Snapshot{Headers: Headers(g)}

	for r := 0; r < g.RowCount(); r++ {
		row := make([]Value, g.ColumnCount())
		hasData := false

		for c := range row {
			cell, ok := g.Cell(r, c)
			if !ok {
				row[c] = Text("")
				continue
			}
			text := cell.Text
			if text == "" {
				text = cell.Check.Glyph()
			}
			if text != "" {
				hasData = true
			}
			row[c] = Text(text)
		}

		if hasData {
			snap.Rows = append(snap.Rows, row)
			snap.SourceRows = append(snap.SourceRows, r)
		}
	}

	return snap
}

// ExtractWeekplan reads a weekplan report. Every cell is split into trimmed
// lines; all rows are kept so trailing blanks can be trimmed together with the
// color matrix later.
func ExtractWeekplan(g Grid) Snapshot {
	snap := Snapshot{Headers: Headers(g)}

	for r := 0; r < g.RowCount(); r++ {
		row := make([]Value, g.ColumnCount())
		for c := range row {
			text := ""
			if cell, ok := g.Cell(r, c); ok {
				text = cell.Text
			}
			row[c] = Lines(splitLines(text)...)
		}
		snap.Rows = append(snap.Rows, row)
		snap.SourceRows = append(snap.SourceRows, r)
	}

	return snap
}

// splitLines splits on \n, \r\n and \r and trims every line.
func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	parts := strings.Split(text, "\n")
	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = strings.TrimSpace(p)
	}
	return lines
}
