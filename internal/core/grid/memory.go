package grid

// MemoryGrid is a JSON friendly grid. Rows may be shorter than Headers and
// may contain nil cells; both read as absent items.
type MemoryGrid struct {
	HeaderLabels []string  `json:"headers"`
	Cells        [][]*Cell `json:"rows"`
}

// NewMemoryGrid builds a grid from plain strings. Every string becomes a
// present cell, including empty ones.
func NewMemoryGrid(headers []string, rows [][]string) *MemoryGrid {
	g := &MemoryGrid{HeaderLabels: headers}
	for _, row := range rows {
		cells := make([]*Cell, len(row))
		for i, text := range row {
			cells[i] = &Cell{Text: text}
		}
		g.Cells = append(g.Cells, cells)
	}
	return g
}

func (g *MemoryGrid) RowCount() int    { return len(g.Cells) }
func (g *MemoryGrid) ColumnCount() int { return len(g.HeaderLabels) }

func (g *MemoryGrid) HeaderLabel(col int) string {
	if col < 0 || col >= len(g.HeaderLabels) {
		return ""
	}
	return g.HeaderLabels[col]
}

func (g *MemoryGrid) Cell(row, col int) (Cell, bool) {
	if row < 0 || row >= len(g.Cells) || col < 0 || col >= len(g.Cells[row]) {
		return Cell{}, false
	}
	c := g.Cells[row][col]
	if c == nil {
		return Cell{}, false
	}
	return *c, true
}

// Set stores a cell, growing the row as needed.
func (g *MemoryGrid) Set(row, col int, cell Cell) {
	for len(g.Cells) <= row {
		g.Cells = append(g.Cells, nil)
	}
	for len(g.Cells[row]) <= col {
		g.Cells[row] = append(g.Cells[row], nil)
	}
	g.Cells[row][col] = &cell
}

var _ Grid = (*MemoryGrid)(nil)
