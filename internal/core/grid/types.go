// Package grid reads table widgets (in-memory grids or xlsx worksheets) into
// report snapshots.
package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CheckState is the tri-state checkbox value of a cell without text.
type CheckState int

const (
	CheckNone CheckState = iota
	Unchecked
	PartiallyChecked
	Checked
)

// Glyph returns the character printed for a checkbox cell.
func (s CheckState) Glyph() string {
	switch s {
	case Unchecked:
		return "☐"
	case PartiallyChecked:
		return "▣"
	case Checked:
		return "☑"
	default:
		return ""
	}
}

func (s CheckState) MarshalText() ([]byte, error) {
	switch s {
	case Unchecked:
		return []byte("unchecked"), nil
	case PartiallyChecked:
		return []byte("partial"), nil
	case Checked:
		return []byte("checked"), nil
	default:
		return []byte(""), nil
	}
}

func (s *CheckState) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "none":
		*s = CheckNone
	case "unchecked", "0":
		*s = Unchecked
	case "partial", "partially_checked", "1":
		*s = PartiallyChecked
	case "checked", "2":
		*s = Checked
	default:
		return fmt.Errorf("invalid check state: %q", string(text))
	}
	return nil
}

// UnmarshalJSON accepts the state names and the numeric widget states 0, 1
// and 2, quoted or not.
func (s *CheckState) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		return s.UnmarshalText([]byte(text))
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid check state: %s", data)
	}
	return s.UnmarshalText([]byte(fmt.Sprint(n)))
}

// Cell is one widget cell as the grid exposes it.
type Cell struct {
	Text  string     `json:"text,omitempty"`
	Check CheckState `json:"check,omitempty"`
}

// Grid is the table widget abstraction the extractor walks.
type Grid interface {
	RowCount() int
	ColumnCount() int
	HeaderLabel(col int) string
	// Cell returns false when the widget has no item at (row, col).
	Cell(row, col int) (Cell, bool)
}

// Value is a snapshot cell: either plain text or, for weekplan cells, an
// ordered list of lines.
type Value struct {
	Text  string
	Lines []string
}

// Text wraps a single string cell value.
func Text(s string) Value { return Value{Text: s} }

// Lines wraps a multi-line cell value. A nil slice is stored as empty.
func Lines(lines ...string) Value {
	if lines == nil {
		lines = []string{}
	}
	return Value{Lines: lines}
}

// IsLines reports whether the value is a multi-line cell.
func (v Value) IsLines() bool { return v.Lines != nil }

// IsEmpty reports whether the value carries no printable content.
func (v Value) IsEmpty() bool {
	if v.IsLines() {
		for _, l := range v.Lines {
			if l != "" {
				return false
			}
		}
		return true
	}
	return v.Text == ""
}

func (v Value) String() string {
	if v.IsLines() {
		return strings.Join(v.Lines, "\n")
	}
	return v.Text
}

// Snapshot is the extracted header list and row matrix. SourceRows maps every
// snapshot row back to the grid row it came from, so parallel matrices built
// from the same grid stay aligned after empty rows are dropped.
type Snapshot struct {
	Headers    []string
	Rows       [][]Value
	SourceRows []int
}
