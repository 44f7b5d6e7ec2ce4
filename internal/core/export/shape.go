package export

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
)

// SameShape reports whether a and b are slices (or arrays) with equal lengths
// whose nested slices match as well, down to depth levels. depth < 0 checks
// the full nesting. Two empty collections have the same shape.
func SameShape(a, b any, depth int) bool {
	return sameShape(reflect.ValueOf(a), reflect.ValueOf(b), depth)
}

func sameShape(a, b reflect.Value, depth int) bool {
	a, b = indirect(a), indirect(b)
	if !isSeq(a) || !isSeq(b) {
		return false
	}
	if a.Len() != b.Len() {
		return false
	}
	if depth == 0 {
		return true
	}

	for i := 0; i < a.Len(); i++ {
		x, y := indirect(a.Index(i)), indirect(b.Index(i))
		switch {
		case isSeq(x) && isSeq(y):
			if !sameShape(x, y, depth-1) {
				return false
			}
		case isSeq(x) != isSeq(y):
			return false
		}
	}
	return true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isSeq(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

// TrimMode decides how trailing empty rows are removed.
type TrimMode string

const (
	// TrimLockstep pops a row only while it is empty in both matrices.
	TrimLockstep TrimMode = "lockstep"
	// TrimIndependent trims each matrix on its own.
	TrimIndependent TrimMode = "independent"
)

// ParseTrimMode accepts "lockstep" (default for "") and "independent".
func ParseTrimMode(s string) (TrimMode, error) {
	switch TrimMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", TrimLockstep:
		return TrimLockstep, nil
	case TrimIndependent:
		return TrimIndependent, nil
	default:
		return "", fmt.Errorf("invalid trailing row mode: %q", s)
	}
}

// TrimTrailingEmptyRows drops trailing rows without content.
func TrimTrailingEmptyRows(rows [][]grid.Value, colors [][]string, mode TrimMode) ([][]grid.Value, [][]string) {
	if mode == TrimIndependent {
		for len(rows) > 0 && emptyValues(rows[len(rows)-1]) {
			rows = rows[:len(rows)-1]
		}
		for len(colors) > 0 && emptyColors(colors[len(colors)-1]) {
			colors = colors[:len(colors)-1]
		}
		return rows, colors
	}

	for len(rows) > 0 && len(colors) > 0 &&
		emptyValues(rows[len(rows)-1]) && emptyColors(colors[len(colors)-1]) {
		rows = rows[:len(rows)-1]
		colors = colors[:len(colors)-1]
	}
	return rows, colors
}

func emptyValues(row []grid.Value) bool {
	for _, v := range row {
		if !v.IsEmpty() {
			return false
		}
	}
	return true
}

func emptyColors(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
