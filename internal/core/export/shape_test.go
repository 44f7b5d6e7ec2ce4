package export

import (
	"testing"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
)

func TestSameShape(t *testing.T) {
	tests := []struct {
		name  string
		a, b  any
		depth int
		want  bool
	}{
		{"flat", []int{1, 2}, []int{3, 4}, -1, true},
		{"nested", []any{1, []int{2}}, []any{3, []int{4}}, -1, true},
		{"length differs", []any{1, []int{2}}, []any{3}, -1, false},
		{"not a collection", []int{1}, 2, -1, false},
		{"leaf vs collection", []any{1, []int{2}}, []any{3, 4}, 2, false},
		{"depth stops descent", [][]int{{1}, {2, 3}}, [][]int{{1}, {2}}, 0, true},
		{"depth one sees rows", [][]int{{1}, {2, 3}}, [][]int{{1}, {2}}, 1, false},
		{"both empty", [][]string{}, [][]grid.Value{}, 1, true},
		{"nil vs empty", [][]string(nil), [][]grid.Value{}, 1, true},
		{"rows vs colors", [][]grid.Value{{grid.Lines("a", "b"), grid.Text("")}}, [][]string{{"c", ""}}, 1, true},
		{"column count differs", [][]grid.Value{{grid.Text("a")}}, [][]string{{"c", ""}}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameShape(tt.a, tt.b, tt.depth); got != tt.want {
				t.Errorf("SameShape() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrimTrailingEmptyRows(t *testing.T) {
	t.Run("lockstep", func(t *testing.T) {
		rows := [][]grid.Value{{grid.Text("a")}, {grid.Text("")}, {grid.Text("")}}
		colors := [][]string{{"c1"}, {""}, {""}}

		rows, colors = TrimTrailingEmptyRows(rows, colors, TrimLockstep)

		if len(rows) != 1 || len(colors) != 1 {
			t.Errorf("got %d rows and %d colors, want 1 and 1", len(rows), len(colors))
		}
	})

	t.Run("lockstep stops at first non-empty row", func(t *testing.T) {
		rows := [][]grid.Value{{grid.Text("a")}, {grid.Text("")}, {grid.Lines()}}
		colors := [][]string{{"c1"}, {"c2"}, {""}}

		rows, colors = TrimTrailingEmptyRows(rows, colors, TrimLockstep)

		if len(rows) != 2 || len(colors) != 2 {
			t.Errorf("got %d rows and %d colors, want 2 and 2", len(rows), len(colors))
		}
	})

	t.Run("independent", func(t *testing.T) {
		rows := [][]grid.Value{{grid.Text("a")}, {grid.Text("")}, {grid.Text("")}}
		colors := [][]string{{"c1"}, {"c2"}, {""}}

		rows, colors = TrimTrailingEmptyRows(rows, colors, TrimIndependent)

		if len(rows) != 1 || len(colors) != 2 {
			t.Errorf("got %d rows and %d colors, want 1 and 2", len(rows), len(colors))
		}
	})
}

func TestParseTrimMode(t *testing.T) {
	if m, _ := ParseTrimMode(""); m != TrimLockstep {
		t.Errorf("default = %q", m)
	}
	if m, _ := ParseTrimMode("Independent"); m != TrimIndependent {
		t.Errorf("independent = %q", m)
	}
	if _, err := ParseTrimMode("sideways"); err == nil {
		t.Error("expected error")
	}
}
