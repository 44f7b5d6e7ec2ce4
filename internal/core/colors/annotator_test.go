package colors

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
	_ "modernc.org/sqlite"
)

func TestCellStyle(t *testing.T) {
	lookup := StaticLookup{"john": "#111111", "jane": "#222222", "empty": ""}
	ctx := context.Background()

	tests := []struct {
		name string
		mode EmptyMode
		text string
		want string
	}{
		{"two names", EmptyWhite, "john / jane", "background-image: linear-gradient(to bottom right, #111111,#222222);"},
		{"text order wins", EmptyWhite, "Jane\nJohn", "background-image: linear-gradient(to bottom right, #222222,#111111);"},
		{"single name", EmptyWhite, "Kurs mit John", "background-color: #111111;"},
		{"no match", EmptyWhite, "nobody", "background-color: #FFFFFF;"},
		{"no match without styling", EmptyNone, "nobody", ""},
		{"hex literal", EmptyWhite, "room #abc123 john", "background-color: #abc123;"},
		{"partial word is no match", EmptyWhite, "johnny", "background-color: #FFFFFF;"},
		{"backslash delimiter", EmptyWhite, `john\jane`, "background-image: linear-gradient(to bottom right, #111111,#222222);"},
		{"missing color falls back", EmptyWhite, "empty", "background-color: #663399;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAnnotator(lookup, tt.mode).CellStyle(ctx, tt.text)
			if err != nil {
				t.Fatalf("CellStyle() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CellStyle(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	g := grid.NewMemoryGrid([]string{"A", "B"}, [][]string{
		{"john", ""},
		{"", ""},
		{"x", "jane"},
	})

	matrix, err := NewAnnotator(StaticLookup{"john": "#111111", "jane": "#222222"}, EmptyWhite).
		Annotate(context.Background(), g, []int{0, 2})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	want := [][]string{
		{"background-color: #111111;", ""},
		{"background-color: #FFFFFF;", "background-color: #222222;"},
	}
	if !reflect.DeepEqual(matrix, want) {
		t.Errorf("Annotate() = %q, want %q", matrix, want)
	}
}

type filledGrid struct {
	*grid.MemoryGrid
}

func (filledGrid) CellFill(row, col int) (string, bool) { return "FFFFCC00", row == 0 }

func TestAnnotateUsesGridFill(t *testing.T) {
	g := filledGrid{grid.NewMemoryGrid([]string{"A"}, [][]string{{"plain"}, {"plain"}})}

	matrix, err := NewAnnotator(nil, EmptyNone).Annotate(context.Background(), g, []int{0, 1})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	if matrix[0][0] != "background-color: #FFCC00;" {
		t.Errorf("filled cell = %q", matrix[0][0])
	}
	if matrix[1][0] != "" {
		t.Errorf("unfilled cell = %q, want empty", matrix[1][0])
	}
}

func TestParseEmptyMode(t *testing.T) {
	if m, err := ParseEmptyMode(""); err != nil || m != EmptyWhite {
		t.Errorf("ParseEmptyMode(\"\") = %q, %v", m, err)
	}
	if m, err := ParseEmptyMode("NONE"); err != nil || m != EmptyNone {
		t.Errorf("ParseEmptyMode(NONE) = %q, %v", m, err)
	}
	if _, err := ParseEmptyMode("grey"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.yaml")
	content := "instructors:\n  huber: \"#ff0000\"\n  maier: \"#00ff00\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lookup, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}
	if lookup["huber"] != "#ff0000" || lookup["maier"] != "#00ff00" {
		t.Errorf("LoadYAML() = %v", lookup)
	}

	if _, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSQLStore(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE instructors (family_name TEXT PRIMARY KEY, color TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	ctx := context.Background()
	store := NewSQLStore(db, "sqlite")
	if err := store.Upsert(ctx, "huber", "#111111"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := store.Upsert(ctx, "huber", "#333333"); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if _, err := db.Exec(`INSERT INTO instructors (family_name, color) VALUES ('maier', NULL)`); err != nil {
		t.Fatal(err)
	}

	table, err := store.Colors(ctx)
	if err != nil {
		t.Fatalf("Colors() error = %v", err)
	}
	if table["huber"] != "#333333" {
		t.Errorf("huber = %q, want #333333", table["huber"])
	}

	got, err := NewAnnotator(store, EmptyWhite).CellStyle(ctx, "Maier")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, Fallback) {
		t.Errorf("null color should fall back, got %q", got)
	}
}

func TestAnnotateCheckboxCells(t *testing.T) {
	g := grid.NewMemoryGrid([]string{"Kurs", "Bezahlt"}, [][]string{{"Yoga", ""}})
	g.Set(0, 1, grid.Cell{Check: grid.Checked})

	matrix, err := NewAnnotator(nil, EmptyWhite).Annotate(context.Background(), g, []int{0})
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := [][]string{{"background-color: #FFFFFF;", "background-color: #FFFFFF;"}}
	if !reflect.DeepEqual(matrix, want) {
		t.Errorf("Annotate() = %q, want %q", matrix, want)
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"", false},
		{"#abc", false},
		{"#FF8800", false},
		{"red", true},
		{"#FF8800; background-image: url(x)", true},
		{"#12345678", true},
	}
	for _, tt := range tests {
		if err := ValidateColor(tt.color); (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
		}
	}
}

func TestInvalidLookupColorFallsBack(t *testing.T) {
	lookup := StaticLookup{"huber": "red; background-image: url(http://x)"}

	got, err := NewAnnotator(lookup, EmptyWhite).CellStyle(context.Background(), "Huber")
	if err != nil {
		t.Fatalf("CellStyle() error = %v", err)
	}
	if got != "background-color: #663399;" {
		t.Errorf("CellStyle() = %q, want fallback", got)
	}
}

func TestLoadYAMLRejectsInvalidColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.yaml")
	content := "instructors:\n  huber: \"red; x: y\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadYAML(path)
	if !errors.Is(err, ErrInvalidColor) {
		t.Errorf("LoadYAML() error = %v, want ErrInvalidColor", err)
	}
}
