package export

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
)

const templateDir = "../../../templates"

func TestHTMLExporterRenderTable(t *testing.T) {
	e := NewHTMLExporter(templateDir)
	data := &ExportData{
		Kind:       KindTable,
		Title:      "Kurse",
		ExtraTitle: "Sommer",
		Headers:    []string{"Name", "Done"},
		Rows:       [][]grid.Value{{grid.Text("Huber & Co"), grid.Text("☑")}},
		Colors:     [][]string{{"background-color: #111111;", ""}},
	}

	markup, err := e.Render(KindTable.Template(), data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`<h1>Kurse</h1>`,
		`<h2>Sommer</h2>`,
		`<th>Done</th>`,
		`style="background-color: #111111;"`,
		`Huber &amp; Co`,
		`id="loaded"`,
		`<style type="text/css">`,
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup is missing %q", want)
		}
	}
	if strings.Contains(markup, `<link`) {
		t.Error("stylesheet link was not inlined")
	}
}

func TestHTMLExporterRenderWeekplan(t *testing.T) {
	e := NewHTMLExporter(templateDir)
	data := &ExportData{
		Kind:    KindWeekplan,
		Title:   "KW 1",
		Headers: []string{"Mo"},
		Rows:    [][]grid.Value{{grid.Lines("Huber", "Maier")}},
		Colors: [][]string{{
			"background-image: linear-gradient(to bottom right, #111111,#222222);",
		}},
	}

	markup, err := e.Render(KindWeekplan.Template(), data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(markup, `<div class="entry">Huber</div>`) || !strings.Contains(markup, `<div class="entry">Maier</div>`) {
		t.Error("weekplan lines are missing")
	}
	if !strings.Contains(markup, "linear-gradient(to bottom right, #111111,#222222)") {
		t.Error("gradient is missing")
	}
}

func TestHTMLExporterShapeMismatch(t *testing.T) {
	e := NewHTMLExporter(templateDir)
	data := &ExportData{
		Kind:    KindTable,
		Headers: []string{"A"},
		Rows:    [][]grid.Value{{grid.Text("a")}, {grid.Text("b")}},
		Colors:  [][]string{{""}},
	}

	if _, err := e.Render(KindTable.Template(), data); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestConsolidate(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.css"), []byte("td { color: red; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}

	in := `<html><head><link rel="stylesheet" href="a.css"></head>` +
		`<body><img src="logo.png"><img src="data:image/png;base64,AA=="><img src="https://example.com/x.png"></body></html>`

	out, err := Consolidate(in, dir)
	if err != nil {
		t.Fatalf("Consolidate() error = %v", err)
	}

	for _, want := range []string{
		`<style type="text/css">td { color: red; }</style>`,
		`src="data:image/png;base64,iVBORw=="`,
		`src="data:image/png;base64,AA=="`,
		`src="https://example.com/x.png"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestConsolidateMissingAsset(t *testing.T) {
	_, err := Consolidate(`<link rel="stylesheet" href="nope.css">`, t.TempDir())
	if !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("err = %v, want ErrAssetNotFound", err)
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("err = %v, want wrapped *fs.PathError", err)
	}
}

func TestConsolidateResolvesAgainstBaseDir(t *testing.T) {
	baseDir, workDir := t.TempDir(), t.TempDir()
	if err := os.WriteFile(filepath.Join(baseDir, "report.css"), []byte("td { color: navy; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(workDir, "report.css"), []byte("td { color: red; }"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, workDir)

	in := `<html><head><link rel="stylesheet" href="report.css"><link rel="stylesheet" href="https://cdn.example.com/x.css"></head><body></body></html>`
	out, err := Consolidate(in, baseDir)
	if err != nil {
		t.Fatalf("Consolidate() error = %v", err)
	}
	if !strings.Contains(out, "color: navy") || strings.Contains(out, "color: red") {
		t.Errorf("stylesheet not taken from the base directory:\n%s", out)
	}
	if !strings.Contains(out, "https://cdn.example.com/x.css") {
		t.Error("remote stylesheet link was removed")
	}
}

func TestServiceExport(t *testing.T) {
	s := NewService(templateDir)
	data := &ExportData{
		Kind:    KindTable,
		Title:   "Kurse",
		Headers: []string{"Name"},
		Rows:    [][]grid.Value{{grid.Text("Huber")}},
		Colors:  [][]string{{"background-color: #abc;"}},
		Style:   DefaultStyle(),
	}

	tests := []struct {
		format      ExportFormat
		contentType string
		prefix      string
	}{
		{FormatHTML, "text/html; charset=utf-8", "<!DOCTYPE html>"},
		{FormatPDF, "application/pdf", "%PDF"},
		{FormatExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "PK"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			out, contentType, err := s.Export(data, tt.format)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if contentType != tt.contentType {
				t.Errorf("content type = %q", contentType)
			}
			if !strings.HasPrefix(string(out), tt.prefix) {
				t.Errorf("output starts with %q, want %q", string(out[:min(len(out), 16)]), tt.prefix)
			}
		})
	}

	if _, _, err := s.Export(data, "csv"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFillColor(t *testing.T) {
	tests := map[string]string{
		"background-color: #abc;":    "AABBCC",
		"background-color: #FFFFFF;": "FFFFFF",
		"background-image: linear-gradient(to bottom right, #111111,#222222);": "111111",
		"": "",
	}
	for decl, want := range tests {
		if got := FillColor(decl); got != want {
			t.Errorf("FillColor(%q) = %q, want %q", decl, got, want)
		}
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
