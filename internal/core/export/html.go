package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"reflect"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
)

// HTMLExporter renders report templates into self-contained HTML documents.
type HTMLExporter struct {
	templateDir string
}

// NewHTMLExporter loads templates (and the assets they reference) from dir.
func NewHTMLExporter(templateDir string) *HTMLExporter {
	return &HTMLExporter{templateDir: templateDir}
}

// Pair is one element of zip.
type Pair struct {
	First  any
	Second any
}

var templateFuncs = template.FuncMap{
	"zip":       zip,
	"cellColor": cellColor,
	"isLines": func(v any) bool {
		val, ok := v.(grid.Value)
		return ok && val.IsLines()
	},
}

// zip pairs two slices element by element. The shorter side is padded with nil.
func zip(a, b any) []Pair {
	va, vb := indirect(reflect.ValueOf(a)), indirect(reflect.ValueOf(b))
	n := 0
	if isSeq(va) {
		n = va.Len()
	}
	if isSeq(vb) && vb.Len() > n {
		n = vb.Len()
	}

	pairs := make([]Pair, n)
	for i := range pairs {
		if isSeq(va) && i < va.Len() {
			pairs[i].First = va.Index(i).Interface()
		}
		if isSeq(vb) && i < vb.Len() {
			pairs[i].Second = vb.Index(i).Interface()
		}
	}
	return pairs
}

// cellColor marks a color declaration as trusted CSS for style attributes.
func cellColor(v any) template.CSS {
	s, _ := v.(string)
	return template.CSS(s)
}

// Render executes the named template with the report data and consolidates
// the result. Rows and colors must have the same shape, otherwise nothing is
// rendered.
func (e *HTMLExporter) Render(templateName string, data *ExportData) (string, error) {
	if data.Colors != nil && !SameShape(data.Rows, data.Colors, 1) {
		return "", ErrShapeMismatch
	}

	path := filepath.Join(e.templateDir, templateName)
	tmpl, err := template.New(filepath.Base(path)).Funcs(templateFuncs).ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	vars := map[string]any{
		"title":              data.Title,
		"extratitle":         data.ExtraTitle,
		"header":             data.Headers,
		"rows":               data.Rows,
		"rows_addition_data": data.Colors,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", templateName, err)
	}

	return Consolidate(buf.String(), e.templateDir)
}

// Export renders the default template of the report kind.
func (e *HTMLExporter) Export(data *ExportData, writer io.Writer) error {
	markup, err := e.Render(data.Kind.Template(), data)
	if err != nil {
		return err
	}
	_, err = io.WriteString(writer, markup)
	return err
}

func (e *HTMLExporter) GetContentType() string {
	return "text/html; charset=utf-8"
}

func (e *HTMLExporter) GetFileExtension() string {
	return ".html"
}
