package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/colors"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/pdf"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/prompt"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/models"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report/services"
	"github.com/gofiber/fiber/v2"
)

type stubSession struct{}

func (stubSession) ContentBox(ctx context.Context) (pdf.Box, error) { return pdf.Box{Width: 800, Height: 600}, nil }
func (stubSession) PrintToPDF(ctx context.Context, params pdf.PrintParams) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}
func (stubSession) Close() error { return nil }

type stubEngine struct{}

func (stubEngine) Load(ctx context.Context, url, markerID string, timeout time.Duration) (pdf.Session, error) {
	return stubSession{}, nil
}

type memoryInstructors struct {
	byName map[string]string
}

func (m *memoryInstructors) List(ctx context.Context) ([]models.Instructor, error) {
	var out []models.Instructor
	for name, color := range m.byName {
		out = append(out, models.Instructor{FamilyName: name, Color: color})
	}
	return out, nil
}

func (m *memoryInstructors) Upsert(ctx context.Context, instructor *models.Instructor) error {
	m.byName[instructor.FamilyName] = instructor.Color
	return nil
}

func (m *memoryInstructors) Colors(ctx context.Context) (map[string]string, error) {
	return m.byName, nil
}

func setupApp(t *testing.T) (*fiber.App, *memoryInstructors, string) {
	t.Helper()
	root := t.TempDir()
	out := filepath.Join(root, "Downloads")
	instructors := &memoryInstructors{byName: map[string]string{"huber": "#112233"}}

	svc := services.NewReportService(services.Dependencies{
		TemplateDir: "../../../../templates",
		TmpDir:      filepath.Join(root, "tmp_files"),
		Annotator:   colors.NewAnnotator(instructors, colors.EmptyWhite),
		Engine:      stubEngine{},
		TrimMode:    export.TrimLockstep,
	})

	reportHandler := NewReportHandler(svc, out, "a4")
	instructorHandler := NewInstructorHandler(instructors)

	app := fiber.New()
	app.Post("/reports/table", reportHandler.ExportTable)
	app.Post("/reports/weekplan", reportHandler.ExportWeekplan)
	app.Get("/reports/history", reportHandler.GetHistory)
	app.Get("/instructors", instructorHandler.ListInstructors)
	app.Put("/instructors/:name", instructorHandler.UpsertInstructor)
	return app, instructors, out
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	json.Unmarshal(raw, &decoded)
	return resp.StatusCode, decoded
}

const tableBody = `{
	"title": "Kurse<split>Sommer",
	"grid": {
		"headers": ["Kurs", "Leitung", "Bezahlt"],
		"rows": [
			[{"text": "Yoga"}, {"text": "Huber"}, {"check": "checked"}],
			[{"text": "Pilates"}, {"text": "Maier"}, null]
		]
	},
	"options": {"pdf": true, "save": true}
}`

func TestExportTableHandler(t *testing.T) {
	app, _, out := setupApp(t)

	status, body := doJSON(t, app, "POST", "/reports/table", tableBody)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	want := filepath.Join(out, "Kurse_Sommer.pdf")
	if body["pdf_path"] != want {
		t.Errorf("pdf_path = %v, want %s", body["pdf_path"], want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("PDF not saved: %v", err)
	}
}

func TestExportHandlerValidation(t *testing.T) {
	app, _, _ := setupApp(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed json", "/reports/table", `{`, fiber.StatusBadRequest},
		{"no format", "/reports/table", `{"title":"x","grid":{"headers":["a"]},"options":{"save":true}}`, fiber.StatusBadRequest},
		{"no headers", "/reports/table", `{"title":"x","grid":{"headers":[]},"options":{"html":true}}`, fiber.StatusBadRequest},
		{"unknown paper", "/reports/table", `{"title":"x","grid":{"headers":["a"]},"options":{"pdf":true},"paper_format":"b5"}`, fiber.StatusBadRequest},
		{"weekplan without weekdays", "/reports/weekplan", `{"title":"x","grid":{"headers":["Mo"]},"options":{"html":true}}`, fiber.StatusBadRequest},
		{"weekplan bad date", "/reports/weekplan", `{"title":"x","grid":{"headers":["Mo"]},"options":{"html":true},"weekdays":["24.12.2024"],"year":2024}`, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", tt.path, tt.body)
			if status != tt.status {
				t.Errorf("status = %d, want %d (body %v)", status, tt.status, body)
			}
			if body["error"] == nil {
				t.Error("error message missing")
			}
		})
	}
}

func TestExportWeekplanHandler(t *testing.T) {
	app, _, _ := setupApp(t)
	body := `{
		"title": "KW 52",
		"grid": {"headers": ["Mo", "Di"], "rows": [[{"text": "Yoga\nHuber"}, {"text": "Frei"}]]},
		"options": {"html": true},
		"weekdays": ["2024-12-23", "2024-12-24"],
		"year": 2024
	}`

	status, resp := doJSON(t, app, "POST", "/reports/weekplan", body)
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, body = %v", status, resp)
	}
	path, _ := resp["html_path"].(string)
	markup, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("html_path %q unreadable: %v", path, err)
	}
	if !strings.Contains(string(markup), "Huber") {
		t.Error("weekplan entry missing")
	}
}

func TestHistoryWithoutDatabase(t *testing.T) {
	app, _, _ := setupApp(t)

	status, _ := doJSON(t, app, "GET", "/reports/history", "")
	if status != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
}

func TestInstructorHandlers(t *testing.T) {
	app, instructors, _ := setupApp(t)

	status, body := doJSON(t, app, "PUT", "/instructors/maier", `{"color":"#ABCDEF"}`)
	if status != fiber.StatusOK || body["family_name"] != "maier" {
		t.Fatalf("status = %d, body = %v", status, body)
	}
	if instructors.byName["maier"] != "#ABCDEF" {
		t.Errorf("stored color = %q", instructors.byName["maier"])
	}

	if status, _ := doJSON(t, app, "PUT", "/instructors/maier", `{"color":"red"}`); status != fiber.StatusBadRequest {
		t.Errorf("invalid color status = %d", status)
	}

	req := httptest.NewRequest("GET", "/instructors", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var list []models.Instructor
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("listed %d instructors, want 2", len(list))
	}
}

type memoryRecords struct {
	created []models.ExportRecord
}

func (m *memoryRecords) Create(ctx context.Context, record *models.ExportRecord) error {
	m.created = append(m.created, *record)
	return nil
}

func (m *memoryRecords) List(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit > len(m.created) {
		limit = len(m.created)
	}
	return m.created[:limit], nil
}

func TestGetHistoryLimit(t *testing.T) {
	svc := services.NewReportService(services.Dependencies{
		TemplateDir: "../../../../templates",
		TmpDir:      filepath.Join(t.TempDir(), "tmp_files"),
		Engine:      stubEngine{},
		Records:     &memoryRecords{},
	})
	for i := 0; i < 3; i++ {
		svc.Export(context.Background(), &export.ExportRequest{Kind: export.KindTable, Name: "Kurse"}, nil, prompt.Static{Cancelled: true})
	}

	app := fiber.New()
	app.Get("/reports/history", NewReportHandler(svc, t.TempDir(), "a4").GetHistory)

	tests := []struct {
		query  string
		status int
		count  int
	}{
		{"", fiber.StatusOK, 3},
		{"?limit=2", fiber.StatusOK, 2},
		{"?limit=abc", fiber.StatusBadRequest, 0},
		{"?limit=-1", fiber.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/reports/history"+tt.query, nil), -1)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status != fiber.StatusOK {
				return
			}
			var records []models.ExportRecord
			if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
				t.Fatal(err)
			}
			if len(records) != tt.count {
				t.Errorf("got %d records, want %d", len(records), tt.count)
			}
		})
	}
}
