package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/prompt"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/modules/report"
	"github.com/MuhamadAgungGumelar/report-export-be/internal/shared/config"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	sheet       string
	title       string
	template    string
	outputDir   string
	paper       string
	orientation string
	scale       float64
	weekdays    string
	year        int
	noOpen      bool

	html, pdf, xlsx, save bool
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a grid as a report",
	}
	cmd.AddCommand(
		newExportKindCmd(cfg, export.KindTable, "Export a grid as a table report"),
		newExportKindCmd(cfg, export.KindWeekplan, "Export a grid as a landscape weekplan"),
	)
	return cmd
}

func newExportKindCmd(cfg *config.Config, kind export.Kind, short string) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   string(kind) + " [input.xlsx|input.json]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, cfg, kind, f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet to read (default: first sheet)")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Report title; text after <split> becomes the subtitle (default: input file name)")
	cmd.Flags().StringVar(&f.template, "template", "", "Template file inside TEMPLATE_DIR")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", cfg.DownloadDir, "Directory for saved reports")
	cmd.Flags().StringVar(&f.paper, "paper", cfg.PaperFormat, "Paper format: legal, letter, a5, a4, a3")
	cmd.Flags().StringVar(&f.orientation, "orientation", "auto", "Page orientation: auto, landscape, portrait")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "Print scale between 0.1 and 2.0 (default: fit to page)")
	cmd.Flags().BoolVar(&f.noOpen, "no-open", false, "Do not open produced files")
	cmd.Flags().BoolVar(&f.html, "html", false, "Produce HTML")
	cmd.Flags().BoolVar(&f.pdf, "pdf", false, "Produce PDF")
	cmd.Flags().BoolVar(&f.xlsx, "xlsx", false, "Produce XLSX")
	cmd.Flags().BoolVar(&f.save, "save", false, "Save outputs to the output directory")
	if kind == export.KindWeekplan {
		cmd.Flags().StringVar(&f.weekdays, "weekdays", "", "Comma separated dates of the columns (YYYY-MM-DD)")
		cmd.Flags().IntVar(&f.year, "year", 0, "Year whose public holidays are greyed out (default: year of the first weekday)")
	}

	return cmd
}

func runExport(cmd *cobra.Command, cfg *config.Config, kind export.Kind, f *exportFlags, input string) error {
	g, err := loadGrid(input, f.sheet)
	if err != nil {
		return export.Wrap(export.StageExtract, err)
	}

	req, err := buildRequest(kind, f, input)
	if err != nil {
		return err
	}

	var opener export.Opener = export.SystemOpener{}
	if f.noOpen {
		opener = export.NoopOpener{}
	}

	rt, err := report.NewRuntime(cmd.Context(), cfg, opener)
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.Reports.Export(cmd.Context(), req, g, prompterFor(cmd, f))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Cancelled {
		fmt.Fprintln(out, "Export cancelled")
		return nil
	}
	for _, line := range []struct{ label, path string }{
		{"HTML", result.HTMLPath},
		{"PDF", result.PDFPath},
		{"XLSX", result.XLSXPath},
	} {
		if line.path != "" {
			fmt.Fprintf(out, "%-4s %s\n", line.label, line.path)
		}
	}
	return nil
}

// prompterFor asks interactively unless an output format was given as a flag.
func prompterFor(cmd *cobra.Command, f *exportFlags) prompt.Prompter {
	flags := cmd.Flags()
	if flags.Changed("html") || flags.Changed("pdf") || flags.Changed("xlsx") {
		return prompt.Static{Options: export.Options{HTML: f.html, PDF: f.pdf, XLSX: f.xlsx, Save: f.save}}
	}
	return prompt.NewInteractiveWithIO(cmd.InOrStdin(), cmd.OutOrStdout())
}

func buildRequest(kind export.Kind, f *exportFlags, input string) (*export.ExportRequest, error) {
	title := f.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	opts := []export.RequestOption{
		export.WithOutputDirs(f.outputDir, f.outputDir),
		export.WithPaperFormat(f.paper),
		export.WithTemplate(f.template),
	}

	switch strings.ToLower(f.orientation) {
	case "", "auto":
	case "landscape":
		opts = append(opts, export.WithLandscape(true))
	case "portrait":
		opts = append(opts, export.WithLandscape(false))
	default:
		return nil, fmt.Errorf("invalid orientation: %s (use auto, landscape, portrait)", f.orientation)
	}
	if f.scale != 0 {
		opts = append(opts, export.WithScale(f.scale))
	}

	if kind == export.KindWeekplan {
		days, err := parseWeekdays(f.weekdays)
		if err != nil {
			return nil, err
		}
		year := f.year
		if year == 0 && len(days) > 0 {
			year = days[0].Year()
		}
		opts = append(opts, export.WithWeekdays(days, year))
	}

	return export.NewExportRequest(kind, title, opts...)
}

func parseWeekdays(raw string) ([]time.Time, error) {
	var days []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q, expected YYYY-MM-DD", part)
		}
		days = append(days, day)
	}
	return days, nil
}

// loadGrid reads an xlsx worksheet or a JSON grid ({"headers": [...], "rows": [[...]]}).
func loadGrid(path, sheet string) (grid.Grid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return grid.OpenXLSX(path, sheet)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var g grid.MemoryGrid
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, fmt.Errorf("invalid grid json: %w", err)
		}
		return &g, nil
	default:
		return nil, fmt.Errorf("unsupported input %s (use .xlsx or .json)", path)
	}
}
