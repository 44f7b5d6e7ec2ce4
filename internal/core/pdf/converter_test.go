package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeSession struct {
	box     Box
	printed *PrintParams
	closed  *bool
}

func (s fakeSession) ContentBox(ctx context.Context) (Box, error) { return s.box, nil }

func (s fakeSession) PrintToPDF(ctx context.Context, params PrintParams) ([]byte, error) {
	*s.printed = params
	return []byte("%PDF-1.4 fake"), nil
}

func (s fakeSession) Close() error {
	*s.closed = true
	return nil
}

type fakeEngine struct {
	err     error
	box     Box
	url     string
	printed PrintParams
	closed  bool
}

func (e *fakeEngine) Load(ctx context.Context, url, markerID string, timeout time.Duration) (Session, error) {
	e.url = url
	if e.err != nil {
		return nil, e.err
	}
	return fakeSession{box: e.box, printed: &e.printed, closed: &e.closed}, nil
}

type recordingOpener struct{ opened []string }

func (o *recordingOpener) Open(path string) error {
	o.opened = append(o.opened, path)
	return nil
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	engine := &fakeEngine{box: Box{Width: 1000, Height: 400}}
	opener := &recordingOpener{}
	tmp := filepath.Join(dir, "tmp_files", "tmp_report.pdf")
	out := filepath.Join(dir, "out", "report.pdf")

	c := NewConverter(engine, opener, tmp, time.Second)
	result, err := c.Convert(context.Background(), ConvertRequest{
		HTMLPath:        filepath.Join(dir, "tmp_report.html"),
		PaperFormat:     "A4",
		PrintBackground: true,
		Open:            true,
		SaveTo:          out,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.HasPrefix(engine.url, "file://") || !strings.HasSuffix(engine.url, "tmp_report.html") {
		t.Errorf("loaded url = %q", engine.url)
	}
	if !engine.closed {
		t.Error("session was not closed")
	}
	if !engine.printed.Landscape || !engine.printed.PrintBackground {
		t.Errorf("print params = %+v", engine.printed)
	}
	if engine.printed.PaperWidth != 8.3 || engine.printed.PaperHeight != 11.7 {
		t.Errorf("paper = %vx%v", engine.printed.PaperWidth, engine.printed.PaperHeight)
	}
	if result.TmpPath != tmp || result.OutputPath != out {
		t.Errorf("result = %+v", result)
	}
	if len(opener.opened) != 1 || opener.opened[0] != tmp {
		t.Errorf("opened = %v", opener.opened)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}

	// second save of the same report gets a numbered name
	result, err = c.Convert(context.Background(), ConvertRequest{HTMLPath: "x.html", PaperFormat: "a4", SaveTo: out})
	if err != nil {
		t.Fatal(err)
	}
	if result.OutputPath != filepath.Join(dir, "out", "report (1).pdf") {
		t.Errorf("second output = %s", result.OutputPath)
	}
}

func TestConvertLoadTimeout(t *testing.T) {
	dir := t.TempDir()
	tmp := filepath.Join(dir, "tmp_report.pdf")
	out := filepath.Join(dir, "report.pdf")

	c := NewConverter(&fakeEngine{err: ErrLoadTimeout}, nil, tmp, time.Millisecond)
	result, err := c.Convert(context.Background(), ConvertRequest{HTMLPath: "x.html", PaperFormat: "a4", SaveTo: out})

	if err != nil || result != nil {
		t.Fatalf("Convert() = %v, %v; want nil, nil", result, err)
	}
	for _, p := range []string{tmp, out} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s must not exist after a timeout", p)
		}
	}
}

func TestConvertErrors(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "tmp_report.pdf")

	c := NewConverter(&fakeEngine{err: ErrBrowserUnavailable}, nil, tmp, 0)
	if _, err := c.Convert(context.Background(), ConvertRequest{HTMLPath: "x.html", PaperFormat: "a4"}); !errors.Is(err, ErrBrowserUnavailable) {
		t.Errorf("err = %v, want ErrBrowserUnavailable", err)
	}

	engine := &fakeEngine{}
	c = NewConverter(engine, nil, tmp, 0)
	if _, err := c.Convert(context.Background(), ConvertRequest{HTMLPath: "x.html", PaperFormat: "b5"}); !errors.Is(err, ErrUnknownPaperFormat) {
		t.Errorf("err = %v, want ErrUnknownPaperFormat", err)
	}
	if engine.url != "" {
		t.Error("browser must not start for an unknown paper format")
	}
}
