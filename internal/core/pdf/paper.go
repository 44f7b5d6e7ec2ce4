// Package pdf rasterizes rendered report HTML into PDF with a headless browser.
package pdf

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownPaperFormat = errors.New("unknown paper format")

// PaperFormat is a physical page size in inches, portrait orientation.
type PaperFormat struct {
	Name   string
	Width  float64
	Height float64
}

var paperFormats = map[string]PaperFormat{
	"legal":  {Name: "legal", Width: 8.5, Height: 14},
	"letter": {Name: "letter", Width: 8.5, Height: 11},
	"a5":     {Name: "a5", Width: 5.8, Height: 8.3},
	"a4":     {Name: "a4", Width: 8.3, Height: 11.7},
	"a3":     {Name: "a3", Width: 11.7, Height: 16.5},
}

// LookupPaper resolves a format name case-insensitively.
func LookupPaper(name string) (PaperFormat, error) {
	p, ok := paperFormats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PaperFormat{}, fmt.Errorf("%w: %q", ErrUnknownPaperFormat, name)
	}
	return p, nil
}

// PaperNames lists the known formats in sorted order.
func PaperNames() []string {
	names := make([]string, 0, len(paperFormats))
	for name := range paperFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
