// Package colors infers a per-cell CSS background from instructor names and
// hex literals found in the cell text.
package colors

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/grid"
)

const (
	White = "#FFFFFF"
	// Fallback is used when a lookup entry exists without a color.
	Fallback = "#663399"
)

// EmptyMode decides what a non-empty cell without any color match gets.
type EmptyMode string

const (
	EmptyWhite EmptyMode = "white"
	EmptyNone  EmptyMode = "none"
)

// ParseEmptyMode accepts "white" (default for "") and "none".
func ParseEmptyMode(s string) (EmptyMode, error) {
	switch EmptyMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", EmptyWhite:
		return EmptyWhite, nil
	case EmptyNone:
		return EmptyNone, nil
	default:
		return "", fmt.Errorf("invalid empty color mode: %q", s)
	}
}

var (
	hexPattern = regexp.MustCompile(`(?i)#[0-9a-f]{3,6}`)
	hexColor   = regexp.MustCompile(`^#[0-9a-fA-F]{3,6}$`)

	ErrInvalidColor = errors.New("color must be a hex value like #FF8800")
)

// ValidateColor accepts "" (rendered in the fallback color) and #RGB up to
// #RRGGBB. Colors end up inside style attributes, so nothing else passes.
func ValidateColor(color string) error {
	if color == "" || hexColor.MatchString(color) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidColor, color)
}

// Lookup returns the name to hex color table used for matching.
type Lookup interface {
	Colors(ctx context.Context) (map[string]string, error)
}

// Filler is implemented by grids that carry their own cell backgrounds, such
// as xlsx worksheets. A fill is used when the text yields no color.
type Filler interface {
	CellFill(row, col int) (string, bool)
}

// Annotator turns cell text into CSS declarations.
type Annotator struct {
	lookup Lookup
	mode   EmptyMode
}

func NewAnnotator(lookup Lookup, mode EmptyMode) *Annotator {
	if mode == "" {
		mode = EmptyWhite
	}
	return &Annotator{lookup: lookup, mode: mode}
}

// Annotate builds the color matrix for the given grid rows. rows are grid row
// indices (usually Snapshot.SourceRows); absent or empty cells get "". A
// checkbox without text is content and is colored like any unmatched text.
func (a *Annotator) Annotate(ctx context.Context, g grid.Grid, rows []int) ([][]string, error) {
	m, err := a.matcher(ctx)
	if err != nil {
		return nil, err
	}

	filler, _ := g.(Filler)

	matrix := make([][]string, len(rows))
	for i, r := range rows {
		line := make([]string, g.ColumnCount())
		for c := range line {
			cell, ok := g.Cell(r, c)
			if !ok || (strings.TrimSpace(cell.Text) == "" && cell.Check == grid.CheckNone) {
				continue
			}
			found := m.match(cell.Text)
			if len(found) == 0 && filler != nil {
				if fill, ok := filler.CellFill(r, c); ok {
					if color := normalizeFill(fill); hexColor.MatchString(color) {
						found = []string{color}
					}
				}
			}
			line[c] = a.style(found)
		}
		matrix[i] = line
	}
	return matrix, nil
}

// CellStyle returns the CSS declaration for a single text.
func (a *Annotator) CellStyle(ctx context.Context, text string) (string, error) {
	m, err := a.matcher(ctx)
	if err != nil {
		return "", err
	}
	return a.style(m.match(text)), nil
}

func (a *Annotator) matcher(ctx context.Context) (*matcher, error) {
	table := map[string]string{}
	if a.lookup != nil {
		var err error
		table, err = a.lookup.Colors(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load color lookup: %w", err)
		}
	}
	return newMatcher(table)
}

func (a *Annotator) style(colors []string) string {
	switch len(colors) {
	case 0:
		if a.mode == EmptyNone {
			return ""
		}
		return Solid(White)
	case 1:
		return Solid(colors[0])
	default:
		return Gradient(colors...)
	}
}

// Solid renders a plain background declaration.
func Solid(color string) string {
	return fmt.Sprintf("background-color: %s;", color)
}

// Gradient renders a diagonal gradient over all colors in order.
func Gradient(colors ...string) string {
	return fmt.Sprintf("background-image: linear-gradient(to bottom right, %s);", strings.Join(colors, ","))
}

// normalizeFill turns an xlsx "RRGGBB" or "AARRGGBB" fill into "#RRGGBB".
func normalizeFill(fill string) string {
	fill = strings.TrimPrefix(fill, "#")
	if len(fill) == 8 {
		fill = fill[2:]
	}
	return "#" + strings.ToUpper(fill)
}

type namePattern struct {
	name  string
	color string
	re    *regexp.Regexp
}

type matcher struct {
	names []namePattern
}

func newMatcher(table map[string]string) (*matcher, error) {
	names := make([]string, 0, len(table))
	for name := range table {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	m := &matcher{names: make([]namePattern, 0, len(names))}
	for _, name := range names {
		re, err := regexp.Compile(`(?i)[\s/\\]` + regexp.QuoteMeta(strings.TrimSpace(name)) + `[\s/\\]`)
		if err != nil {
			return nil, fmt.Errorf("invalid name %q: %w", name, err)
		}
		color := strings.TrimSpace(table[name])
		if color == "" || ValidateColor(color) != nil {
			color = Fallback
		}
		m.names = append(m.names, namePattern{name: name, color: color, re: re})
	}
	return m, nil
}

// match returns the hex literals of text, or else the colors of every name
// found in it, ordered by first occurrence.
func (m *matcher) match(text string) []string {
	if hexes := hexPattern.FindAllString(text, -1); len(hexes) > 0 {
		return hexes
	}

	padded := " " + strings.ReplaceAll(text, "\n", " ") + " "

	type hit struct {
		pos   int
		color string
	}
	var hits []hit
	for _, p := range m.names {
		if loc := p.re.FindStringIndex(padded); loc != nil {
			hits = append(hits, hit{pos: loc[0], color: p.color})
		}
	}
	// names are pre-sorted, so equal positions keep name order
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	colors := make([]string, len(hits))
	for i, h := range hits {
		colors[i] = h.color
	}
	return colors
}
