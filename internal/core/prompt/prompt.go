// Package prompt asks the user which outputs an export should produce.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MuhamadAgungGumelar/report-export-be/internal/core/export"
)

// Prompter returns the chosen export options. ok is false when the user
// cancelled; that is not an error.
type Prompter interface {
	Prompt(ctx context.Context) (opts export.Options, ok bool, err error)
}

// Static answers every prompt with fixed options. It is used when options
// come from flags or a request body.
type Static struct {
	Options   export.Options
	Cancelled bool
}

func (s Static) Prompt(ctx context.Context) (export.Options, bool, error) {
	if s.Cancelled {
		return export.Options{}, false, nil
	}
	if err := s.Options.Validate(); err != nil {
		return export.Options{}, false, err
	}
	return s.Options, true, nil
}

// Interactive asks on a terminal. Enter keeps the default of a question,
// "cancel" or "q" aborts the export.
type Interactive struct {
	reader io.Reader
	writer io.Writer
}

func NewInteractive() *Interactive {
	return &Interactive{reader: os.Stdin, writer: os.Stdout}
}

// NewInteractiveWithIO creates an Interactive prompter with custom I/O.
func NewInteractiveWithIO(reader io.Reader, writer io.Writer) *Interactive {
	return &Interactive{reader: reader, writer: writer}
}

type question struct {
	label string
	value *bool
}

func (p *Interactive) Prompt(ctx context.Context) (export.Options, bool, error) {
	scanner := bufio.NewScanner(p.reader)
	opts := export.DefaultOptions()

	fmt.Fprintln(p.writer, "Export options (Enter keeps the default, \"cancel\" aborts)")
	for {
		questions := []question{
			{"HTML", &opts.HTML},
			{"PDF", &opts.PDF},
			{"XLSX", &opts.XLSX},
			{"Save to downloads", &opts.Save},
		}
		for _, q := range questions {
			if err := ctx.Err(); err != nil {
				return export.Options{}, false, err
			}

			hint := "[y/N]"
			if *q.value {
				hint = "[Y/n]"
			}
			fmt.Fprintf(p.writer, "%s %s: ", q.label, hint)

			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return export.Options{}, false, fmt.Errorf("failed to read option: %w", err)
				}
				// EOF closes the dialog like the cancel button
				return export.Options{}, false, nil
			}

			switch answer := strings.ToLower(strings.TrimSpace(scanner.Text())); answer {
			case "":
			case "y", "yes":
				*q.value = true
			case "n", "no":
				*q.value = false
			case "cancel", "q":
				return export.Options{}, false, nil
			default:
				fmt.Fprintf(p.writer, "unknown answer %q, keeping %s\n", answer, hint)
			}
		}

		if err := opts.Validate(); err != nil {
			fmt.Fprintf(p.writer, "%v\n", err)
			continue
		}
		return opts, true, nil
	}
}

var (
	_ Prompter = Static{}
	_ Prompter = (*Interactive)(nil)
)
