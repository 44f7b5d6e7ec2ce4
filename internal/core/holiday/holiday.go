// Package holiday greys out weekplan columns that fall on a public holiday.
package holiday

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/de"
)

// Color is the declaration written over every cell of a holiday column.
const Color = "background-color: #D3D3D3;"

var ErrUnsupportedCountry = errors.New("unsupported holiday country")

// Calendar answers whether a date is a public holiday.
type Calendar interface {
	IsHoliday(t time.Time) bool
}

type businessCalendar struct {
	cal *cal.BusinessCalendar
}

func (b businessCalendar) IsHoliday(t time.Time) bool {
	actual, observed, _ := b.cal.IsHoliday(t)
	return actual || observed
}

// ForCountry returns the public holiday calendar of an ISO country code.
func ForCountry(code string) (Calendar, error) {
	c := cal.NewBusinessCalendar()
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "AT":
		c.AddHoliday(at.Holidays...)
	case "DE":
		c.AddHoliday(de.Holidays...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCountry, code)
	}
	return businessCalendar{cal: c}, nil
}

// Mark overwrites every entry of each column whose weekday date is a holiday
// in year. Columns without a date are left alone.
func Mark(colors [][]string, weekdays []time.Time, year int, c Calendar) [][]string {
	for col, day := range weekdays {
		if day.Year() != year || !c.IsHoliday(day) {
			continue
		}
		for _, row := range colors {
			if col < len(row) {
				row[col] = Color
			}
		}
	}
	return colors
}
