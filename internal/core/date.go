package core

import (
	"fmt"
	"time"
)

// Date is a calendar date without time-of-day. Court orders carry bare
// dates; attaching a timezone would shift them across midnight.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// dateLayouts are the formats providers have been observed to return.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-2006",
	"01/02/2006",
	"January 2, 2006",
}

// ParseDate parses a calendar date from a provider response. It accepts
// the ISO form the prompt asks for plus the US forms court clerks use.
func ParseDate(s string) (*Date, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := &Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
		return d, nil
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

// String returns the ISO form used in filenames and tracking records.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns the date at midnight UTC, for comparisons only.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// Valid reports whether d is a real calendar date within a plausible
// window for active litigation.
func (d Date) Valid() bool {
	if d.Year < 2000 || d.Year > 2100 {
		return false
	}
	t := d.Time()
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}
