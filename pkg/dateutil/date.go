// Package dateutil provides the calendar helpers shared by the benefit rules:
// date masks as they arrive from client files, and whole-year ages measured at
// an explicit reference date.
package dateutil

import (
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Accepted input masks, tried in order.
const (
	MaskSwiss = "02.01.2006"
	MaskISO   = "2006-01-02"

	lenientSwiss = "2.1.2006"
)

// Date is a calendar day. A Date decoded from a malformed mask is invalid
// rather than an error: the raw text is kept for reporting and every age
// computed from it is 0.
type Date struct {
	t   time.Time
	raw string
}

// NewDate builds a valid Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t: t, raw: t.Format(MaskSwiss)}
}

// FromTime truncates t to its calendar day.
func FromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Parse reads a DD.MM.YYYY or YYYY-MM-DD mask. Malformed input returns an
// invalid Date and ok=false.
func Parse(mask string) (Date, bool) {
	s := strings.TrimSpace(mask)
	if s == "" {
		return Date{}, false
	}
	for _, layout := range []string{lenientSwiss, MaskISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t, raw: mask}, true
		}
	}
	return Date{raw: mask}, false
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(mask string) Date {
	d, ok := Parse(mask)
	if !ok {
		panic("dateutil: malformed date " + strconv.Quote(mask))
	}
	return d
}

// Valid reports whether the date was parsed successfully.
func (d Date) Valid() bool { return !d.t.IsZero() }

// Time returns the date at UTC midnight, or the zero time when invalid.
func (d Date) Time() time.Time { return d.t }

// Raw returns the text the date was decoded from.
func (d Date) Raw() string { return d.raw }

// Year returns the calendar year, 0 when invalid.
func (d Date) Year() int {
	if !d.Valid() {
		return 0
	}
	return d.t.Year()
}

// Before reports whether d is strictly before other. Invalid dates are never
// before anything.
func (d Date) Before(other Date) bool {
	return d.Valid() && other.Valid() && d.t.Before(other.t)
}

// AddYears shifts a valid date by n calendar years.
func (d Date) AddYears(n int) Date {
	if !d.Valid() {
		return d
	}
	return FromTime(d.t.AddDate(n, 0, 0))
}

func (d Date) String() string {
	if d.Valid() {
		return d.t.Format(MaskSwiss)
	}
	return d.raw
}

// UnmarshalYAML accepts either mask. Malformed values do not fail decoding.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	*d, _ = Parse(node.Value)
	return nil
}

// MarshalYAML writes the Swiss mask.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalJSON accepts a quoted mask or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*d = Date{}
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	}
	*d, _ = Parse(s)
	return nil
}

// MarshalJSON writes the Swiss mask, or null for an empty date.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() && d.raw == "" {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.String())), nil
}
