// Package localdate maps submission instants and user-supplied date strings
// to the calendar day an entry counts toward. All functions are pure.
package localdate

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Parse parses a strict YYYY-MM-DD string. The string must match the layout
// exactly and name a real calendar date (month 13 and Feb 30 are rejected).
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	// time.Parse normalizes out-of-range components instead of rejecting
	// them, so round-trip to catch e.g. "2026-02-30".
	if t.Format(Layout) != s {
		return Date{}, fmt.Errorf("invalid date %q: not a real calendar date", s)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// FromTime returns the calendar date of t in the given location.
func FromTime(t time.Time, loc *time.Location) Date {
	local := t.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a strict YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// Resolve decides which calendar day an entry belongs to. An explicit,
// well-formed YYYY-MM-DD string from the user's text always wins and is
// returned with wasExplicit=true, with no further validation — if the
// upstream text parser extracted the wrong date, that date is trusted.
// Otherwise the entry is assigned the local calendar date of submittedAt in
// loc. Malformed explicit text is not an error; it falls back to the
// timestamp path.
//
// There is deliberately no day-rollover heuristic: an entry submitted at
// 00:30 local time belongs to the new day, even if it describes a late
// dinner. The submission instant's local date is authoritative.
func Resolve(explicit string, submittedAt time.Time, loc *time.Location) (Date, bool) {
	if explicit != "" {
		if d, err := Parse(explicit); err == nil {
			return d, true
		}
	}
	return FromTime(submittedAt, loc), false
}

// Today returns the current calendar date in loc.
func Today(loc *time.Location) Date {
	return FromTime(time.Now(), loc)
}

// Yesterday returns the calendar date before Today in loc. It derives from
// the same conversion as Resolve's timestamp path so the two can never
// disagree about day boundaries.
func Yesterday(loc *time.Location) Date {
	return Today(loc).AddDays(-1)
}
