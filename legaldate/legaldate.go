/*
Package legaldate provides the calendar-date kernel shared by both
calculation engines.

PURPOSE:
  Criminal-execution and alimony computations are day-granular: there is
  no time-of-day anywhere in the domain. Date wraps a plain calendar date
  pinned to a jurisdiction Zone so that "today" and weekday decisions are
  taken in the court's timezone, not the caller's.

KEY CONCEPTS:
  - Zone: the jurisdiction timezone. Defaults to America/Cuiaba and is
    threaded explicitly through both engines; there is no package-global
    mutable zone.
  - Date: year/month/day triple. All arithmetic (AddDays, DaysBetween)
    is done over a UTC-midnight projection so results never depend on
    DST transitions.
  - Duration: a statutory {years, months, days} penalty duration. See
    duration.go for the year=365/month=30 convention.

WEEKEND SHIFT:
  Alimony due dates falling on a weekend move forward to the next
  business day: Saturday +2 days, Sunday +1 day. Holidays are not
  considered; the obligation contract fixes only the weekend rule.

SEE ALSO:
  - duration.go: statutory duration normalization
  - sentence: criminal sentence engine
  - alimony: arrears engine
*/
package legaldate

import (
	"fmt"
	"time"
)

// =============================================================================
// ZONE - Jurisdiction timezone
// =============================================================================

// DefaultZoneName is the timezone every calculation historically ran in.
// Kept as the default so results are stable across caller locales.
const DefaultZoneName = "America/Cuiaba"

// Zone is the timezone a calculation is pinned to.
type Zone struct {
	loc *time.Location
}

// DefaultZone returns the America/Cuiaba zone. If the tz database is not
// available in the runtime image it falls back to the fixed UTC-4 offset,
// which has been the zone's standing offset since DST was abolished in 2019.
func DefaultZone() Zone {
	loc, err := time.LoadLocation(DefaultZoneName)
	if err != nil {
		loc = time.FixedZone(DefaultZoneName, -4*60*60)
	}
	return Zone{loc: loc}
}

// LoadZone loads a named IANA zone.
func LoadZone(name string) (Zone, error) {
	if name == "" {
		return DefaultZone(), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return Zone{loc: loc}, nil
}

func (z Zone) location() *time.Location {
	if z.loc == nil {
		return DefaultZone().loc
	}
	return z.loc
}

// Name returns the IANA name of the zone.
func (z Zone) Name() string { return z.location().String() }

// =============================================================================
// DATE - Calendar date (no time-of-day)
// =============================================================================

// Date is a calendar date. The zero value is the zero date (IsZero reports
// true); optional dates are represented as *Date or the zero value.
type Date struct {
	year  int
	month time.Month
	day   int
}

// New builds a date, normalizing overflow the way time.Date does
// (e.g. January 32 becomes February 1).
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// NewClamped builds a date clamping day to the month's length instead of
// normalizing overflow (day 31 in April yields April 30). Used for
// due-day-of-month schedules.
func NewClamped(year int, month time.Month, day int) Date {
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return Date{year: year, month: month, day: day}
}

// Today returns the current calendar date in the given zone. This is the
// only clock read in the module; the engines themselves take explicit
// as-of dates.
func Today(zone Zone) Date {
	now := time.Now().In(zone.location())
	return Date{year: now.Year(), month: now.Month(), day: now.Day()}
}

// ParseISO parses a yyyy-mm-dd date.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want yyyy-mm-dd): %w", s, err)
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// Properties
func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }
func (d Date) IsZero() bool      { return d.year == 0 && d.month == 0 && d.day == 0 }

func (d Date) utc() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Comparison
func (d Date) Before(other Date) bool        { return d.utc().Before(other.utc()) }
func (d Date) After(other Date) bool         { return d.utc().After(other.utc()) }
func (d Date) Equal(other Date) bool         { return d.utc().Equal(other.utc()) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date {
	t := d.utc().AddDate(0, 0, n)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func (d Date) AddMonths(n int) Date {
	t := d.utc().AddDate(0, n, 0)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// DaysBetween returns to - from in whole days. Negative when to is
// earlier than from.
func DaysBetween(from, to Date) int {
	return int(to.utc().Sub(from.utc()).Hours() / 24)
}

// Weekday / business days
func (d Date) Weekday() time.Weekday { return d.utc().Weekday() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NextBusinessDay shifts a weekend date forward to Monday: Saturday +2,
// Sunday +1. Weekdays are returned unchanged.
func (d Date) NextBusinessDay() Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(2)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

// DaysInMonth returns the length of a month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Formatting
func (d Date) ISO() string    { return d.utc().Format("2006-01-02") }
func (d Date) BR() string     { return d.utc().Format("02/01/2006") }
func (d Date) String() string { return d.ISO() }

// MarshalJSON encodes the date as a yyyy-mm-dd string, null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.ISO() + `"`), nil
}

// UnmarshalJSON accepts a yyyy-mm-dd string; null and "" yield the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s (want a yyyy-mm-dd string)", s)
	}
	parsed, err := ParseISO(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
