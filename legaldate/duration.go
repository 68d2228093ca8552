/*
duration.go - Statutory penalty duration

PURPOSE:
  Converts the {years, months, days} triple a judgment is written in into
  the single day count all thresholds are computed from.

THE CONVENTION:
  year = 365 days, month = 30 days. This is the execution-court
  convention, NOT calendar arithmetic. A 1-year sentence is 365 days even
  across a leap year; a 6-month sentence is 180 days regardless of which
  months it spans. Using real calendar months here would silently move
  every progression and termination date, so TotalDays must stay exactly
  y*365 + m*30 + d.

  Negative components are not validated here; the input layer rejects
  them before a Duration is built.
*/
package legaldate

import "fmt"

// Duration is a statutory penalty duration as written in a judgment.
type Duration struct {
	Years  int `json:"years" yaml:"years"`
	Months int `json:"months" yaml:"months"`
	Days   int `json:"days" yaml:"days"`
}

// TotalDays normalizes the duration using the statutory convention
// (year = 365, month = 30).
func (d Duration) TotalDays() int {
	return d.Years*365 + d.Months*30 + d.Days
}

// IsZero reports whether all components are zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0
}

// String renders the duration in the form used by memoranda,
// e.g. "6a 2m 10d".
func (d Duration) String() string {
	return fmt.Sprintf("%da %dm %dd", d.Years, d.Months, d.Days)
}
