package legaldate_test

import (
	"testing"
	"time"

	"github.com/advocato/penal-engine/legaldate"
)

func date(y int, m time.Month, d int) legaldate.Date {
	return legaldate.New(y, m, d)
}

// =============================================================================
// STATUTORY DURATION
// =============================================================================

func TestDuration_StatutoryConvention(t *testing.T) {
	// GIVEN: the statutory convention (year=365, month=30)
	// THEN: 6 years is exactly 2190 days, calendar be damned

	cases := []struct {
		dur  legaldate.Duration
		want int
	}{
		{legaldate.Duration{Years: 6}, 2190},
		{legaldate.Duration{Years: 1}, 365},
		{legaldate.Duration{Months: 6}, 180},
		{legaldate.Duration{Years: 2, Months: 3, Days: 10}, 830},
		{legaldate.Duration{}, 0},
	}
	for _, c := range cases {
		if got := c.dur.TotalDays(); got != c.want {
			t.Errorf("%v.TotalDays() = %d, want %d", c.dur, got, c.want)
		}
	}
}

// =============================================================================
// DATE ARITHMETIC
// =============================================================================

func TestDate_AddDaysAndDaysBetween(t *testing.T) {
	start := date(2020, time.January, 1)

	if got := start.AddDays(400); !got.Equal(date(2021, time.February, 4)) {
		t.Errorf("AddDays(400) = %s", got)
	}
	if got := legaldate.DaysBetween(start, start.AddDays(2190)); got != 2190 {
		t.Errorf("DaysBetween = %d, want 2190", got)
	}
	// Leap day is real calendar arithmetic, unlike Duration.
	if got := legaldate.DaysBetween(date(2024, time.February, 28), date(2024, time.March, 1)); got != 2 {
		t.Errorf("leap-year DaysBetween = %d, want 2", got)
	}
}

func TestDate_ClampDay(t *testing.T) {
	// Day 31 in a 30-day month clamps, never rolls over.
	if got := legaldate.NewClamped(2024, time.April, 31); !got.Equal(date(2024, time.April, 30)) {
		t.Errorf("NewClamped(apr 31) = %s", got)
	}
	if got := legaldate.NewClamped(2024, time.February, 31); !got.Equal(date(2024, time.February, 29)) {
		t.Errorf("NewClamped(feb 31, leap) = %s", got)
	}
	if got := legaldate.NewClamped(2023, time.February, 31); !got.Equal(date(2023, time.February, 28)) {
		t.Errorf("NewClamped(feb 31) = %s", got)
	}
}

func TestDate_NextBusinessDay(t *testing.T) {
	// GIVEN: a Saturday and a Sunday due date
	// THEN: both shift to the following Monday

	sat := date(2024, time.January, 6)
	sun := date(2024, time.January, 7)
	mon := date(2024, time.January, 8)

	if got := sat.NextBusinessDay(); !got.Equal(mon) {
		t.Errorf("Saturday shifted to %s, want %s", got, mon)
	}
	if got := sun.NextBusinessDay(); !got.Equal(mon) {
		t.Errorf("Sunday shifted to %s, want %s", got, mon)
	}
	if got := mon.NextBusinessDay(); !got.Equal(mon) {
		t.Errorf("Monday shifted to %s, want unchanged", got)
	}
}

func TestParseISO(t *testing.T) {
	d, err := legaldate.ParseISO("2024-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(date(2024, time.March, 5)) {
		t.Errorf("parsed %s", d)
	}
	if d.BR() != "05/03/2024" {
		t.Errorf("BR() = %s", d.BR())
	}
	if _, err := legaldate.ParseISO("05/03/2024"); err == nil {
		t.Error("expected error for non-ISO input")
	}
}

func TestDefaultZone(t *testing.T) {
	z := legaldate.DefaultZone()
	if z.Name() != legaldate.DefaultZoneName {
		t.Errorf("zone = %s, want %s", z.Name(), legaldate.DefaultZoneName)
	}
	if legaldate.Today(z).IsZero() {
		t.Error("Today returned the zero date")
	}
}
