/*
schedule.go - Monthly due-date generation

Generates one installment per month at the configured day-of-month,
clamped to the month's length (due day 31 in April falls on the 30th),
starting at the first occurrence on or after the obligation start and
running up to min(limit, obligation end). Each nominal date is then
shifted off weekends.
*/
package alimony

import (
	"time"

	"github.com/advocato/penal-engine/legaldate"
)

// Schedule generates the installments due by limit.
func Schedule(o Obligation, limit legaldate.Date) []DueDate {
	if o.End != nil && o.End.Before(limit) {
		limit = *o.End
	}

	var dues []DueDate
	year, month := o.Start.Year(), o.Start.Month()
	for {
		raw := legaldate.NewClamped(year, month, o.DueDay)
		if raw.AfterOrEqual(o.Start) {
			if raw.After(limit) {
				break
			}
			dues = append(dues, DueDate{
				Raw:    raw,
				Date:   raw.NextBusinessDay(),
				Amount: o.MonthlyAmount,
			})
		}
		year, month = nextMonth(year, month)
	}
	return dues
}

// NextDue returns the first installment strictly after the given date,
// or nil if the obligation has ended by then.
func NextDue(o Obligation, after legaldate.Date) *DueDate {
	year, month := o.Start.Year(), o.Start.Month()
	if after.After(o.Start) {
		// Start scanning near 'after' instead of replaying the whole
		// obligation history.
		year, month = after.Year(), after.Month()
		year, month = prevMonth(year, month)
	}
	for i := 0; i < 4; i++ {
		raw := legaldate.NewClamped(year, month, o.DueDay)
		if raw.AfterOrEqual(o.Start) && raw.After(after) {
			if o.End != nil && raw.After(*o.End) {
				return nil
			}
			return &DueDate{Raw: raw, Date: raw.NextBusinessDay(), Amount: o.MonthlyAmount}
		}
		year, month = nextMonth(year, month)
	}
	return nil
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
