/*
arrears.go - Arrears engine entry point

PURPOSE:
  Compute() ties the pieces together: generate the installments due by
  the reference date, fold the payments over them, charge each unpaid
  remainder, and project the next installment's collectible amount.

CHARGE RULES:
  penalty  = remainder * 2% (flat, any unpaid remainder)
  interest = remainder * 1% * elapsed months, simple

  Elapsed months are calendar months from the effective due date to the
  reference date, partial months rounded up. Charges never compound
  across installments.

NEXT-DUE PROJECTION:
  The next installment's projected amount is its base amount plus the
  carried-forward unpaid principal, with penalty and interest recomputed
  on that balance as of the next due date.
*/
package alimony

import (
	"github.com/advocato/penal-engine/legaldate"
	"github.com/shopspring/decimal"
)

// DueLine is the per-installment breakdown in a Result.
type DueLine struct {
	Due        DueDate
	Paid       decimal.Decimal
	Shortfall  decimal.Decimal
	MonthsLate int
	Penalty    decimal.Decimal
	Interest   decimal.Decimal
	Total      decimal.Decimal // shortfall + penalty + interest
}

// Result is the full arrears calculation. Produced fresh on every call.
type Result struct {
	Lines []DueLine

	TotalOwed     decimal.Decimal // sum of installment base amounts
	TotalPaid     decimal.Decimal
	Outstanding   decimal.Decimal // unpaid principal
	TotalPenalty  decimal.Decimal
	TotalInterest decimal.Decimal
	TotalDebt     decimal.Decimal // outstanding + penalty + interest
	AdvanceCredit decimal.Decimal

	NextDueDate   *legaldate.Date
	NextDueAmount decimal.Decimal

	AsOf   legaldate.Date
	Report string
}

// Compute runs the arrears calculation as of the given reference date.
// A zero asOf resolves to today in the given zone.
func Compute(o Obligation, payments []Payment, asOf legaldate.Date, zone legaldate.Zone) (Result, error) {
	if err := o.Validate(); err != nil {
		return Result{}, err
	}
	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return Result{}, err
		}
	}
	if asOf.IsZero() {
		asOf = legaldate.Today(zone)
	}

	dues := Schedule(o, asOf)

	// Payments after the reference date do not exist for this run.
	effective := make([]Payment, 0, len(payments))
	for _, p := range payments {
		if p.Date.BeforeOrEqual(asOf) {
			effective = append(effective, p)
		}
	}

	ledger := Allocate(dues, effective)

	res := Result{
		TotalOwed:     decimal.Zero,
		TotalPaid:     ledger.TotalPaid,
		Outstanding:   decimal.Zero,
		TotalPenalty:  decimal.Zero,
		TotalInterest: decimal.Zero,
		AdvanceCredit: ledger.AdvanceCredit,
		AsOf:          asOf,
	}

	for _, alloc := range ledger.Allocations {
		line := DueLine{
			Due:       alloc.Due,
			Paid:      alloc.Paid,
			Shortfall: alloc.Shortfall,
			Penalty:   decimal.Zero,
			Interest:  decimal.Zero,
		}
		if alloc.Shortfall.IsPositive() {
			line.MonthsLate = monthsElapsed(alloc.Due.Date, asOf)
			line.Penalty = alloc.Shortfall.Mul(PenaltyRate).Round(2)
			line.Interest = alloc.Shortfall.
				Mul(MonthlyInterestRate).
				Mul(decimal.NewFromInt(int64(line.MonthsLate))).
				Round(2)
		}
		line.Total = line.Shortfall.Add(line.Penalty).Add(line.Interest)

		res.TotalOwed = res.TotalOwed.Add(alloc.Due.Amount)
		res.Outstanding = res.Outstanding.Add(line.Shortfall)
		res.TotalPenalty = res.TotalPenalty.Add(line.Penalty)
		res.TotalInterest = res.TotalInterest.Add(line.Interest)
		res.Lines = append(res.Lines, line)
	}
	res.TotalDebt = res.Outstanding.Add(res.TotalPenalty).Add(res.TotalInterest)

	if next := NextDue(o, asOf); next != nil {
		d := next.Date
		res.NextDueDate = &d
		res.NextDueAmount = next.Amount
		if res.Outstanding.IsPositive() {
			months := monthsElapsed(asOf, next.Date)
			carried := res.Outstanding.
				Add(res.Outstanding.Mul(PenaltyRate).Round(2)).
				Add(res.Outstanding.
					Mul(MonthlyInterestRate).
					Mul(decimal.NewFromInt(int64(months))).
					Round(2))
			res.NextDueAmount = next.Amount.Add(carried)
		}
	}

	res.Report = Report(o, res)
	return res, nil
}

// monthsElapsed counts calendar months from one date to a later date,
// rounding partial months up. Returns zero when to is not after from.
func monthsElapsed(from, to legaldate.Date) int {
	if to.BeforeOrEqual(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() > from.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}
