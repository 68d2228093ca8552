/*
Package alimony implements the alimony/child-support arrears calculator.

PURPOSE:
  Given a recurring monthly obligation and a ledger of real-world
  payments, compute what is owed, what is late, and the statutory
  charges on each unpaid installment, plus the pt-BR demonstrativo text
  filed with the enforcement petition.

KEY CONCEPTS:
  - Obligation: fixed monthly amount due on a day of the month
  - DueDate: one derived monthly installment, weekend-shifted
  - Payment: one real-world transfer; partial and over-payments allowed
  - Allocation: how the payment pool was applied, strictly in due-date
    order (a later payment retroactively satisfies an earlier unpaid
    installment before anything is applied forward)

CHARGES:
  Each installment's unpaid remainder accrues a flat 2% penalty plus
  simple interest of 1% per elapsed month (partial months round up),
  computed on that installment's remainder only - never compounded
  across installments.

PRECISION:
  All money is decimal.Decimal. Conservation holds exactly:
  totalOwed = totalPaid + outstanding - advanceCredit.

SEE ALSO:
  - schedule.go: due-date generation
  - ledger.go: immutable payment-allocation fold
  - arrears.go: Compute, the engine entry point
  - report.go: pt-BR narrative
*/
package alimony

import (
	"errors"
	"fmt"

	"github.com/advocato/penal-engine/legaldate"
	"github.com/shopspring/decimal"
)

// =============================================================================
// STATUTORY RATES
// =============================================================================

var (
	// PenaltyRate is the flat late penalty (multa) on an unpaid remainder.
	PenaltyRate = decimal.NewFromFloat(0.02)

	// MonthlyInterestRate is the simple monthly interest (juros de mora).
	MonthlyInterestRate = decimal.NewFromFloat(0.01)
)

// =============================================================================
// INPUT TYPES
// =============================================================================

// Obligation is the recurring support obligation.
type Obligation struct {
	MonthlyAmount decimal.Decimal
	DueDay        int // day of month, clamped to month length
	Start         legaldate.Date
	End           *legaldate.Date // nil = still in force
}

var (
	ErrInvalidAmount  = errors.New("monthly amount must be positive")
	ErrInvalidDueDay  = errors.New("due day must be between 1 and 31")
	ErrMissingStart   = errors.New("obligation start date is required")
	ErrInvalidPeriod  = errors.New("obligation end before start")
	ErrInvalidPayment = errors.New("invalid payment")
)

// Validate rejects malformed obligations before any computation.
func (o Obligation) Validate() error {
	if !o.MonthlyAmount.IsPositive() {
		return ErrInvalidAmount
	}
	if o.DueDay < 1 || o.DueDay > 31 {
		return ErrInvalidDueDay
	}
	if o.Start.IsZero() {
		return ErrMissingStart
	}
	if o.End != nil && o.End.Before(o.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Payment is one real-world transfer against the obligation.
type Payment struct {
	Date   legaldate.Date
	Amount decimal.Decimal
	Note   string
}

// Validate rejects undated or non-positive payments.
func (p Payment) Validate() error {
	if p.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidPayment)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("%w: non-positive amount", ErrInvalidPayment)
	}
	return nil
}

// DueDate is one derived monthly installment.
type DueDate struct {
	// Raw is the nominal due date (due day clamped to month length).
	Raw legaldate.Date

	// Date is the effective due date after the weekend shift
	// (Saturday +2, Sunday +1).
	Date legaldate.Date

	Amount decimal.Decimal
}
