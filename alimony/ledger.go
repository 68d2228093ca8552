/*
ledger.go - Immutable payment-allocation fold

PURPOSE:
  Applies the payment pool against installments in STRICT due-date
  order. Payment dates decide nothing about allocation: a transfer made
  in February first satisfies an unpaid January installment before any
  of it reaches February. Whatever is left after the last installment
  is advance credit.

  The fold builds a fresh allocation ledger on every call - inputs are
  never marked or mutated, so repeated and concurrent invocations over
  the same slices are safe.
*/
package alimony

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Allocation records how one installment was settled.
type Allocation struct {
	Due       DueDate
	Paid      decimal.Decimal
	Shortfall decimal.Decimal
}

// LedgerResult is the outcome of one allocation fold.
type LedgerResult struct {
	Allocations   []Allocation
	TotalPaid     decimal.Decimal
	AdvanceCredit decimal.Decimal
}

// Allocate folds the payments over the installments.
func Allocate(dues []DueDate, payments []Payment) LedgerResult {
	sorted := make([]Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	pool := decimal.Zero
	for _, p := range sorted {
		pool = pool.Add(p.Amount)
	}
	totalPaid := pool

	allocations := make([]Allocation, 0, len(dues))
	for _, due := range dues {
		applied := decimal.Min(pool, due.Amount)
		pool = pool.Sub(applied)
		allocations = append(allocations, Allocation{
			Due:       due,
			Paid:      applied,
			Shortfall: due.Amount.Sub(applied),
		})
	}

	return LedgerResult{
		Allocations:   allocations,
		TotalPaid:     totalPaid,
		AdvanceCredit: pool,
	}
}
