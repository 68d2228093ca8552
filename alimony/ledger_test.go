package alimony_test

import (
	"testing"
	"time"

	"github.com/advocato/penal-engine/alimony"
	"github.com/advocato/penal-engine/legaldate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func brl(n float64) decimal.Decimal { return decimal.NewFromFloat(n) }

func date(y int, m time.Month, d int) legaldate.Date { return legaldate.New(y, m, d) }

func due(y int, m time.Month, d int, amount float64) alimony.DueDate {
	raw := date(y, m, d)
	return alimony.DueDate{Raw: raw, Date: raw.NextBusinessDay(), Amount: brl(amount)}
}

// =============================================================================
// ALLOCATION FOLD
// =============================================================================

func TestAllocate_DueDateOrderNotPaymentOrder(t *testing.T) {
	// GIVEN: Jan/Feb/Mar installments of 1000 and a single payment of
	//        1500 dated March
	// THEN: January is fully satisfied retroactively, February gets the
	//       remainder, March gets nothing

	dues := []alimony.DueDate{
		due(2024, time.January, 5, 1000),
		due(2024, time.February, 5, 1000),
		due(2024, time.March, 5, 1000),
	}
	payments := []alimony.Payment{{Date: date(2024, time.March, 1), Amount: brl(1500)}}

	res := alimony.Allocate(dues, payments)
	require.Len(t, res.Allocations, 3)

	assert.True(t, res.Allocations[0].Shortfall.IsZero(), "January must be fully paid")
	assert.True(t, res.Allocations[1].Paid.Equal(brl(500)), "February gets the remainder")
	assert.True(t, res.Allocations[1].Shortfall.Equal(brl(500)))
	assert.True(t, res.Allocations[2].Paid.IsZero(), "March gets nothing")
	assert.True(t, res.AdvanceCredit.IsZero())
}

func TestAllocate_OverpaymentBecomesAdvanceCredit(t *testing.T) {
	dues := []alimony.DueDate{
		due(2024, time.January, 5, 1000),
		due(2024, time.February, 5, 1000),
	}
	payments := []alimony.Payment{
		{Date: date(2024, time.January, 4), Amount: brl(1800)},
		{Date: date(2024, time.February, 3), Amount: brl(700)},
	}

	res := alimony.Allocate(dues, payments)
	require.Len(t, res.Allocations, 2)

	assert.True(t, res.Allocations[0].Shortfall.IsZero())
	assert.True(t, res.Allocations[1].Shortfall.IsZero())
	assert.True(t, res.AdvanceCredit.Equal(brl(500)), "leftover 500 carries forward, got %s", res.AdvanceCredit)
}

func TestAllocate_InputsNeverMutated(t *testing.T) {
	// The fold builds a new ledger; the payment slice must come back
	// byte-identical so repeated invocations stay safe.

	dues := []alimony.DueDate{due(2024, time.January, 5, 1000)}
	payments := []alimony.Payment{
		{Date: date(2024, time.February, 1), Amount: brl(400)},
		{Date: date(2024, time.January, 1), Amount: brl(300)},
	}

	first := alimony.Allocate(dues, payments)
	second := alimony.Allocate(dues, payments)

	assert.True(t, payments[0].Amount.Equal(brl(400)), "payment amount mutated")
	assert.True(t, payments[0].Date.Equal(date(2024, time.February, 1)), "payment order mutated")
	assert.True(t, first.Allocations[0].Paid.Equal(second.Allocations[0].Paid))
	assert.True(t, first.AdvanceCredit.Equal(second.AdvanceCredit))
}

func TestAllocate_ConservationLaw(t *testing.T) {
	// totalOwed = totalPaid + outstanding - advanceCredit, exactly,
	// for arbitrary distributions.

	dues := []alimony.DueDate{
		due(2024, time.January, 5, 850.50),
		due(2024, time.February, 5, 850.50),
		due(2024, time.March, 5, 850.50),
	}
	distributions := [][]alimony.Payment{
		nil,
		{{Date: date(2024, time.January, 5), Amount: brl(850.50)}},
		{{Date: date(2024, time.March, 20), Amount: brl(2000)}},
		{{Date: date(2024, time.January, 1), Amount: brl(3000)}},
		{
			{Date: date(2024, time.January, 5), Amount: brl(100.25)},
			{Date: date(2024, time.February, 5), Amount: brl(100.25)},
			{Date: date(2024, time.March, 5), Amount: brl(100.25)},
		},
	}

	for i, payments := range distributions {
		res := alimony.Allocate(dues, payments)

		totalOwed := decimal.Zero
		outstanding := decimal.Zero
		for _, a := range res.Allocations {
			totalOwed = totalOwed.Add(a.Due.Amount)
			outstanding = outstanding.Add(a.Shortfall)
		}
		rhs := res.TotalPaid.Add(outstanding).Sub(res.AdvanceCredit)
		assert.True(t, totalOwed.Equal(rhs),
			"distribution %d: owed %s != paid %s + outstanding %s - advance %s",
			i, totalOwed, res.TotalPaid, outstanding, res.AdvanceCredit)
	}
}
