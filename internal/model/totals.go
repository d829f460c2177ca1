package model

import (
	"github.com/shopspring/decimal"
)

// Totals aggregates the active subscriptions of one owner.
type Totals struct {
	Monthly decimal.Decimal `json:"monthly"`
	Annual  decimal.Decimal `json:"annual"`
}

var twelve = decimal.NewFromInt(12)

// ComputeTotals sums active subscriptions into a monthly equivalent
// (annual amounts contribute 1/12th) and the matching annual figure.
// Both are rounded to 2 decimal places.
func ComputeTotals(subs []Subscription) Totals {
	monthly := decimal.Zero
	for _, s := range subs {
		if s.Status != StatusActive {
			continue
		}
		if s.Period == PeriodAnnual {
			monthly = monthly.Add(s.Amount.Div(twelve))
		} else {
			monthly = monthly.Add(s.Amount)
		}
	}
	return Totals{
		Monthly: monthly.Round(2),
		Annual:  monthly.Mul(twelve).Round(2),
	}
}
