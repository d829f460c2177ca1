package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionSuggestion is a proposed recurring subscription, pending
// acceptance by a person. SampleTransactions carries the underlying
// charges for review.
type SubscriptionSuggestion struct {
	MerchantKey        string              `json:"merchant"`
	DisplayName        string              `json:"displayName"`
	AverageAmount      decimal.Decimal     `json:"averageAmount"`
	Cadence            Cadence             `json:"cadence"`
	LastChargeDate     string              `json:"lastChargeDate"`
	SampleTransactions []TransactionRecord `json:"sampleTransactions"`
}

// PeriodForCadence maps a detected cadence to a billing period. Weekly and
// unknown cadences bill monthly; only an annual cadence bills annually.
func PeriodForCadence(c Cadence) Period {
	if c == CadenceAnnual {
		return PeriodAnnual
	}
	return PeriodMonthly
}

// cadenceOffsetDays is the estimated days until the next bill per cadence.
var cadenceOffsetDays = map[Cadence]int{
	CadenceWeekly:  7,
	CadenceMonthly: 30,
	CadenceAnnual:  365,
	CadenceUnknown: 30,
}

// EstimateNextBillDate adds a cadence-dependent offset to the last charge
// date. An unparseable date is returned unchanged.
func EstimateNextBillDate(lastChargeDate string, cadence Cadence) string {
	t, err := time.Parse(DateFormat, lastChargeDate)
	if err != nil {
		return lastChargeDate
	}
	days, ok := cadenceOffsetDays[cadence]
	if !ok {
		days = 30
	}
	return t.AddDate(0, 0, days).Format(DateFormat)
}

// ToInput translates an accepted suggestion into a creation request for
// the store.
func (s SubscriptionSuggestion) ToInput() SubscriptionInput {
	return SubscriptionInput{
		Merchant:     s.DisplayName,
		Amount:       s.AverageAmount,
		Period:       PeriodForCadence(s.Cadence),
		NextBillDate: EstimateNextBillDate(s.LastChargeDate, s.Cadence),
	}
}
