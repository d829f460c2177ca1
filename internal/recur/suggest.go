package recur

import (
	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/merchant"
	"github.com/subtrack-dev/subtrack/internal/model"
)

// buildSuggestion reduces an accepted cluster into one suggestion. The
// cluster is already date-sorted, so the last member carries the most
// recent charge date.
func buildSuggestion(key string, cadence model.Cadence, cluster []model.TransactionRecord) model.SubscriptionSuggestion {
	sum := decimal.Zero
	for _, rec := range cluster {
		sum = sum.Add(rec.Amount)
	}
	// Round uses half-away-from-zero; amounts are non-negative so this
	// is plain half-up.
	avg := sum.Div(decimal.NewFromInt(int64(len(cluster)))).Round(2)

	return model.SubscriptionSuggestion{
		MerchantKey:        key,
		DisplayName:        bestDisplayName(cluster),
		AverageAmount:      avg,
		Cadence:            cadence,
		LastChargeDate:     cluster[len(cluster)-1].Date,
		SampleTransactions: cluster,
	}
}

// bestDisplayName picks the most frequent raw merchant string, title-cased.
// Ties break toward the string seen first in date order, keeping the
// choice deterministic. Falls back to the first member's raw text, then
// to "Unknown".
func bestDisplayName(cluster []model.TransactionRecord) string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, rec := range cluster {
		if _, ok := counts[rec.MerchantRaw]; !ok {
			firstSeen[rec.MerchantRaw] = i
		}
		counts[rec.MerchantRaw]++
	}

	winner := ""
	winnerCount := 0
	for raw, n := range counts {
		if n > winnerCount || (n == winnerCount && firstSeen[raw] < firstSeen[winner]) {
			winner = raw
			winnerCount = n
		}
	}

	if winner == "" && len(cluster) > 0 {
		winner = cluster[0].MerchantRaw
	}
	if name := merchant.TitleCase(winner); name != "" {
		return name
	}
	return "Unknown"
}
