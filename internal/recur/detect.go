// Package recur detects likely recurring charges in parsed transaction
// records: same merchant, similar amount, regular cadence. All decisions
// are deterministic heuristics with no external I/O; malformed input
// yields no suggestions, never an error.
package recur

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subtrack-dev/subtrack/internal/model"
)

const (
	// minClusterSize: a single charge can never be recurring.
	minClusterSize = 2
	// minIrregularSamples: with an unknown cadence, repetition count has
	// to compensate for irregular timing.
	minIrregularSamples = 3
)

// amountTolerance is the absolute amount difference under which two
// charges are treated as the same recurring amount.
var amountTolerance = decimal.NewFromInt(1)

// Detect groups records by merchant key, sub-clusters by charge amount,
// infers cadence from inter-charge gaps, and returns one suggestion per
// plausible recurring set. Output order follows first-seen merchant order
// then cluster discovery order.
func Detect(records []model.TransactionRecord) []model.SubscriptionSuggestion {
	keys, groups := groupByMerchant(records)

	var suggestions []model.SubscriptionSuggestion
	for _, key := range keys {
		members := groups[key]
		sort.SliceStable(members, func(i, j int) bool {
			// Lexicographic works: dates are normalized to YYYY-MM-DD.
			return members[i].Date < members[j].Date
		})

		if len(members) < minClusterSize {
			continue
		}

		for _, cluster := range clusterByAmount(members) {
			if len(cluster) < minClusterSize {
				continue
			}
			cadence := estimateCadence(cluster)
			if cadence == model.CadenceUnknown && len(cluster) < minIrregularSamples {
				continue
			}
			suggestions = append(suggestions, buildSuggestion(key, cadence, cluster))
		}
	}
	return suggestions
}

// groupByMerchant partitions records by merchant key, preserving
// first-seen key order so output is reproducible across runs.
func groupByMerchant(records []model.TransactionRecord) ([]string, map[string][]model.TransactionRecord) {
	var keys []string
	groups := make(map[string][]model.TransactionRecord)
	for _, rec := range records {
		if _, ok := groups[rec.MerchantKey]; !ok {
			keys = append(keys, rec.MerchantKey)
		}
		groups[rec.MerchantKey] = append(groups[rec.MerchantKey], rec)
	}
	return keys, groups
}

// clusterByAmount greedily sub-clusters date-ordered records by amount:
// each record joins the first cluster whose seed amount is within
// tolerance, else starts a new cluster. First-fit and order-dependent;
// representatives are never rebalanced.
func clusterByAmount(records []model.TransactionRecord) [][]model.TransactionRecord {
	var clusters [][]model.TransactionRecord
	for _, rec := range records {
		placed := false
		for i, cluster := range clusters {
			seed := cluster[0].Amount
			if seed.Sub(rec.Amount).Abs().LessThanOrEqual(amountTolerance) {
				clusters[i] = append(clusters[i], rec)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []model.TransactionRecord{rec})
		}
	}
	return clusters
}

// estimateCadence classifies the average day gap between consecutive
// charges. Boundaries are exclusive: an average of exactly 20 or 40 days
// is unknown, not monthly. A date that fails to parse makes the whole
// cluster unknown rather than contributing a bogus gap.
func estimateCadence(cluster []model.TransactionRecord) model.Cadence {
	if len(cluster) < 2 {
		return model.CadenceUnknown
	}

	var totalDays float64
	for i := 1; i < len(cluster); i++ {
		prev, err := time.Parse(model.DateFormat, cluster[i-1].Date)
		if err != nil {
			return model.CadenceUnknown
		}
		curr, err := time.Parse(model.DateFormat, cluster[i].Date)
		if err != nil {
			return model.CadenceUnknown
		}
		gap := curr.Sub(prev).Hours() / 24
		if gap < 0 {
			gap = -gap
		}
		totalDays += gap
	}

	avg := totalDays / float64(len(cluster)-1)
	switch {
	case avg > 20 && avg < 40:
		return model.CadenceMonthly
	case avg > 5 && avg < 10:
		return model.CadenceWeekly
	default:
		return model.CadenceUnknown
	}
}
