package cash_flows

import (
	"sort"
	"time"

	"github.com/Alexeusss/T-Invest-Tracker/internal/clients/tinkoff"
	"github.com/Alexeusss/T-Invest-Tracker/pkg/formulas"
)

// daysPerMonth is the mean Gregorian month length used to convert an
// account's age into elapsed months.
const daysPerMonth = 30.44

// Contributions sums the contribution bucket and derives the average
// monthly pay-in over the account's lifetime at the evaluation instant.
// With no operations the elapsed months default to 1 and the average is 0.
func Contributions(ops []tinkoff.Operation, now time.Time) ContributionStats {
	stats := ContributionStats{ElapsedMonths: 1}

	earliest := time.Time{}
	for _, op := range ops {
		ts, err := time.Parse(time.RFC3339, op.Date)
		if err != nil {
			continue
		}
		if earliest.IsZero() || ts.Before(earliest) {
			earliest = ts
		}
		if Classify(op) == BucketContribution {
			stats.Total += op.Payment.Float()
		}
	}

	if !earliest.IsZero() {
		months := now.Sub(earliest).Hours() / 24 / daysPerMonth
		if months > stats.ElapsedMonths {
			stats.ElapsedMonths = months
		}
	}

	if stats.Total > 0 {
		stats.AveragePerMonth = stats.Total / stats.ElapsedMonths
	}

	return stats
}

// NetFlowSeries groups flow-relevant operations by calendar month, sums
// their payments, and produces a chronological cumulative series. Months
// with no flow-relevant operations do not appear — no gap filling.
func NetFlowSeries(ops []tinkoff.Operation) []FlowPoint {
	monthly := make(map[string]float64)
	for _, op := range ops {
		if !FlowRelevant(Classify(op)) {
			continue
		}
		ts, err := time.Parse(time.RFC3339, op.Date)
		if err != nil {
			continue
		}
		monthly[ts.UTC().Format("2006-01")] += op.Payment.Float()
	}

	months := make([]string, 0, len(monthly))
	for month := range monthly {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make([]FlowPoint, 0, len(months))
	running := 0.0
	for _, month := range months {
		running += monthly[month]
		points = append(points, FlowPoint{
			Month:      month,
			Net:        monthly[month],
			Cumulative: running,
		})
	}

	return points
}

// SummarizeFlows computes summary statistics over the per-month net flows.
func SummarizeFlows(points []FlowPoint) formulas.SeriesStats {
	nets := make([]float64, len(points))
	for i, p := range points {
		nets[i] = p.Net
	}
	return formulas.Summarize(nets)
}
