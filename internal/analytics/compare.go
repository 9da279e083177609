package analytics

import (
	"github.com/Veraticus/robux-must-flow/internal/model"
)

// Direction is the sign of a percent change.
type Direction string

// Directions.
const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
	NoChange Direction = "no change"
)

// Period is a labelled subset of transactions to compare.
type Period struct {
	Label        string
	Transactions []model.Transaction
}

// PeriodStats summarizes one side of a comparison.
type PeriodStats struct {
	Label   string  `json:"label"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Delta is the change of one metric from the baseline to the compared period.
type Delta struct {
	Direction Direction `json:"direction"`
	Percent   float64   `json:"percent"`
}

// CategoryDelta puts both periods' spend for one category side by side.
type CategoryDelta struct {
	Category model.Category `json:"category"`
	First    float64        `json:"first"`
	Second   float64        `json:"second"`
	Change   Delta          `json:"change"`
}

// Comparison is the result of Compare.
type Comparison struct {
	First      PeriodStats     `json:"first"`
	Second     PeriodStats     `json:"second"`
	Total      Delta           `json:"total"`
	Count      Delta           `json:"count"`
	Average    Delta           `json:"average"`
	Categories []CategoryDelta `json:"categories"`
}

// Empty reports whether either side has no transactions.
func (c Comparison) Empty() bool {
	return c.First.Count == 0 || c.Second.Count == 0
}

// Compare measures second against first. The periods are not checked for
// overlap. Every percent change against a zero baseline is reported as 0.
func Compare(first, second Period) Comparison {
	a := stats(first)
	b := stats(second)

	return Comparison{
		First:      a,
		Second:     b,
		Total:      change(a.Total, b.Total),
		Count:      change(float64(a.Count), float64(b.Count)),
		Average:    change(a.Average, b.Average),
		Categories: categoryDeltas(first.Transactions, second.Transactions),
	}
}

func stats(p Period) PeriodStats {
	s := PeriodStats{
		Label: p.Label,
		Total: Total(p.Transactions),
		Count: len(p.Transactions),
	}
	if s.Count > 0 {
		s.Average = s.Total / float64(s.Count)
	}
	return s
}

func change(base, next float64) Delta {
	pct := 0.0
	if base > 0 {
		pct = (next - base) / base * 100
	}
	return Delta{Percent: pct, Direction: directionOf(pct)}
}

func directionOf(pct float64) Direction {
	switch {
	case pct > 0:
		return Increase
	case pct < 0:
		return Decrease
	default:
		return NoChange
	}
}

// categoryDeltas lists every category present in either period, in the
// canonical category order.
func categoryDeltas(first, second []model.Transaction) []CategoryDelta {
	sumA := sumByCategory(first)
	sumB := sumByCategory(second)

	var out []CategoryDelta
	for _, c := range model.Categories() {
		a, okA := sumA[c]
		b, okB := sumB[c]
		if !okA && !okB {
			continue
		}
		out = append(out, CategoryDelta{
			Category: c,
			First:    a,
			Second:   b,
			Change:   change(a, b),
		})
	}
	return out
}

func sumByCategory(txs []model.Transaction) map[model.Category]float64 {
	out := make(map[model.Category]float64)
	for _, tx := range txs {
		out[tx.Category] += tx.Amount
	}
	return out
}

// CompareMonths compares two YYYY-MM buckets.
func CompareMonths(txs []model.Transaction, first, second string) Comparison {
	return Compare(
		Period{Label: first, Transactions: InMonth(txs, first)},
		Period{Label: second, Transactions: InMonth(txs, second)},
	)
}

// CompareWeeks compares two ISO week buckets.
func CompareWeeks(txs []model.Transaction, first, second string) Comparison {
	return Compare(
		Period{Label: first, Transactions: InWeek(txs, first)},
		Period{Label: second, Transactions: InWeek(txs, second)},
	)
}

// CompareRanges compares two date ranges, labelled by their span.
func CompareRanges(txs []model.Transaction, first, second DateRange) Comparison {
	return Compare(
		Period{Label: first.Label(), Transactions: Filter(txs, first)},
		Period{Label: second.Label(), Transactions: Filter(txs, second)},
	)
}

// LatestPair picks the two newest keys from a newest-first list and returns
// them oldest first, so a comparison reads from the earlier period to the
// later one.
func LatestPair(newestFirst []string) (first, second string, ok bool) {
	if len(newestFirst) < 2 {
		return "", "", false
	}
	return newestFirst[1], newestFirst[0], true
}
