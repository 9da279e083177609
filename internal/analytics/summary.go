package analytics

import (
	"sort"
	"time"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// Summary is the headline view of a transaction set.
type Summary struct {
	First       time.Time `json:"first"`
	Last        time.Time `json:"last"`
	Total       float64   `json:"total"`
	Average     float64   `json:"average"`
	Count       int       `json:"count"`
	UniqueItems int       `json:"unique_items"`
}

// ItemTotal is the spend on one item.
type ItemTotal struct {
	Item       string  `json:"item"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Purchases  int     `json:"purchases"`
}

// CumulativePoint is the running total after one transaction.
type CumulativePoint struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Total  float64   `json:"total"`
}

// Summarize computes the headline figures.
func Summarize(txs []model.Transaction) Summary {
	s := Summary{Count: len(txs), Total: Total(txs)}
	if s.Count == 0 {
		return s
	}
	s.Average = s.Total / float64(s.Count)
	s.First, s.Last, _ = Bounds(txs)

	items := make(map[string]struct{})
	for _, tx := range txs {
		items[tx.Item] = struct{}{}
	}
	s.UniqueItems = len(items)
	return s
}

// TopItems returns the n items with the highest spend. Equal amounts keep
// first-appearance order. n <= 0 returns every item.
func TopItems(txs []model.Transaction, n int) []ItemTotal {
	index := make(map[string]int)
	var out []ItemTotal
	total := Total(txs)

	for _, tx := range txs {
		i, ok := index[tx.Item]
		if !ok {
			i = len(out)
			index[tx.Item] = i
			out = append(out, ItemTotal{Item: tx.Item})
		}
		out[i].Amount += tx.Amount
		out[i].Purchases++
	}

	for i := range out {
		out[i].Percentage = percentOf(out[i].Amount, total)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Cumulative returns the running spend total in date order.
func Cumulative(txs []model.Transaction) []CumulativePoint {
	sorted := make([]model.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := make([]CumulativePoint, len(sorted))
	var running float64
	for i, tx := range sorted {
		running += tx.Amount
		out[i] = CumulativePoint{Date: tx.Date, Amount: tx.Amount, Total: running}
	}
	return out
}
