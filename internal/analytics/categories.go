// Package analytics computes spending aggregates over normalized
// transactions. Every function is pure: inputs are never mutated and
// repeated calls over the same slice return identical results.
package analytics

import (
	"sort"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// CategoryTotal is the spend for one category.
type CategoryTotal struct {
	Category   model.Category `json:"category"`
	Amount     float64        `json:"amount"`
	Percentage float64        `json:"percentage"`
	Count      int            `json:"count"`
}

// TypeTotal is the spend for one raw transaction type.
type TypeTotal struct {
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

// Total sums the amount of every transaction.
func Total(txs []model.Transaction) float64 {
	var total float64
	for _, tx := range txs {
		total += tx.Amount
	}
	return total
}

// ByCategory groups spend by category. Groups are ordered by descending
// amount; equal amounts keep the order in which their category first
// appeared in txs.
func ByCategory(txs []model.Transaction) []CategoryTotal {
	index := make(map[model.Category]int)
	var out []CategoryTotal
	var total float64

	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category})
		}
		out[i].Amount += tx.Amount
		out[i].Count++
		total += tx.Amount
	}

	for i := range out {
		out[i].Percentage = percentOf(out[i].Amount, total)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})

	return out
}

// ByType breaks spend inside one category down by transaction type, ordered
// the same way as ByCategory.
func ByType(txs []model.Transaction, category model.Category) []TypeTotal {
	index := make(map[string]int)
	var out []TypeTotal
	var total float64

	for _, tx := range txs {
		if tx.Category != category {
			continue
		}
		i, ok := index[tx.Type]
		if !ok {
			i = len(out)
			index[tx.Type] = i
			out = append(out, TypeTotal{Type: tx.Type})
		}
		out[i].Amount += tx.Amount
		out[i].Count++
		total += tx.Amount
	}

	for i := range out {
		out[i].Percentage = percentOf(out[i].Amount, total)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})

	return out
}

// percentOf returns part as a percentage of whole, or 0 when whole is not
// positive. Multiplying first keeps exact boundaries such as 80 of 100.
func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part * 100 / whole
}
