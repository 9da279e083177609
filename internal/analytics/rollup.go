package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// MonthLayout is the bucket key format for monthly rollups.
const MonthLayout = "2006-01"

// PeriodTotal is the spend for one calendar bucket.
type PeriodTotal struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// MonthKey returns the YYYY-MM bucket for t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// WeekKey returns the ISO week bucket for t, formatted YYYY-Www. The year is
// the ISO year, which differs from the calendar year around New Year.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Monthly sums spend per calendar month in chronological order.
func Monthly(txs []model.Transaction) []PeriodTotal {
	return rollup(txs, MonthKey)
}

// Weekly sums spend per ISO week in chronological order.
func Weekly(txs []model.Transaction) []PeriodTotal {
	return rollup(txs, WeekKey)
}

// Both key formats sort lexically in chronological order.
func rollup(txs []model.Transaction, key func(time.Time) string) []PeriodTotal {
	buckets := make(map[string]*PeriodTotal)
	for _, tx := range txs {
		k := key(tx.Date)
		b, ok := buckets[k]
		if !ok {
			b = &PeriodTotal{Period: k}
			buckets[k] = b
		}
		b.Amount += tx.Amount
		b.Count++
	}

	out := make([]PeriodTotal, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period < out[j].Period
	})
	return out
}

// AvailableMonths lists the distinct months present, newest first.
func AvailableMonths(txs []model.Transaction) []string {
	return distinctDesc(txs, MonthKey)
}

// AvailableWeeks lists the distinct ISO weeks present, newest first.
func AvailableWeeks(txs []model.Transaction) []string {
	return distinctDesc(txs, WeekKey)
}

func distinctDesc(txs []model.Transaction, key func(time.Time) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tx := range txs {
		k := key(tx.Date)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// InMonth returns the transactions whose month key equals month.
func InMonth(txs []model.Transaction, month string) []model.Transaction {
	return selectBy(txs, func(tx model.Transaction) bool { return MonthKey(tx.Date) == month })
}

// InWeek returns the transactions whose ISO week key equals week.
func InWeek(txs []model.Transaction, week string) []model.Transaction {
	return selectBy(txs, func(tx model.Transaction) bool { return WeekKey(tx.Date) == week })
}

// CurrentMonthSpend sums spend in the calendar month containing now, as seen
// from now's location.
func CurrentMonthSpend(txs []model.Transaction, now time.Time) float64 {
	month := MonthKey(now)
	return Total(selectBy(txs, func(tx model.Transaction) bool {
		return MonthKey(tx.Date.In(now.Location())) == month
	}))
}

func selectBy(txs []model.Transaction, keep func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
