package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// DateRange is an inclusive range of calendar days. A zero Start or End
// leaves that side open.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Preset names a common trailing range.
type Preset string

// Presets.
const (
	PresetLast7   Preset = "7d"
	PresetLast30  Preset = "30d"
	PresetLast90  Preset = "90d"
	PresetAllTime Preset = "all"
)

// Presets lists the supported presets.
func Presets() []Preset {
	return []Preset{PresetLast7, PresetLast30, PresetLast90, PresetAllTime}
}

func joinPresets(sep string) string {
	names := make([]string, 0, len(Presets()))
	for _, p := range Presets() {
		names = append(names, string(p))
	}
	return strings.Join(names, sep)
}

// PresetRange returns the range a preset covers, ending on the day of now.
func PresetRange(p Preset, now time.Time) (DateRange, error) {
	var days int
	switch p {
	case PresetLast7:
		days = 7
	case PresetLast30:
		days = 30
	case PresetLast90:
		days = 90
	case PresetAllTime:
		return DateRange{}, nil
	default:
		return DateRange{}, fmt.Errorf("unknown preset %q, want one of %s", p, joinPresets(", "))
	}
	end := day(now)
	return DateRange{Start: end.AddDate(0, 0, -days), End: end}, nil
}

// Validate rejects ranges whose start falls after their end.
func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && day(r.Start).After(day(r.End)) {
		return fmt.Errorf("start %s is after end %s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	}
	return nil
}

// IsZero reports whether the range is unbounded on both sides.
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls on a day inside the range. Days are
// taken in the location of each bound.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && day(t.In(r.Start.Location())).Before(day(r.Start)) {
		return false
	}
	if !r.End.IsZero() && day(t.In(r.End.Location())).After(day(r.End)) {
		return false
	}
	return true
}

// Label formats the range for display.
func (r DateRange) Label() string {
	switch {
	case r.IsZero():
		return "All time"
	case r.Start.IsZero():
		return "Through " + r.End.Format("Jan 02, 2006")
	case r.End.IsZero():
		return "Since " + r.Start.Format("Jan 02, 2006")
	default:
		return r.Start.Format("Jan 02") + " - " + r.End.Format("Jan 02, 2006")
	}
}

// Filter returns the transactions inside r, preserving order.
func Filter(txs []model.Transaction, r DateRange) []model.Transaction {
	return selectBy(txs, func(tx model.Transaction) bool { return r.Contains(tx.Date) })
}

// FilterCategories keeps transactions in any of cats. No categories keeps all.
func FilterCategories(txs []model.Transaction, cats ...model.Category) []model.Transaction {
	if len(cats) == 0 {
		return selectBy(txs, func(model.Transaction) bool { return true })
	}
	want := make(map[model.Category]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}
	return selectBy(txs, func(tx model.Transaction) bool { return want[tx.Category] })
}

// Bounds returns the earliest and latest transaction dates.
func Bounds(txs []model.Transaction) (first, last time.Time, ok bool) {
	for i, tx := range txs {
		if i == 0 || tx.Date.Before(first) {
			first = tx.Date
		}
		if i == 0 || tx.Date.After(last) {
			last = tx.Date
		}
	}
	return first, last, len(txs) > 0
}

// SortByDateDesc returns a newest-first copy of txs.
func SortByDateDesc(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// day truncates t to midnight in its own location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
