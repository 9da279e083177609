package classification

import (
	"math"
	"time"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// Timestamp layouts used by the transaction endpoint, tried in order.
const (
	LayoutFractional = "2006-01-02T15:04:05.999999999Z"
	LayoutSeconds    = "2006-01-02T15:04:05Z"
)

// ParseDate parses a transaction timestamp. When neither known layout
// matches it returns now and false; an unparsable date is never an error.
func ParseDate(s string, now time.Time) (time.Time, bool) {
	for _, layout := range []string{LayoutFractional, LayoutSeconds} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return now, false
}

// Classify normalizes one raw record. Missing fields are defaulted and the
// substitution is recorded in Transaction.Defaults.
func (c *Classifier) Classify(raw model.RawTransaction, now time.Time) model.Transaction {
	var defaults model.Defaults

	item := model.UnknownLabel
	if raw.Details.Name != nil {
		item = *raw.Details.Name
	} else {
		defaults |= model.DefaultedItem
	}

	txType := model.UnknownLabel
	if raw.Details.Type != nil {
		txType = *raw.Details.Type
	} else {
		defaults |= model.DefaultedType
	}

	var amount float64
	if raw.Currency.Amount != nil && !math.IsNaN(*raw.Currency.Amount) {
		amount = math.Abs(*raw.Currency.Amount)
	} else {
		defaults |= model.DefaultedAmount
	}

	date, ok := ParseDate(raw.Created, now)
	if !ok {
		defaults |= model.DefaultedDate
	}

	return model.Transaction{
		Date:       date,
		Item:       item,
		Type:       txType,
		Amount:     amount,
		Category:   c.Categorize(txType, item),
		ExternalID: raw.Details.ID,
		Defaults:   defaults,
	}
}

// ClassifyAll normalizes raws in order. The returned slice has the same
// length and order as the input.
func (c *Classifier) ClassifyAll(raws []model.RawTransaction, now time.Time) []model.Transaction {
	out := make([]model.Transaction, 0, len(raws))
	for _, raw := range raws {
		out = append(out, c.Classify(raw, now))
	}
	return out
}
