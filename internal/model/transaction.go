package model

import (
	"time"
)

// UnknownLabel is substituted for a missing item name or transaction type.
const UnknownLabel = "Unknown"

// Defaults records which fields of a Transaction were filled with fallback
// values because the source record was missing or malformed.
type Defaults uint8

// Defaulted field flags.
const (
	DefaultedItem Defaults = 1 << iota
	DefaultedType
	DefaultedAmount
	DefaultedDate
)

// Has reports whether every flag in f is set.
func (d Defaults) Has(f Defaults) bool {
	return d&f == f
}

// Transaction is a purchase normalized into our own schema.
type Transaction struct {
	Date       time.Time `json:"date"`
	ExternalID *int64    `json:"external_id,omitempty"` // Roblox asset/universe id, pass-through only
	Item       string    `json:"item"`
	Type       string    `json:"type"`
	Category   Category  `json:"category"`
	Amount     float64   `json:"amount"` // always >= 0, purchases are outflows
	Defaults   Defaults  `json:"-"`
}

// Month returns the calendar month bucket key (YYYY-MM).
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// DateOnly truncates the timestamp to midnight in its own location.
func (t Transaction) DateOnly() time.Time {
	y, m, d := t.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Date.Location())
}
