// Package export writes transaction sets as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/model"
)

// Format is an export file format.
type Format string

// Formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or json)", s)
	}
}

// Header is the CSV header row.
var Header = []string{"DATE", "ITEM", "CATEGORY", "SOURCE", "AMOUNT"}

// Record is the JSON shape of one exported transaction.
type Record struct {
	UniverseID *int64  `json:"universe_id"`
	Date       string  `json:"date"`
	Item       string  `json:"item"`
	Type       string  `json:"type"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
}

// Options selects what gets exported.
type Options struct {
	Categories []model.Category
	Format     Format
}

// Prepare applies the category filter and orders newest first.
func Prepare(txs []model.Transaction, cats []model.Category) []model.Transaction {
	return analytics.SortByDateDesc(analytics.FilterCategories(txs, cats...))
}

// Write renders txs to w in the requested format.
func Write(w io.Writer, txs []model.Transaction, opts Options) (int, error) {
	rows := Prepare(txs, opts.Categories)

	switch opts.Format {
	case FormatCSV:
		return len(rows), writeCSV(w, rows)
	case FormatJSON:
		return len(rows), writeJSON(w, rows)
	default:
		return 0, fmt.Errorf("unsupported export format %q", opts.Format)
	}
}

// WriteFile writes the export to path, creating parent directories.
func WriteFile(path string, txs []model.Transaction, opts Options) (n int, err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return 0, fmt.Errorf("creating export directory: %w", err)
		}
	}

	file, err := os.Create(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return 0, fmt.Errorf("creating export file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing export file: %w", closeErr)
		}
	}()

	return Write(file, txs, opts)
}

func writeCSV(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, tx := range txs {
		record := []string{
			cli.FormatDate(tx.Date),
			tx.Item,
			tx.Category.String(),
			tx.Type,
			fmt.Sprintf("-%d R$", int64(tx.Amount)),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, txs []model.Transaction) error {
	records := make([]Record, len(txs))
	for i, tx := range txs {
		records[i] = Record{
			Date:       cli.FormatDate(tx.Date),
			Item:       tx.Item,
			Type:       tx.Type,
			Amount:     tx.Amount,
			Category:   tx.Category.String(),
			UniverseID: tx.ExternalID,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding json export: %w", err)
	}
	return nil
}
