package roblox

import (
	"context"
	"log/slog"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

// DefaultMaxTransactions is the fetch ceiling when none is configured.
const DefaultMaxTransactions = 500

// StopReason records which condition ended pagination.
type StopReason string

// Stop reasons.
const (
	StopMaxCount           StopReason = "max_count"
	StopEmptyPage          StopReason = "empty_page"
	StopNoCursor           StopReason = "no_cursor"
	StopPageFailed         StopReason = "page_failed"
	StopIdentityUnresolved StopReason = "identity_unresolved"
	StopCanceled           StopReason = "canceled"
)

// Describe returns a short human readable explanation.
func (s StopReason) Describe() string {
	switch s {
	case StopMaxCount:
		return "reached the requested transaction count"
	case StopEmptyPage:
		return "received an empty page"
	case StopNoCursor:
		return "reached the end of the history"
	case StopPageFailed:
		return "a page request failed"
	case StopIdentityUnresolved:
		return "could not resolve the account for this credential"
	case StopCanceled:
		return "the fetch was canceled"
	default:
		return string(s)
	}
}

// FetchResult is the outcome of FetchAll. Transactions are in page order and
// never exceed the requested count.
type FetchResult struct {
	Identity     model.Identity
	Stop         StopReason
	Transactions []model.RawTransaction
	Pages        int
}

// Partial reports whether pagination ended on a failure rather than on one
// of its natural end conditions. A partial result is still valid data.
func (r FetchResult) Partial() bool {
	switch r.Stop {
	case StopPageFailed, StopIdentityUnresolved, StopCanceled:
		return true
	default:
		return false
	}
}

// ProgressFunc receives the running record count after each page.
type ProgressFunc func(fetched, target int)

// Fetcher pages through the purchase history.
type Fetcher struct {
	source   PageSource
	logger   *slog.Logger
	progress ProgressFunc
}

// NewFetcher creates a fetcher over source.
func NewFetcher(source PageSource, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{source: source, logger: logger}
}

// WithProgress returns a copy of the fetcher that reports progress to fn.
func (f *Fetcher) WithProgress(fn ProgressFunc) *Fetcher {
	cp := *f
	cp.progress = fn
	return &cp
}

// FetchAll pages through purchases until maxCount records are collected,
// a page fails, a page is empty, or no next cursor is returned. Pages are
// requested strictly in sequence and there is no retry at this level: the
// first failed page ends pagination and what was collected is returned.
func (f *Fetcher) FetchAll(ctx context.Context, maxCount int) FetchResult {
	if maxCount <= 0 {
		return FetchResult{Stop: StopMaxCount}
	}

	identity, res := f.source.Identity(ctx)
	if !res.OK() {
		f.logger.Warn("Could not resolve account for credential",
			"status", res.Status(),
			"error", res.Cause())
		return FetchResult{Stop: StopIdentityUnresolved}
	}

	result := FetchResult{
		Identity:     identity,
		Transactions: make([]model.RawTransaction, 0, min(maxCount, MaxPageSize)),
	}

	cursor := ""
	for {
		if len(result.Transactions) >= maxCount {
			result.Stop = StopMaxCount
			break
		}
		if ctx.Err() != nil {
			result.Stop = StopCanceled
			break
		}

		remaining := maxCount - len(result.Transactions)
		page, res := f.source.TransactionPage(ctx, identity.ID, min(MaxPageSize, remaining), cursor)
		if !res.OK() {
			f.logger.Warn("Transaction page request failed, returning partial history",
				"page", result.Pages+1,
				"fetched", len(result.Transactions),
				"status", res.Status(),
				"error", res.Cause())
			result.Stop = StopPageFailed
			break
		}
		if len(page.Data) == 0 {
			result.Stop = StopEmptyPage
			break
		}

		result.Pages++
		result.Transactions = append(result.Transactions, page.Data...)
		if f.progress != nil {
			f.progress(min(len(result.Transactions), maxCount), maxCount)
		}

		f.logger.Debug("Fetched transaction page",
			"page", result.Pages,
			"records", len(page.Data),
			"total", len(result.Transactions))

		cursor = page.NextCursor()
		if cursor == "" {
			result.Stop = StopNoCursor
			break
		}
	}

	if len(result.Transactions) > maxCount {
		result.Transactions = result.Transactions[:maxCount]
	}

	return result
}
