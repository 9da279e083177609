package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Veraticus/robux-must-flow/internal/classification"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/roblox"
)

// Fetcher pulls raw purchase history.
type Fetcher interface {
	FetchAll(ctx context.Context, maxCount int) roblox.FetchResult
}

// Snapshot is the transaction set a Load produced or found in the cache.
type Snapshot struct {
	FetchedAt    time.Time
	Stop         roblox.StopReason
	Transactions []model.Transaction
	Pages        int
	Cached       bool
}

// Partial reports whether the snapshot came from a fetch that ended early.
func (s Snapshot) Partial() bool {
	return roblox.FetchResult{Stop: s.Stop}.Partial()
}

// Session ties the state to the fetch and classify pipeline.
type Session struct {
	fetcher    Fetcher
	classifier *classification.Classifier
	state      *State
	logger     *slog.Logger
	now        func() time.Time
	group      singleflight.Group
	maxCount   int
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithClassifier overrides the default rule set.
func WithClassifier(c *classification.Classifier) Option {
	return func(s *Session) { s.classifier = c }
}

// WithMaxTransactions sets the fetch ceiling.
func WithMaxTransactions(n int) Option {
	return func(s *Session) { s.maxCount = n }
}

// New creates a session over state that loads through fetcher.
func New(state *State, fetcher Fetcher, logger *slog.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		state:      state,
		fetcher:    fetcher,
		classifier: classification.Default(),
		logger:     logger.With("component", "session"),
		now:        time.Now,
		maxCount:   roblox.DefaultMaxTransactions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the underlying state.
func (s *Session) State() *State {
	return s.state
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time {
	return s.now()
}

// Load returns the cached set when it is still fresh, otherwise fetches,
// classifies and caches a new one. force skips the freshness check.
// Concurrent loads share one fetch.
//
// A fetch that stops on a failed page still replaces the cache with what it
// collected, and later cache hits keep reporting it as partial. A canceled
// fetch is returned but never cached. An unresolved account is an error and
// leaves the cache untouched.
func (s *Session) Load(ctx context.Context, force bool) (Snapshot, error) {
	cache := s.state.Cache()
	if e, ok := cache.Entry(); ok && !force && cache.Valid(s.now()) {
		return Snapshot{
			Transactions: e.Transactions,
			FetchedAt:    e.FetchedAt,
			Stop:         e.Stop,
			Pages:        e.Pages,
			Cached:       true,
		}, nil
	}

	v, err, _ := s.group.Do("load", func() (any, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

func (s *Session) fetch(ctx context.Context) (Snapshot, error) {
	started := s.now()
	res := s.fetcher.FetchAll(ctx, s.maxCount)

	if res.Stop == roblox.StopIdentityUnresolved {
		return Snapshot{}, common.NewUserError(
			"Could not sign in with this cookie. It may have expired.",
			common.ErrIdentityUnresolved)
	}
	if res.Stop == roblox.StopCanceled && len(res.Transactions) == 0 {
		return Snapshot{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	}

	s.state.SetIdentity(res.Identity)

	fetchedAt := s.now()
	txs := s.classifier.ClassifyAll(res.Transactions, fetchedAt)
	if res.Stop != roblox.StopCanceled {
		s.state.Cache().Store(Entry{
			Transactions: txs,
			FetchedAt:    fetchedAt,
			Stop:         res.Stop,
			Pages:        res.Pages,
		})
	}

	level := slog.LevelInfo
	if res.Partial() {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "Loaded purchase history",
		"transactions", len(txs),
		"pages", res.Pages,
		"stop", res.Stop,
		"duration", fetchedAt.Sub(started))

	return Snapshot{
		Transactions: txs,
		FetchedAt:    fetchedAt,
		Stop:         res.Stop,
		Pages:        res.Pages,
	}, nil
}

// Refresh clears the cache and loads again.
func (s *Session) Refresh(ctx context.Context) (Snapshot, error) {
	s.state.Cache().Clear()
	return s.Load(ctx, true)
}
