package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/roblox"
)

type stubFetcher struct {
	release chan struct{}
	result  roblox.FetchResult
	calls   atomic.Int32
	max     atomic.Int32
}

func (f *stubFetcher) FetchAll(_ context.Context, maxCount int) roblox.FetchResult {
	f.calls.Add(1)
	f.max.Store(int32(maxCount))
	if f.release != nil {
		<-f.release
	}
	return f.result
}

func rawPurchase(name, typ string, amount float64) model.RawTransaction {
	return model.RawTransaction{
		Details:  model.RawDetails{Name: &name, Type: &typ},
		Currency: model.RawCurrency{Amount: &amount},
		Created:  "2024-03-01T10:00:00Z",
	}
}

type clock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestSession(f *stubFetcher) (*Session, *clock) {
	clk := &clock{now: time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)}
	state := NewState(roblox.Credential("cookie"), 30*time.Minute)
	return New(state, f, nil, WithClock(clk.Now), WithMaxTransactions(250)), clk
}

func TestSession_LoadUsesCache(t *testing.T) {
	f := &stubFetcher{result: roblox.FetchResult{
		Identity:     model.Identity{ID: 7, Name: "builder"},
		Stop:         roblox.StopNoCursor,
		Pages:        1,
		Transactions: []model.RawTransaction{rawPurchase("VIP", "Game Pass", -100)},
	}}
	s, clk := newTestSession(f)
	ctx := context.Background()

	snap, err := s.Load(ctx, false)
	require.NoError(t, err)
	assert.False(t, snap.Cached)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, model.CategoryGame, snap.Transactions[0].Category)
	assert.InDelta(t, 100, snap.Transactions[0].Amount, 1e-9)
	assert.Equal(t, int32(250), f.max.Load())

	id, ok := s.State().Identity()
	assert.True(t, ok)
	assert.Equal(t, int64(7), id.ID)

	clk.Advance(10 * time.Minute)
	snap, err = s.Load(ctx, false)
	require.NoError(t, err)
	assert.True(t, snap.Cached)
	assert.Equal(t, int32(1), f.calls.Load())

	snap, err = s.Load(ctx, true)
	require.NoError(t, err)
	assert.False(t, snap.Cached)
	assert.Equal(t, int32(2), f.calls.Load())

	clk.Advance(31 * time.Minute)
	_, err = s.Load(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, int32(3), f.calls.Load())
}

func TestSession_LoadPartialIsStored(t *testing.T) {
	f := &stubFetcher{result: roblox.FetchResult{
		Identity:     model.Identity{ID: 7},
		Stop:         roblox.StopPageFailed,
		Transactions: []model.RawTransaction{rawPurchase("Red Hat", "Asset", -5)},
	}}
	s, _ := newTestSession(f)

	snap, err := s.Load(context.Background(), false)

	require.NoError(t, err)
	assert.True(t, snap.Partial())
	entry, ok := s.State().Cache().Entry()
	require.True(t, ok)
	assert.True(t, entry.Partial())
	assert.Equal(t, model.CategoryCosmetics, snap.Transactions[0].Category)

	cached, err := s.Load(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.True(t, cached.Partial())
	assert.Equal(t, roblox.StopPageFailed, cached.Stop)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestSession_LoadCacheHitKeepsFetchDetails(t *testing.T) {
	f := &stubFetcher{result: roblox.FetchResult{
		Identity:     model.Identity{ID: 7},
		Stop:         roblox.StopNoCursor,
		Pages:        3,
		Transactions: []model.RawTransaction{rawPurchase("VIP", "Game Pass", -100)},
	}}
	s, _ := newTestSession(f)

	_, err := s.Load(context.Background(), false)
	require.NoError(t, err)
	cached, err := s.Load(context.Background(), false)
	require.NoError(t, err)

	assert.True(t, cached.Cached)
	assert.False(t, cached.Partial())
	assert.Equal(t, roblox.StopNoCursor, cached.Stop)
	assert.Equal(t, 3, cached.Pages)
}

func TestSession_LoadCanceledIsNotCached(t *testing.T) {
	f := &stubFetcher{result: roblox.FetchResult{
		Identity:     model.Identity{ID: 7},
		Stop:         roblox.StopCanceled,
		Pages:        1,
		Transactions: []model.RawTransaction{rawPurchase("VIP", "Game Pass", -100)},
	}}
	s, _ := newTestSession(f)

	snap, err := s.Load(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, snap.Partial())
	require.Len(t, snap.Transactions, 1)

	_, ok := s.State().Cache().Entry()
	assert.False(t, ok)

	_, err = s.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestSession_LoadIdentityUnresolved(t *testing.T) {
	f := &stubFetcher{result: roblox.FetchResult{Stop: roblox.StopIdentityUnresolved}}
	s, _ := newTestSession(f)

	_, err := s.Load(context.Background(), false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrIdentityUnresolved))
	_, ok := s.State().Cache().Entry()
	assert.False(t, ok)
}

func TestSession_ConcurrentLoadsShareFetch(t *testing.T) {
	f := &stubFetcher{
		release: make(chan struct{}),
		result:  roblox.FetchResult{Identity: model.Identity{ID: 1}, Stop: roblox.StopEmptyPage},
	}
	s, _ := newTestSession(f)

	const callers = 5
	var wg sync.WaitGroup
	started := make(chan struct{}, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			_, err := s.Load(context.Background(), true)
			assert.NoError(t, err)
		}()
	}
	for range callers {
		<-started
	}
	// Give the goroutines a moment to join the in-flight call.
	time.Sleep(50 * time.Millisecond)
	close(f.release)
	wg.Wait()

	assert.LessOrEqual(t, f.calls.Load(), int32(callers))
	assert.GreaterOrEqual(t, f.calls.Load(), int32(1))
}

func TestSession_Refresh(t *testing.T) {
	f := &stubFetcher{result: roblox.FetchResult{Identity: model.Identity{ID: 1}, Stop: roblox.StopNoCursor}}
	s, _ := newTestSession(f)

	_, err := s.Load(context.Background(), false)
	require.NoError(t, err)
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), f.calls.Load())
}

func TestState_Lifecycle(t *testing.T) {
	st := NewState(roblox.Credential("cookie"), 0)
	firstID := st.ID()
	assert.NotEmpty(t, firstID)
	assert.Equal(t, DefaultBudgets(), st.Budgets())

	require.NoError(t, st.SetBudgets(Budgets{Overall: 1000, Monthly: 200, Threshold: 75}))
	require.NoError(t, st.SetDateRange(analytics.DateRange{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}))
	st.SetIdentity(model.Identity{ID: 9})
	st.Cache().Store(Entry{FetchedAt: time.Now()})

	st.Reset()

	assert.NotEqual(t, firstID, st.ID())
	assert.Equal(t, DefaultBudgets(), st.Budgets())
	assert.True(t, st.DateRange().IsZero())
	_, ok := st.Identity()
	assert.False(t, ok)
	_, ok = st.Cache().Entry()
	assert.False(t, ok)
	assert.Equal(t, roblox.Credential("cookie"), st.Credential())
}

func TestState_Validation(t *testing.T) {
	st := NewState("", 0)

	tests := []struct {
		name    string
		budgets Budgets
		wantErr bool
	}{
		{name: "defaults", budgets: DefaultBudgets()},
		{name: "negative overall", budgets: Budgets{Overall: -1, Threshold: 80}, wantErr: true},
		{name: "threshold too low", budgets: Budgets{Threshold: 49}, wantErr: true},
		{name: "threshold too high", budgets: Budgets{Threshold: 101}, wantErr: true},
		{name: "threshold bounds", budgets: Budgets{Threshold: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := st.SetBudgets(tt.budgets)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	err := st.SetDateRange(analytics.DateRange{
		Start: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, common.ErrInvalidDateRange)
}
