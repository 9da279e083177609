package roblox

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRaw(n, offset int) []model.RawTransaction {
	out := make([]model.RawTransaction, n)
	for i := range out {
		name := fmt.Sprintf("item-%d", offset+i)
		out[i] = model.RawTransaction{Details: model.RawDetails{Name: &name}}
	}
	return out
}

func cursorPtr(s string) *string { return &s }

// pagedSource serves pages of the given sizes; every page except the last
// carries a cursor unless overridden.
func pagedSource(sizes ...int) *MockSource {
	m := NewMockSource()
	served := 0
	m.TransactionPageFn = func(_ context.Context, _ int64, limit int, _ string) (model.TransactionPage, Result) {
		idx := len(m.PageCalls) - 1
		if idx >= len(sizes) {
			return model.TransactionPage{Data: []model.RawTransaction{}}, OKResult(nil)
		}
		n := min(sizes[idx], limit)
		page := model.TransactionPage{Data: makeRaw(n, served)}
		served += n
		if idx < len(sizes)-1 {
			page.NextPageCursor = cursorPtr(fmt.Sprintf("c%d", idx+1))
		}
		return page, OKResult(nil)
	}
	return m
}

func TestFetchAll_StopConditions(t *testing.T) {
	ctx := context.Background()

	t.Run("max count reached", func(t *testing.T) {
		src := pagedSource(100, 100, 100, 100)
		res := NewFetcher(src, nil).FetchAll(ctx, 250)

		assert.Len(t, res.Transactions, 250)
		assert.Equal(t, StopMaxCount, res.Stop)
		assert.False(t, res.Partial())
		require.Len(t, src.PageCalls, 3)
		assert.Equal(t, 100, src.PageCalls[0].Limit)
		assert.Equal(t, 100, src.PageCalls[1].Limit)
		assert.Equal(t, 50, src.PageCalls[2].Limit)
		assert.Equal(t, "", src.PageCalls[0].Cursor)
		assert.Equal(t, "c1", src.PageCalls[1].Cursor)
		assert.Equal(t, "c2", src.PageCalls[2].Cursor)
	})

	t.Run("small request uses small page", func(t *testing.T) {
		src := pagedSource(100, 100)
		res := NewFetcher(src, nil).FetchAll(ctx, 10)

		assert.Len(t, res.Transactions, 10)
		require.Len(t, src.PageCalls, 1)
		assert.Equal(t, 10, src.PageCalls[0].Limit)
	})

	t.Run("zero length page", func(t *testing.T) {
		src := pagedSource(100, 0, 100)
		res := NewFetcher(src, nil).FetchAll(ctx, 500)

		assert.Len(t, res.Transactions, 100)
		assert.Equal(t, StopEmptyPage, res.Stop)
		assert.Len(t, src.PageCalls, 2)
	})

	t.Run("missing cursor", func(t *testing.T) {
		src := pagedSource(100, 40)
		res := NewFetcher(src, nil).FetchAll(ctx, 500)

		assert.Len(t, res.Transactions, 140)
		assert.Equal(t, StopNoCursor, res.Stop)
		assert.Equal(t, 2, res.Pages)
		assert.Len(t, src.PageCalls, 2)
	})

	t.Run("transport failure keeps partial data", func(t *testing.T) {
		src := NewMockSource()
		src.TransactionPageFn = func(_ context.Context, _ int64, _ int, _ string) (model.TransactionPage, Result) {
			if len(src.PageCalls) == 3 {
				return model.TransactionPage{}, AbsentResult(500)
			}
			return model.TransactionPage{Data: makeRaw(100, 0), NextPageCursor: cursorPtr("next")}, OKResult(nil)
		}

		res := NewFetcher(src, nil).FetchAll(ctx, 1000)

		assert.Len(t, res.Transactions, 200)
		assert.Equal(t, StopPageFailed, res.Stop)
		assert.True(t, res.Partial())
		assert.Len(t, src.PageCalls, 3)
	})

	t.Run("identity failure", func(t *testing.T) {
		src := NewMockSource()
		src.IdentityFn = func(_ context.Context) (model.Identity, Result) {
			return model.Identity{}, AbsentResult(401)
		}

		res := NewFetcher(src, nil).FetchAll(ctx, 100)

		assert.Empty(t, res.Transactions)
		assert.Equal(t, StopIdentityUnresolved, res.Stop)
		assert.Empty(t, src.PageCalls)
	})

	t.Run("non positive max count", func(t *testing.T) {
		src := pagedSource(100)
		res := NewFetcher(src, nil).FetchAll(ctx, 0)

		assert.Empty(t, res.Transactions)
		assert.Equal(t, StopMaxCount, res.Stop)
		assert.Zero(t, src.IdentityCalls)
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		src := pagedSource(100, 100)
		res := NewFetcher(src, nil).FetchAll(canceled, 500)

		assert.Equal(t, StopCanceled, res.Stop)
		assert.Empty(t, src.PageCalls)
	})
}

func TestFetchAll_NeverExceedsMax(t *testing.T) {
	for _, max := range []int{1, 99, 100, 101, 199, 300} {
		t.Run(fmt.Sprintf("max=%d", max), func(t *testing.T) {
			// A misbehaving server that ignores the limit.
			src := NewMockSource()
			src.TransactionPageFn = func(_ context.Context, _ int64, _ int, _ string) (model.TransactionPage, Result) {
				return model.TransactionPage{Data: makeRaw(100, 0), NextPageCursor: cursorPtr("x")}, OKResult(nil)
			}

			res := NewFetcher(src, nil).FetchAll(context.Background(), max)
			assert.LessOrEqual(t, len(res.Transactions), max)
			assert.Len(t, res.Transactions, max)
		})
	}
}

func TestFetchAll_PreservesPageOrder(t *testing.T) {
	src := pagedSource(3, 2)
	res := NewFetcher(src, nil).FetchAll(context.Background(), 10)

	require.Len(t, res.Transactions, 5)
	for i, raw := range res.Transactions {
		require.NotNil(t, raw.Details.Name)
		assert.Equal(t, fmt.Sprintf("item-%d", i), *raw.Details.Name)
	}
}

func TestFetchAll_Progress(t *testing.T) {
	var seen []int
	src := pagedSource(100, 100, 100)
	f := NewFetcher(src, nil).WithProgress(func(fetched, target int) {
		assert.Equal(t, 250, target)
		seen = append(seen, fetched)
	})

	res := f.FetchAll(context.Background(), 250)

	assert.Len(t, res.Transactions, 250)
	assert.Equal(t, []int{100, 200, 250}, seen)
}

func TestFetchAll_PassesUserID(t *testing.T) {
	src := pagedSource(1)
	src.IdentityFn = func(_ context.Context) (model.Identity, Result) {
		return model.Identity{ID: 9876, Name: "builder"}, OKResult(nil)
	}

	res := NewFetcher(src, nil).FetchAll(context.Background(), 5)

	assert.Equal(t, int64(9876), res.Identity.ID)
	require.Len(t, src.PageCalls, 1)
	assert.Equal(t, int64(9876), src.PageCalls[0].UserID)
}
