package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/robux-must-flow/internal/model"
)

func TestPresetRange(t *testing.T) {
	now := time.Date(2024, 3, 31, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		preset    Preset
		wantStart time.Time
		wantErr   bool
	}{
		{preset: PresetLast7, wantStart: time.Date(2024, 3, 24, 0, 0, 0, 0, time.UTC)},
		{preset: PresetLast30, wantStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{preset: PresetLast90, wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{preset: PresetAllTime},
		{preset: "1y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			got, err := PresetRange(tt.preset, now)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "want one of 7d, 30d, 90d, all")
				return
			}
			require.NoError(t, err)
			if tt.preset == PresetAllTime {
				assert.True(t, got.IsZero())
				return
			}
			assert.Equal(t, tt.wantStart, got.Start)
			assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), got.End)
		})
	}
}

func TestDateRange(t *testing.T) {
	r := DateRange{Start: date(2024, 2, 1), End: date(2024, 3, 10)}

	// Inclusive on both ends regardless of time of day.
	assert.True(t, r.Contains(time.Date(2024, 2, 1, 0, 0, 1, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)))
	assert.False(t, r.Contains(date(2024, 1, 31)))
	assert.False(t, r.Contains(date(2024, 3, 11)))
	assert.NoError(t, r.Validate())

	assert.Error(t, DateRange{Start: date(2024, 3, 2), End: date(2024, 3, 1)}.Validate())
	assert.NoError(t, DateRange{Start: date(2024, 3, 2)}.Validate())
	assert.True(t, DateRange{}.Contains(date(1999, 1, 1)))

	assert.Equal(t, "All time", DateRange{}.Label())
	assert.Equal(t, "Feb 01 - Mar 10, 2024", r.Label())
}

func TestFilter(t *testing.T) {
	got := Filter(sampleSet(), DateRange{Start: date(2024, 3, 1)})

	require.Len(t, got, 3)
	assert.Equal(t, "VIP", got[0].Item)
	assert.Equal(t, "Bundle", got[2].Item)

	assert.Len(t, Filter(sampleSet(), DateRange{}), 5)
}

func TestFilterCategories(t *testing.T) {
	txs := sampleSet()

	assert.Len(t, FilterCategories(txs), 5)
	assert.Len(t, FilterCategories(txs, model.CategoryGame), 2)
	assert.Len(t, FilterCategories(txs, model.CategoryGame, model.CategoryOther), 3)
}

func TestSortByDateDesc(t *testing.T) {
	txs := sampleSet()
	got := SortByDateDesc(txs)

	require.Len(t, got, 5)
	assert.Equal(t, date(2024, 3, 15), got[0].Date)
	assert.Equal(t, date(2024, 1, 20), got[4].Date)
	assert.Equal(t, date(2024, 3, 10), txs[0].Date)
}

func TestBounds(t *testing.T) {
	first, last, ok := Bounds(sampleSet())
	assert.True(t, ok)
	assert.Equal(t, date(2024, 1, 20), first)
	assert.Equal(t, date(2024, 3, 15), last)

	_, _, ok = Bounds(nil)
	assert.False(t, ok)
}

func TestDateRange_LocalBounds(t *testing.T) {
	est := time.FixedZone("UTC-5", -5*60*60)
	r := DateRange{
		Start: time.Date(2024, 3, 15, 0, 0, 0, 0, est),
		End:   time.Date(2024, 3, 20, 0, 0, 0, 0, est),
	}

	tests := []struct {
		name string
		when time.Time
		want bool
	}{
		{"start day in both zones", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), true},
		{"start day locally, next day in UTC", time.Date(2024, 3, 21, 3, 0, 0, 0, time.UTC), true},
		{"day before start locally", time.Date(2024, 3, 15, 2, 0, 0, 0, time.UTC), false},
		{"end day late evening locally", time.Date(2024, 3, 21, 4, 59, 0, 0, time.UTC), true},
		{"day after end locally", time.Date(2024, 3, 21, 5, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.when))
		})
	}

	got := Filter([]model.Transaction{tx(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), "VIP", model.CategoryGame, 100)}, r)
	assert.Len(t, got, 1)
}

func TestPresetRange_LocalNow(t *testing.T) {
	est := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2024, 3, 31, 20, 0, 0, 0, est)

	r, err := PresetRange(PresetLast7, now)
	require.NoError(t, err)

	// 2024-03-24 08:00 local.
	assert.True(t, r.Contains(time.Date(2024, 3, 24, 13, 0, 0, 0, time.UTC)))
	// 2024-03-31 23:00 local, already April in UTC.
	assert.True(t, r.Contains(time.Date(2024, 4, 1, 4, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 3, 24, 4, 0, 0, 0, time.UTC)))
}
