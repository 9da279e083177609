package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/roblox"
	"github.com/Veraticus/robux-must-flow/internal/session"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

type stubSource struct {
	err    error
	state  *session.State
	snap   session.Snapshot
	forced []bool
}

func newStubSource(txs ...model.Transaction) *stubSource {
	state := session.NewState(roblox.Credential("cookie"), session.DefaultTTL)
	state.Cache().Store(session.Entry{Transactions: txs, FetchedAt: testNow.Add(-2 * time.Minute), Stop: roblox.StopNoCursor, Pages: 1})
	return &stubSource{
		state: state,
		snap:  session.Snapshot{Transactions: txs, FetchedAt: testNow, Stop: roblox.StopNoCursor},
	}
}

func (s *stubSource) Load(_ context.Context, force bool) (session.Snapshot, error) {
	s.forced = append(s.forced, force)
	if s.err != nil {
		return session.Snapshot{}, s.err
	}
	return s.snap, nil
}

func (s *stubSource) State() *session.State { return s.state }

func (s *stubSource) Now() time.Time { return testNow }

func purchase(month time.Month, day int, item string, cat model.Category, amount float64) model.Transaction {
	return model.Transaction{
		Date:     time.Date(2024, month, day, 10, 0, 0, 0, time.UTC),
		Item:     item,
		Type:     "Purchase",
		Category: cat,
		Amount:   amount,
	}
}

func twoMonths() []model.Transaction {
	return []model.Transaction{
		purchase(time.February, 3, "Sword Pass", model.CategoryGame, 100),
		purchase(time.March, 5, "Blue Hat", model.CategoryCosmetics, 40),
		purchase(time.March, 12, "Sword Pass", model.CategoryGame, 160),
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded runs the model through its first load.
func loaded(t *testing.T, src *stubSource) Model {
	t.Helper()
	m := newModel(context.Background(), src, defaultConfig())
	msg := loadSnapshot(context.Background(), src, false)()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestModel_InitialLoad(t *testing.T) {
	src := newStubSource(twoMonths()...)
	m := newModel(context.Background(), src, defaultConfig())

	assert.True(t, m.Loading())
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Fetching purchase history")

	m = loaded(t, src)
	assert.False(t, m.Loading())
	require.NoError(t, m.Err())
	require.Len(t, m.Transactions(), 3)
	assert.Equal(t, "Sword Pass", m.Transactions()[0].Item, "newest first")
	assert.Equal(t, 160.0, m.Transactions()[0].Amount)
	assert.Equal(t, []bool{false}, src.forced)

	view := m.View()
	assert.Contains(t, view, "Overview")
	assert.Contains(t, view, "Total spent")
	assert.Contains(t, view, "300 R$")
	assert.Contains(t, view, "3 purchases")
	assert.Contains(t, view, "updated 2 minutes ago")
}

func TestModel_TabNavigation(t *testing.T) {
	m := loaded(t, newStubSource(twoMonths()...))

	tests := []struct {
		name string
		key  tea.KeyMsg
		want Tab
	}{
		{"tab advances", tea.KeyMsg{Type: tea.KeyTab}, TabCategories},
		{"right advances", tea.KeyMsg{Type: tea.KeyRight}, TabTrends},
		{"shift+tab goes back", tea.KeyMsg{Type: tea.KeyShiftTab}, TabCategories},
		{"left goes back", tea.KeyMsg{Type: tea.KeyLeft}, TabOverview},
		{"wraps backwards", tea.KeyMsg{Type: tea.KeyShiftTab}, TabTransactions},
		{"wraps forwards", tea.KeyMsg{Type: tea.KeyTab}, TabOverview},
	}
	for _, tt := range tests {
		updated, _ := m.Update(tt.key)
		m = updated.(Model)
		assert.Equal(t, tt.want, m.Tab(), tt.name)
	}
}

func TestModel_TabViews(t *testing.T) {
	tests := []struct {
		name string
		want []string
		tab  Tab
	}{
		{"categories", []string{"Game", "Cosmetics", "86.7%", "Purchase"}, TabCategories},
		{"trends", []string{"Monthly", "2024-02", "2024-03", "Recent weeks"}, TabTrends},
		{"forecast", []string{"Trend:", "Confidence:", "2024-04", "Next 6 months"}, TabForecast},
		{"compare", []string{"2024-02", "2024-03", "100.0% increase"}, TabCompare},
		{"transactions", []string{"Blue Hat", "2024-03-12", "Category"}, TabTransactions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, newStubSource(twoMonths()...))
			m.tab = tt.tab
			view := m.View()
			for _, want := range tt.want {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestModel_SingleMonthHistory(t *testing.T) {
	m := loaded(t, newStubSource(
		purchase(time.March, 5, "Blue Hat", model.CategoryCosmetics, 40),
	))

	m.tab = TabForecast
	assert.Contains(t, m.View(), "At least two months of purchases are needed for a forecast")

	m.tab = TabCompare
	assert.Contains(t, m.View(), "At least two months of purchases are needed to compare")
}

func TestModel_Refresh(t *testing.T) {
	src := newStubSource(twoMonths()...)
	m := loaded(t, src)

	updated, cmd := m.Update(keyRunes("r"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.Loading())
	assert.Contains(t, m.View(), "refreshing")

	// A second press while loading is ignored.
	_, again := m.Update(keyRunes("r"))
	assert.Nil(t, again)

	msg := loadSnapshot(context.Background(), src, true)()
	loadedMsg, ok := msg.(snapshotLoadedMsg)
	require.True(t, ok)
	assert.True(t, loadedMsg.forced)

	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.False(t, m.Loading())
	assert.Equal(t, []bool{false, true}, src.forced)
}

func TestModel_LoadErrors(t *testing.T) {
	t.Run("before first load", func(t *testing.T) {
		src := newStubSource()
		src.err = common.NewUserError("Could not sign in with this cookie.", common.ErrIdentityUnresolved)

		m := loaded(t, src)
		require.Error(t, m.Err())
		view := m.View()
		assert.Contains(t, view, "Could not sign in with this cookie.")
		assert.Contains(t, view, "Press r to try again")
	})

	t.Run("after data is shown", func(t *testing.T) {
		src := newStubSource(twoMonths()...)
		m := loaded(t, src)

		updated, _ := m.Update(snapshotLoadedMsg{err: errors.New("network down"), forced: true})
		m = updated.(Model)
		assert.Len(t, m.Transactions(), 3, "previous data is kept")
		view := m.View()
		assert.Contains(t, view, "Total spent")
		assert.Contains(t, view, "network down")
	})
}

func TestModel_PartialSnapshot(t *testing.T) {
	src := newStubSource(twoMonths()...)
	src.snap.Stop = roblox.StopPageFailed

	m := loaded(t, src)
	assert.Contains(t, m.View(), "partial: page_failed")
}

func TestModel_BudgetsAndRange(t *testing.T) {
	src := newStubSource(twoMonths()...)
	require.NoError(t, src.state.SetBudgets(session.Budgets{Overall: 250, Monthly: 250, Threshold: 80}))
	require.NoError(t, src.state.SetDateRange(analytics.DateRange{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}))

	m := loaded(t, src)
	require.Len(t, m.Transactions(), 2)

	view := m.View()
	assert.Contains(t, view, "Since Mar 01, 2024")
	// 200 of 250 is exactly the 80% threshold.
	assert.Contains(t, view, string(analytics.BudgetApproaching))
	assert.NotContains(t, view, "No budget set")
}

func TestModel_EmptyRange(t *testing.T) {
	src := newStubSource(twoMonths()...)
	require.NoError(t, src.state.SetDateRange(analytics.DateRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	m := loaded(t, src)
	assert.Contains(t, m.View(), "No purchases in this range (Since Jan 01, 2025).")
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := loaded(t, newStubSource(twoMonths()...))
	assert.NotContains(t, m.View(), "previous tab")

	updated, _ := m.Update(keyRunes("?"))
	m = updated.(Model)
	assert.Contains(t, m.View(), "previous tab")

	updated, cmd := m.Update(keyRunes("q"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModel_WindowResize(t *testing.T) {
	m := loaded(t, newStubSource(twoMonths()...))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 120, m.help.Width)
}

func TestRun_RequiresSource(t *testing.T) {
	err := Run(context.Background(), nil)
	require.Error(t, err)
}
