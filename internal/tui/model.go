package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/session"
	"github.com/Veraticus/robux-must-flow/internal/tui/themes"
)

// Tab is one page of the dashboard.
type Tab int

const (
	TabOverview Tab = iota
	TabCategories
	TabTrends
	TabForecast
	TabCompare
	TabTransactions
	tabCount
)

var tabNames = [tabCount]string{
	TabOverview:     "Overview",
	TabCategories:   "Categories",
	TabTrends:       "Trends",
	TabForecast:     "Forecast",
	TabCompare:      "Compare",
	TabTransactions: "Transactions",
}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return "Unknown"
	}
	return tabNames[t]
}

// Model holds the dashboard state.
type Model struct {
	ctx          context.Context
	source       Source
	lastError    error
	theme        themes.Theme
	keymap       KeyMap
	help         help.Model
	spinner      spinner.Model
	table        table.Model
	snapshot     session.Snapshot
	transactions []model.Transaction
	rangeLabel   string
	config       Config
	width        int
	height       int
	tab          Tab
	loading      bool
	ready        bool
	quitting     bool
}

// newModel creates a model that loads from src.
func newModel(ctx context.Context, src Source, cfg Config) Model {
	h := help.New()
	h.ShowAll = cfg.ShowHelp

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = cfg.Theme.Title

	return Model{
		ctx:     ctx,
		source:  src,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    h,
		spinner: sp,
		table:   newTransactionTable(cfg.Theme, cfg.Height),
		width:   cfg.Width,
		height:  cfg.Height,
		loading: true,
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadSnapshot(m.ctx, m.source, false))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.lastError = nil
		m.setSnapshot(msg.snapshot)
		return m, nil
	}

	return m, nil
}

// handleKey routes key presses. Keys the dashboard does not claim go to the
// transaction table when that tab is active.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen
	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, loadSnapshot(m.ctx, m.source, true))
	}

	if m.tab == TabTransactions && m.ready {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setSnapshot applies the session's date range and rebuilds derived views.
func (m *Model) setSnapshot(snap session.Snapshot) {
	r := m.source.State().DateRange()
	m.snapshot = snap
	m.transactions = analytics.SortByDateDesc(analytics.Filter(snap.Transactions, r))
	m.rangeLabel = r.Label()
	m.table.SetRows(transactionRows(m.transactions))
	m.table.GotoTop()
	m.ready = true
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	m.table.SetHeight(max(m.height-10, 5))
}

// Tab returns the active tab.
func (m Model) Tab() Tab {
	return m.tab
}

// Loading reports whether a load is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Err returns the error from the most recent load, if any.
func (m Model) Err() error {
	return m.lastError
}

// Transactions returns the transactions shown, newest first.
func (m Model) Transactions() []model.Transaction {
	return m.transactions
}

func (m Model) now() time.Time {
	return m.source.Now()
}
