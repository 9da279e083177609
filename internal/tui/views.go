package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/tui/themes"
)

const weeksShown = 8

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch {
	case !m.ready && m.lastError != nil:
		body = m.renderLoadError()
	case !m.ready:
		body = m.renderLoading()
	default:
		body = m.renderTab()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render(cli.RobuxIcon + " Robux Must Flow")

	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		style := m.theme.InactiveTab
		if t == m.tab {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
	)
}

func (m Model) renderLoading() string {
	return fmt.Sprintf("%s %s", m.spinner.View(), m.theme.Muted.Render("Fetching purchase history..."))
}

func (m Model) renderLoadError() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.StatusError.Render(cli.ErrorIcon+" "+loadErrorText(m.lastError)),
		"",
		m.theme.Muted.Render("Press r to try again."),
	)
}

func (m Model) renderTab() string {
	if len(m.transactions) == 0 {
		return m.theme.Muted.Render("No purchases in this range (" + m.rangeLabel + ").")
	}

	switch m.tab {
	case TabCategories:
		return m.renderCategories()
	case TabTrends:
		return m.renderTrends()
	case TabForecast:
		return m.renderForecast()
	case TabCompare:
		return m.renderCompare()
	case TabTransactions:
		return m.table.View()
	default:
		return m.renderOverview()
	}
}

func (m Model) renderOverview() string {
	s := analytics.Summarize(m.transactions)

	stats := cli.NewTable("", "").AlignRight(1)
	stats.AddRow("Total spent", cli.FormatRobux(s.Total))
	stats.AddRow("Purchases", cli.FormatNumber(float64(s.Count)))
	stats.AddRow("Average", cli.FormatRobux(s.Average))
	stats.AddRow("Unique items", cli.FormatNumber(float64(s.UniqueItems)))
	stats.AddRow("First purchase", cli.FormatDate(s.First))
	stats.AddRow("Last purchase", cli.FormatDate(s.Last))

	sections := []string{
		m.theme.Subtitle.Render(m.rangeLabel),
		stats.Render(),
		"",
		m.renderBudgets(),
	}

	top := analytics.TopItems(m.transactions, m.config.TopItems)
	if len(top) > 0 {
		items := cli.NewTable("Item", "Spent", "Share", "Purchases").AlignRight(1, 2, 3)
		for _, it := range top {
			items.AddRow(cli.Truncate(it.Item, 32), cli.FormatRobux(it.Amount),
				cli.FormatPercent(it.Percentage), fmt.Sprintf("%d", it.Purchases))
		}
		sections = append(sections, "", m.theme.Bold.Render("Top items"), items.Render())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderBudgets() string {
	budgets := m.source.State().Budgets()
	if budgets.Overall <= 0 && budgets.Monthly <= 0 {
		return m.theme.Muted.Render("No budget set.")
	}

	var lines []string
	if budgets.Overall > 0 {
		status := analytics.Budget(analytics.Total(m.transactions), budgets.Overall, budgets.Threshold)
		lines = append(lines, m.budgetLine("Overall", status))
	}
	if budgets.Monthly > 0 {
		spend := analytics.CurrentMonthSpend(m.snapshot.Transactions, m.now())
		status := analytics.Budget(spend, budgets.Monthly, budgets.Threshold)
		lines = append(lines, m.budgetLine("This month", status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) budgetLine(label string, status analytics.BudgetStatus) string {
	bar := progress.New(
		progress.WithSolidFill(string(m.theme.BudgetColor(status.Level))),
		progress.WithoutPercentage(),
		progress.WithWidth(30),
	)

	return fmt.Sprintf("%-11s %s %s / %s  %s",
		label,
		bar.ViewAs(status.Fill()/100),
		cli.FormatRobux(status.Spend),
		cli.FormatRobux(status.Limit),
		m.theme.Budget(status.Level).Render(string(status.Level)),
	)
}

func (m Model) renderCategories() string {
	totals := analytics.ByCategory(m.transactions)

	t := cli.NewTable("Category", "Spent", "Share", "Purchases").AlignRight(1, 2, 3)
	for _, ct := range totals {
		t.AddRow(m.theme.Category(ct.Category), cli.FormatRobux(ct.Amount),
			cli.FormatPercent(ct.Percentage), fmt.Sprintf("%d", ct.Count))
	}

	sections := []string{t.Render()}
	for _, ct := range totals {
		types := analytics.ByType(m.transactions, ct.Category)
		if len(types) == 0 {
			continue
		}
		tt := cli.NewTable("Type", "Spent", "Share").AlignRight(1, 2)
		for _, ty := range types {
			tt.AddRow(ty.Type, cli.FormatRobux(ty.Amount), cli.FormatPercent(ty.Percentage))
		}
		sections = append(sections, "", m.theme.Category(ct.Category), tt.Render())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTrends() string {
	monthly := periodTable("Month", analytics.Monthly(m.transactions))

	weeks := analytics.Weekly(m.transactions)
	if len(weeks) > weeksShown {
		weeks = weeks[len(weeks)-weeksShown:]
	}
	weekly := periodTable("Week", weeks)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, m.theme.Bold.Render("Monthly"), monthly)),
		"  ",
		m.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, m.theme.Bold.Render("Recent weeks"), weekly)),
	)
}

func periodTable(label string, periods []analytics.PeriodTotal) string {
	t := cli.NewTable(label, "Spent", "Purchases").AlignRight(1, 2)
	for _, p := range periods {
		t.AddRow(p.Period, cli.FormatRobux(p.Amount), fmt.Sprintf("%d", p.Count))
	}
	return t.Render()
}

func (m Model) renderForecast() string {
	f := analytics.Forecast(analytics.Monthly(m.transactions), m.config.ForecastMonths)
	if !f.OK() {
		return m.theme.Muted.Render("At least two months of purchases are needed for a forecast.")
	}

	t := cli.NewTable("Month", "Projected").AlignRight(1)
	for _, p := range f.Points {
		t.AddRow(p.Period, cli.FormatRobux(p.Amount))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		fmt.Sprintf("Trend: %s   Confidence: %s", m.theme.Bold.Render(string(f.Trend)),
			m.theme.Bold.Render(string(f.Confidence))),
		fmt.Sprintf("Average month: %s   Next month: %s", cli.FormatRobux(f.Mean),
			cli.FormatSignedPercent(f.NextChange)),
		"",
		t.Render(),
		"",
		fmt.Sprintf("Next 3 months: %s", cli.FormatRobux(f.Sum(3))),
		fmt.Sprintf("Next 6 months: %s", cli.FormatRobux(f.Sum(6))),
	)
}

func (m Model) renderCompare() string {
	first, second, ok := analytics.LatestPair(analytics.AvailableMonths(m.transactions))
	if !ok {
		return m.theme.Muted.Render("At least two months of purchases are needed to compare.")
	}
	c := analytics.CompareMonths(m.transactions, first, second)

	t := cli.NewTable("", c.First.Label, c.Second.Label, "Change").AlignRight(1, 2)
	t.AddRow("Spent", cli.FormatRobux(c.First.Total), cli.FormatRobux(c.Second.Total), m.change(c.Total))
	t.AddRow("Purchases", fmt.Sprintf("%d", c.First.Count), fmt.Sprintf("%d", c.Second.Count), m.change(c.Count))
	t.AddRow("Average", cli.FormatRobux(c.First.Average), cli.FormatRobux(c.Second.Average), m.change(c.Average))

	cats := cli.NewTable("Category", c.First.Label, c.Second.Label, "Change").AlignRight(1, 2)
	for _, cd := range c.Categories {
		cats.AddRow(m.theme.Category(cd.Category), cli.FormatRobux(cd.First),
			cli.FormatRobux(cd.Second), m.change(cd.Change))
	}

	return lipgloss.JoinVertical(lipgloss.Left, t.Render(), "", cats.Render())
}

func (m Model) change(d analytics.Delta) string {
	return m.theme.Direction(d.Direction).Render(cli.FormatChange(d))
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.ready {
		parts = append(parts,
			fmt.Sprintf("%d purchases", len(m.transactions)),
			"updated "+m.source.State().Cache().AgeText(m.now()),
		)
		if m.snapshot.Partial() {
			parts = append(parts, m.theme.StatusWarning.Render(cli.WarningIcon+" partial: "+string(m.snapshot.Stop)))
		}
	}
	if m.loading && m.ready {
		parts = append(parts, m.spinner.View()+" refreshing")
	}
	if m.ready && m.lastError != nil {
		parts = append(parts, m.theme.StatusError.Render(loadErrorText(m.lastError)))
	}
	return m.theme.StatusBar.Render(strings.Join(parts, " • "))
}

func loadErrorText(err error) string {
	return common.UserMessage(err)
}

// newTransactionTable builds the Transactions tab table.
func newTransactionTable(theme themes.Theme, height int) table.Model {
	styles := table.DefaultStyles()
	styles.Header = theme.TableHeader
	styles.Selected = theme.TableSelected

	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Item", Width: 32},
			{Title: "Type", Width: 18},
			{Title: "Category", Width: 10},
			{Title: "Amount", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 5)),
		table.WithStyles(styles),
	)
}

func transactionRows(txs []model.Transaction) []table.Row {
	rows := make([]table.Row, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, table.Row{
			tx.Date.Format("2006-01-02"),
			cli.Truncate(tx.Item, 32),
			tx.Type,
			tx.Category.String(),
			cli.FormatRobux(tx.Amount),
		})
	}
	return rows
}
