package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/model"
)

func reportCmd() *cobra.Command {
	var (
		dates rangeFlags
		top   int
		weeks int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show where your Robux went",
		Long: `Report prints totals, the category breakdown, your most purchased items
and monthly and weekly spending.

Limit the report with --from/--to (YYYY-MM-DD, inclusive) or --preset 7d, 30d,
90d or all.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, dates, top, weeks)
		},
	}

	dates.register(cmd)
	cmd.Flags().IntVar(&top, "top", 10, "Number of top items to show")
	cmd.Flags().IntVar(&weeks, "weeks", 8, "Number of recent weeks to show")

	return cmd
}

func runReport(cmd *cobra.Command, dates rangeFlags, top, weeks int) error {
	h, err := loadHistory(cmd)
	if err != nil {
		return err
	}

	r, err := dates.resolve(h.session.Now())
	if err != nil {
		return err
	}
	if err := h.applyRange(r); err != nil {
		return err
	}

	txs := h.transactions()
	printLine(cmd, cli.FormatTitle("Purchase Report: "+r.Label()))
	if len(txs) == 0 {
		printLine(cmd, cli.FormatInfo("No purchases in this range."))
		return nil
	}

	printLine(cmd, renderSummary(txs))
	printLine(cmd, "")
	printLine(cmd, renderCategories(txs))
	printLine(cmd, "")

	printLine(cmd, cli.SubtitleStyle.Render("Top items"))
	items := cli.NewTable("Item", "Spent", "Share", "Purchases").AlignRight(1, 2, 3)
	for _, it := range analytics.TopItems(txs, top) {
		items.AddRow(cli.Truncate(it.Item, 40), cli.FormatRobux(it.Amount),
			cli.FormatPercent(it.Percentage), fmt.Sprintf("%d", it.Purchases))
	}
	printLine(cmd, items.Render())
	printLine(cmd, "")

	printLine(cmd, cli.SubtitleStyle.Render("Monthly"))
	printLine(cmd, renderPeriods("Month", analytics.Monthly(txs)))
	printLine(cmd, "")

	recent := analytics.Weekly(txs)
	if weeks > 0 && len(recent) > weeks {
		recent = recent[len(recent)-weeks:]
	}
	printLine(cmd, cli.SubtitleStyle.Render("Recent weeks"))
	printLine(cmd, renderPeriods("Week", recent))
	return nil
}

func renderSummary(txs []model.Transaction) string {
	s := analytics.Summarize(txs)
	content := fmt.Sprintf(
		"Total spent:   %s\nPurchases:     %s\nAverage:       %s\nUnique items:  %s\nFirst:         %s\nLast:          %s",
		cli.AmountStyle.Render(cli.FormatRobux(s.Total)),
		cli.FormatNumber(float64(s.Count)),
		cli.FormatRobux(s.Average),
		cli.FormatNumber(float64(s.UniqueItems)),
		cli.FormatDate(s.First),
		cli.FormatDate(s.Last),
	)
	return cli.RenderBox(cli.ChartIcon+" Summary", content)
}

func renderCategories(txs []model.Transaction) string {
	t := cli.NewTable("Category", "Spent", "Share", "Purchases").AlignRight(1, 2, 3)
	for _, ct := range analytics.ByCategory(txs) {
		t.AddRow(cli.FormatCategory(ct.Category), cli.FormatRobux(ct.Amount),
			cli.FormatPercent(ct.Percentage), fmt.Sprintf("%d", ct.Count))
	}
	return t.Render()
}

func renderPeriods(label string, periods []analytics.PeriodTotal) string {
	t := cli.NewTable(label, "Spent", "Purchases").AlignRight(1, 2)
	for _, p := range periods {
		t.AddRow(p.Period, cli.FormatRobux(p.Amount), fmt.Sprintf("%d", p.Count))
	}
	return t.Render()
}
