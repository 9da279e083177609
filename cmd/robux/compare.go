package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/model"
)

// compareOptions holds the compare command flags.
type compareOptions struct {
	mode   string
	first  string
	second string
	from1  string
	to1    string
	from2  string
	to2    string
}

func compareCmd() *cobra.Command {
	var opts compareOptions

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare spending between two periods",
		Long: `Compare puts two periods side by side: total, purchase count, average
purchase and each category.

--mode month and --mode week default to the two most recent periods; pick
others with --first and --second (2024-03 or 2024-W11). --mode custom
compares --from1/--to1 with --from2/--to2.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "month", "Comparison mode (month, week, custom)")
	cmd.Flags().StringVar(&opts.first, "first", "", "First period (YYYY-MM or YYYY-Www)")
	cmd.Flags().StringVar(&opts.second, "second", "", "Second period (YYYY-MM or YYYY-Www)")
	cmd.Flags().StringVar(&opts.from1, "from1", "", "First range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to1, "to1", "", "First range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.from2, "from2", "", "Second range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to2, "to2", "", "Second range end (YYYY-MM-DD)")

	return cmd
}

func runCompare(cmd *cobra.Command, opts compareOptions) error {
	switch opts.mode {
	case "month", "week", "custom":
	default:
		return fmt.Errorf("unknown compare mode %q (want month, week or custom)", opts.mode)
	}

	h, err := loadHistory(cmd)
	if err != nil {
		return err
	}

	c, err := comparison(h.snapshot.Transactions, opts, h.session.Now())
	if err != nil {
		return err
	}
	if c.Empty() {
		printLine(cmd, cli.FormatInfo("One of the periods has no purchases, nothing to compare."))
		return nil
	}

	printLine(cmd, cli.FormatTitle(fmt.Sprintf("%s vs. %s", c.First.Label, c.Second.Label)))

	t := cli.NewTable("", c.First.Label, c.Second.Label, "Change").AlignRight(1, 2)
	t.AddRow("Spent", cli.FormatRobux(c.First.Total), cli.FormatRobux(c.Second.Total), change(c.Total))
	t.AddRow("Purchases", fmt.Sprintf("%d", c.First.Count), fmt.Sprintf("%d", c.Second.Count), change(c.Count))
	t.AddRow("Average", cli.FormatRobux(c.First.Average), cli.FormatRobux(c.Second.Average), change(c.Average))
	printLine(cmd, t.Render())
	printLine(cmd, "")

	cats := cli.NewTable("Category", c.First.Label, c.Second.Label, "Change").AlignRight(1, 2)
	for _, cd := range c.Categories {
		cats.AddRow(cli.FormatCategory(cd.Category), cli.FormatRobux(cd.First),
			cli.FormatRobux(cd.Second), change(cd.Change))
	}
	printLine(cmd, cats.Render())
	return nil
}

// comparison resolves the periods named by opts and compares them.
func comparison(txs []model.Transaction, opts compareOptions, now time.Time) (analytics.Comparison, error) {
	switch opts.mode {
	case "custom":
		first, err := parseRange(opts.from1, opts.to1, now.Location())
		if err != nil {
			return analytics.Comparison{}, fmt.Errorf("first range: %w", err)
		}
		second, err := parseRange(opts.from2, opts.to2, now.Location())
		if err != nil {
			return analytics.Comparison{}, fmt.Errorf("second range: %w", err)
		}
		if first.IsZero() || second.IsZero() {
			return analytics.Comparison{}, fmt.Errorf("custom comparison needs --from1/--to1 and --from2/--to2")
		}
		return analytics.CompareRanges(txs, first, second), nil

	case "week":
		first, second, err := pickPair(analytics.AvailableWeeks(txs), opts, "weeks")
		if err != nil {
			return analytics.Comparison{}, err
		}
		return analytics.CompareWeeks(txs, first, second), nil

	default:
		first, second, err := pickPair(analytics.AvailableMonths(txs), opts, "months")
		if err != nil {
			return analytics.Comparison{}, err
		}
		return analytics.CompareMonths(txs, first, second), nil
	}
}

// pickPair uses --first/--second when given and the two latest periods
// otherwise.
func pickPair(available []string, opts compareOptions, unit string) (string, string, error) {
	if opts.first != "" || opts.second != "" {
		if opts.first == "" || opts.second == "" {
			return "", "", fmt.Errorf("--first and --second must be given together")
		}
		return opts.first, opts.second, nil
	}
	first, second, ok := analytics.LatestPair(available)
	if !ok {
		return "", "", fmt.Errorf("at least two %s of purchases are needed to compare", unit)
	}
	return first, second, nil
}

func change(d analytics.Delta) string {
	return cli.DirectionStyle(d.Direction).Render(cli.FormatChange(d))
}
