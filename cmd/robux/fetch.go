package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/config"
)

func fetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and classify your purchase history",
		Long: `Fetch pages through your Roblox purchase history, classifies every purchase
and prints a short summary.

Paging stops at --max records, at the first empty page, when no further page
is offered, or when a page fails. Whatever was collected is always kept.`,
		RunE: runFetch,
	}

	cmd.Flags().Int("max", 0, "Maximum number of purchases to fetch (default from config)")
	_ = viper.BindPFlag(config.KeyMaxTransactions, cmd.Flags().Lookup("max"))

	return cmd
}

func runFetch(cmd *cobra.Command, _ []string) error {
	h, err := loadHistory(cmd)
	if err != nil {
		return err
	}

	txs := h.snapshot.Transactions
	var b strings.Builder
	if id, ok := h.session.State().Identity(); ok {
		fmt.Fprintf(&b, "Account:       %s (%d)\n", id.Name, id.ID)
	}
	fmt.Fprintf(&b, "Purchases:     %s\n", cli.FormatNumber(float64(len(txs))))
	fmt.Fprintf(&b, "Total spent:   %s\n", cli.AmountStyle.Render(cli.FormatRobux(analytics.Total(txs))))
	fmt.Fprintf(&b, "Pages:         %d\n", h.snapshot.Pages)
	fmt.Fprintf(&b, "Stopped:       %s", h.snapshot.Stop.Describe())

	if first, last, ok := analytics.Bounds(txs); ok {
		fmt.Fprintf(&b, "\nCovers:        %s - %s", cli.FormatDate(first), cli.FormatDate(last))
	}

	printLine(cmd, cli.RenderBox(cli.RobuxIcon+" Purchase History", b.String()))

	if !h.snapshot.Partial() {
		printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Fetched %d purchases", len(txs))))
	}
	return nil
}
