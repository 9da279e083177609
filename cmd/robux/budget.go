package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/config"
)

func budgetCmd() *cobra.Command {
	var dates rangeFlags

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Check spending against your budgets",
		Long: `Budget compares spend in the selected range (all time by default) with
budget.overall and this calendar month's spend with budget.monthly. A limit of
0 is treated as unset.

A budget is "Approaching Limit" once spend reaches budget.threshold percent
of it and "Exceeded" at 100%.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBudget(cmd, dates)
		},
	}

	dates.register(cmd)

	cmd.Flags().Float64("overall", 0, "Overall budget in Robux")
	cmd.Flags().Float64("monthly", 0, "Monthly budget in Robux")
	cmd.Flags().Float64("threshold", analytics.DefaultThreshold, "Warning threshold percentage (50-100)")

	_ = viper.BindPFlag(config.KeyBudgetOverall, cmd.Flags().Lookup("overall"))
	_ = viper.BindPFlag(config.KeyBudgetMonthly, cmd.Flags().Lookup("monthly"))
	_ = viper.BindPFlag(config.KeyBudgetThreshold, cmd.Flags().Lookup("threshold"))

	return cmd
}

func runBudget(cmd *cobra.Command, dates rangeFlags) error {
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

	budgets := h.session.State().Budgets()
	if budgets.Overall <= 0 && budgets.Monthly <= 0 {
		printLine(cmd, cli.FormatInfo("No budget set. Use --overall or --monthly, or set budget.overall in your config."))
		return nil
	}

	printLine(cmd, cli.FormatTitle("Budget"))

	if budgets.Overall > 0 {
		label := "Overall"
		if !r.IsZero() {
			label += " (" + r.Label() + ")"
		}
		status := analytics.Budget(analytics.Total(h.transactions()), budgets.Overall, budgets.Threshold)
		printBudget(cmd, label, status)
	}
	if budgets.Monthly > 0 {
		now := h.session.Now()
		status := analytics.Budget(analytics.CurrentMonthSpend(h.snapshot.Transactions, now), budgets.Monthly, budgets.Threshold)
		printBudget(cmd, "This month ("+analytics.MonthKey(now)+")", status)
	}
	return nil
}

func printBudget(cmd *cobra.Command, label string, status analytics.BudgetStatus) {
	style := cli.BudgetStyle(status.Level)
	printf(cmd, "%-22s %s of %s (%s)  %s\n",
		label,
		cli.FormatRobux(status.Spend),
		cli.FormatRobux(status.Limit),
		cli.FormatPercent(status.Percentage),
		style.Render(string(status.Level)),
	)

	switch status.Level {
	case analytics.BudgetExceeded:
		printLine(cmd, cli.FormatError(fmt.Sprintf("%s budget exceeded by %s", label, cli.FormatRobux(status.OverBy()))))
	case analytics.BudgetApproaching:
		printLine(cmd, cli.FormatWarning(fmt.Sprintf("%s budget is at %s, %s left",
			label, cli.FormatPercent(status.Percentage), cli.FormatRobux(status.Remaining))))
	}
}
