package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/config"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project future monthly spending",
		Long: `Forecast fits a straight line through your monthly totals and projects it
forward. At least two months of history are needed.`,
		RunE: runForecast,
	}

	cmd.Flags().Int("months", analytics.DefaultForecastMonths, "Months to project")
	_ = viper.BindPFlag(config.KeyForecastMonths, cmd.Flags().Lookup("months"))

	return cmd
}

func runForecast(cmd *cobra.Command, _ []string) error {
	h, err := loadHistory(cmd)
	if err != nil {
		return err
	}

	history := analytics.Monthly(h.snapshot.Transactions)
	f := analytics.Forecast(history, h.settings.Forecast)
	if !f.OK() {
		printLine(cmd, cli.FormatInfo("At least two months of purchases are needed for a forecast."))
		return nil
	}

	printLine(cmd, cli.FormatTitle("Spending Forecast"))
	printf(cmd, "Trend:          %s\n", f.Trend)
	printf(cmd, "Confidence:     %s\n", f.Confidence)
	printf(cmd, "Average month:  %s\n", cli.FormatRobux(f.Mean))
	printf(cmd, "Next month:     %s vs. the last month\n\n", cli.FormatSignedPercent(f.NextChange))

	t := cli.NewTable("Month", "Projected").AlignRight(1)
	for _, p := range f.Points {
		t.AddRow(p.Period, cli.FormatRobux(p.Amount))
	}
	printLine(cmd, t.Render())
	printLine(cmd, "")

	printf(cmd, "Next 3 months:  %s\n", cli.AmountStyle.Render(cli.FormatRobux(f.Sum(3))))
	printf(cmd, "Next 6 months:  %s\n", cli.AmountStyle.Render(cli.FormatRobux(f.Sum(6))))
	return nil
}
