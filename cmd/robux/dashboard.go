package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/config"
	"github.com/Veraticus/robux-must-flow/internal/tui"
	"github.com/Veraticus/robux-must-flow/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse your spending in an interactive dashboard",
		Long: `Dashboard opens a terminal UI with Overview, Categories, Trends, Forecast,
Compare and Transactions tabs.

Tab and Shift+Tab switch tabs, r fetches the history again, q quits.`,
		RunE: runDashboard,
	}

	cmd.Flags().String("theme", "default", "Color theme (default, catppuccin)")
	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	theme, ok := themes.ByName(viper.GetString(config.KeyTheme))
	if !ok {
		slog.Warn("Unknown theme, using default", "theme", viper.GetString(config.KeyTheme))
	}

	// Logs would draw over the alternate screen.
	common.SetupLogger(cmd.ErrOrStderr(), slog.LevelError, settings.Logging.Format)

	sess, err := sessionFactory(settings, slog.Default(), nil)
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), sess,
		tui.WithTheme(theme),
		tui.WithForecastMonths(settings.Forecast),
	)
}
