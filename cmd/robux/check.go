package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/common"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that your Roblox cookie still signs in",
		Long: `Check asks Roblox who the configured .ROBLOSECURITY cookie belongs to
without fetching any purchases. Run it after setting roblox.cookie or
ROBUX_ROBLOX_COOKIE.`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	checker, err := checkerFactory(settings, slog.Default())
	if err != nil {
		return err
	}

	if !checker.ValidateCredential(cmd.Context()) {
		return common.NewUserError(
			"Roblox rejected this cookie. Sign in again and copy a fresh .ROBLOSECURITY value.",
			common.ErrIdentityUnresolved)
	}

	printLine(cmd, cli.FormatSuccess("Cookie is valid"))
	return nil
}
