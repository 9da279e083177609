package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/config"
	"github.com/Veraticus/robux-must-flow/internal/export"
	"github.com/Veraticus/robux-must-flow/internal/model"
)

func exportCmd() *cobra.Command {
	var (
		format     string
		output     string
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export purchases to CSV or JSON",
		Long: `Export writes your purchases, newest first, to a CSV or JSON file.

The file defaults to roblox_transactions_YYYYMMDD.<format> in the current
directory. Use --output - to write to stdout and --category to keep only some
categories.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, format, output, categories)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format (csv, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default roblox_transactions_YYYYMMDD.<format>)")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Only export these categories (Game, Cosmetics, Trading, Other)")

	return cmd
}

func runExport(cmd *cobra.Command, format, output string, categories []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	cats, err := parseCategories(categories)
	if err != nil {
		return err
	}

	h, err := loadHistory(cmd)
	if err != nil {
		return err
	}
	if len(analytics.FilterCategories(h.snapshot.Transactions, cats...)) == 0 {
		return common.NewUserError("No purchases to export.", common.ErrNoTransactions)
	}
	opts := export.Options{Format: f, Categories: cats}

	if output == "-" {
		_, err := export.Write(cmd.OutOrStdout(), h.snapshot.Transactions, opts)
		return err
	}

	if output == "" {
		output = config.ExportFileName(string(f), h.session.Now())
	}
	path := config.ExpandPath(output)

	n, err := export.WriteFile(path, h.snapshot.Transactions, opts)
	if err != nil {
		return err
	}
	printLine(cmd, cli.FormatSuccess(fmt.Sprintf("Exported %d purchases to %s", n, path)))
	return nil
}

func parseCategories(names []string) ([]model.Category, error) {
	cats := make([]model.Category, 0, len(names))
	for _, name := range names {
		c, ok := model.ParseCategory(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		cats = append(cats, c)
	}
	return cats, nil
}
