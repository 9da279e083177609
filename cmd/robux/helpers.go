package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/cli"
	"github.com/Veraticus/robux-must-flow/internal/common"
	"github.com/Veraticus/robux-must-flow/internal/config"
	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/roblox"
	"github.com/Veraticus/robux-must-flow/internal/session"
)

// sessionFactory builds the session a command reads from. Tests swap it
// for one backed by a mock page source.
var sessionFactory = buildSession

// buildSession wires the Roblox client, fetcher and session state.
func buildSession(settings config.Settings, logger *slog.Logger, progress roblox.ProgressFunc) (*session.Session, error) {
	if err := settings.RequireCookie(); err != nil {
		return nil, err
	}

	client, err := roblox.NewClient(settings.ClientConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create roblox client: %w", err)
	}

	fetcher := roblox.NewFetcher(client, logger)
	if progress != nil {
		fetcher = fetcher.WithProgress(progress)
	}

	return newSession(settings, fetcher, logger)
}

// checkerFactory builds the credential check for `robux check`. Tests swap
// it like sessionFactory.
var checkerFactory = buildChecker

func buildChecker(settings config.Settings, logger *slog.Logger) (roblox.CredentialChecker, error) {
	if err := settings.RequireCookie(); err != nil {
		return nil, err
	}
	client, err := roblox.NewClient(settings.ClientConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create roblox client: %w", err)
	}
	return client, nil
}

// newSession creates the state and session around fetcher.
func newSession(settings config.Settings, fetcher session.Fetcher, logger *slog.Logger) (*session.Session, error) {
	state := session.NewState(settings.Roblox.Cookie, settings.CacheTTL)
	if err := state.SetBudgets(settings.Budgets); err != nil {
		return nil, err
	}
	return session.New(state, fetcher, logger,
		session.WithMaxTransactions(settings.Fetch.MaxTransactions)), nil
}

// loadSettings resolves the configuration for the current command.
func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// history is a loaded session plus the snapshot it produced.
type history struct {
	session  *session.Session
	snapshot session.Snapshot
	settings config.Settings
}

// loadHistory fetches the purchase history with a progress bar on stderr.
// Ctrl+C stops paging early and keeps what was already fetched.
func loadHistory(cmd *cobra.Command) (*history, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	bar := cli.NewFetchProgress(cmd.ErrOrStderr(), settings.Fetch.MaxTransactions)
	sess, err := sessionFactory(settings, slog.Default(), bar.Func())
	if err != nil {
		return nil, err
	}

	interrupts := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Fetch")
	ctx := interrupts.HandleInterrupts(cmd.Context())

	snap, err := sess.Load(ctx, false)
	bar.Finish()
	if err != nil {
		return nil, err
	}

	if snap.Partial() {
		warnf(cmd, "History is incomplete: %s", snap.Stop.Describe())
	}
	return &history{session: sess, snapshot: snap, settings: settings}, nil
}

// rangeFlags holds --from, --to and --preset.
type rangeFlags struct {
	from   string
	to     string
	preset string
}

func (f *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "End date, inclusive (YYYY-MM-DD)")
	names := make([]string, 0, len(analytics.Presets()))
	for _, p := range analytics.Presets() {
		names = append(names, string(p))
	}
	cmd.Flags().StringVar(&f.preset, "preset", "", "Date preset ("+strings.Join(names, ", ")+")")
}

// resolve turns the flags into a range. A preset wins over explicit dates.
func (f *rangeFlags) resolve(now time.Time) (analytics.DateRange, error) {
	if f.preset != "" {
		return analytics.PresetRange(analytics.Preset(f.preset), now)
	}
	return parseRange(f.from, f.to, now.Location())
}

func parseRange(from, to string, loc *time.Location) (analytics.DateRange, error) {
	start, err := parseDate(from, loc)
	if err != nil {
		return analytics.DateRange{}, err
	}
	end, err := parseDate(to, loc)
	if err != nil {
		return analytics.DateRange{}, err
	}
	r := analytics.DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return analytics.DateRange{}, fmt.Errorf("%w: %w", common.ErrInvalidDateRange, err)
	}
	return r, nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}

// applyRange stores the range on the session.
func (h *history) applyRange(r analytics.DateRange) error {
	return h.session.State().SetDateRange(r)
}

// transactions returns the snapshot filtered by the session's date range.
func (h *history) transactions() []model.Transaction {
	return analytics.Filter(h.snapshot.Transactions, h.session.State().DateRange())
}

func printf(cmd *cobra.Command, format string, args ...any) {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}

func printLine(cmd *cobra.Command, s string) {
	printf(cmd, "%s\n", s)
}

func warnf(cmd *cobra.Command, format string, args ...any) {
	if _, err := fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf(format, args...))); err != nil {
		slog.Error("failed to write output", "error", err)
	}
}
