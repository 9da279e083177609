package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/robux-must-flow/internal/roblox"
)

// FetchProgress draws a progress bar while purchase pages arrive.
type FetchProgress struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
}

// NewFetchProgress creates a bar that fills up to target records.
func NewFetchProgress(writer io.Writer, target int) *FetchProgress {
	p := &FetchProgress{writer: writer}
	p.bar = progressbar.NewOptions(target,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[magenta][bold]Fetching purchases...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[magenta]=[reset]",
			SaucerHead:    "[magenta]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Update implements roblox.ProgressFunc.
func (p *FetchProgress) Update(fetched, _ int) {
	if err := p.bar.Set(fetched); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Func adapts the bar to the fetcher callback.
func (p *FetchProgress) Func() roblox.ProgressFunc {
	return p.Update
}

// Finish completes the bar even when the history ran out early.
func (p *FetchProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
