package tui

import (
	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/tui/themes"
)

// Config holds dashboard configuration.
type Config struct {
	Theme          themes.Theme
	Width          int
	Height         int
	ForecastMonths int
	TopItems       int
	ShowHelp       bool
}

// Option is a functional option for configuring the dashboard.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Width:          100,
		Height:         30,
		ForecastMonths: analytics.DefaultForecastMonths,
		TopItems:       5,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithForecastMonths sets how many months the Forecast tab projects.
func WithForecastMonths(months int) Option {
	return func(c *Config) {
		if months > 0 {
			c.ForecastMonths = months
		}
	}
}

// WithHelp starts the dashboard with the full help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
