// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#8B5CF6") // Violet
	// SecondaryColor marks the second series in comparisons.
	SecondaryColor = lipgloss.Color("#3B82F6") // Blue
	// SuccessColor indicates successful operations and spending decreases.
	SuccessColor = lipgloss.Color("#10B981") // Green
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F59E0B") // Amber
	// ErrorColor indicates errors and spending increases.
	ErrorColor = lipgloss.Color("#EF4444") // Red
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#A0A0A0")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// AmountStyle highlights Robux amounts.
	AmountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2A2A2A")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(InfoColor)

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	RobuxIcon   = "💎"
	ChartIcon   = "📊"
	UpIcon      = "↑"
	DownIcon    = "↓"
	FlatIcon    = "—"
)

// CategoryColors gives each category a stable color.
var CategoryColors = map[model.Category]lipgloss.Color{
	model.CategoryGame:      PrimaryColor,
	model.CategoryCosmetics: lipgloss.Color("#EC4899"),
	model.CategoryTrading:   SecondaryColor,
	model.CategoryOther:     InfoColor,
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the Robux icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(RobuxIcon + " " + title)
}

// FormatCategory renders a category label in its color.
func FormatCategory(c model.Category) string {
	color, ok := CategoryColors[c]
	if !ok {
		color = InfoColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(c.String())
}

// BudgetStyle picks the style for a budget level.
func BudgetStyle(level analytics.BudgetLevel) lipgloss.Style {
	switch level {
	case analytics.BudgetExceeded:
		return ErrorStyle
	case analytics.BudgetApproaching:
		return WarningStyle
	default:
		return SuccessStyle
	}
}

// DirectionStyle colors a change: more spending is red, less is green.
func DirectionStyle(d analytics.Direction) lipgloss.Style {
	switch d {
	case analytics.Increase:
		return ErrorStyle
	case analytics.Decrease:
		return SuccessStyle
	default:
		return SubtleStyle
	}
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
