package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
	"github.com/Veraticus/robux-must-flow/internal/model"
)

// Theme defines the visual style for the dashboard.
type Theme struct {
	Categories    map[model.Category]lipgloss.Color
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	ActiveTab     lipgloss.Style
	InactiveTab   lipgloss.Style
	BorderedBox   lipgloss.Style
	StatusBar     lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
	Subtle        lipgloss.Color
}

// Budget picks the status style for a budget level.
func (t Theme) Budget(level analytics.BudgetLevel) lipgloss.Style {
	switch level {
	case analytics.BudgetExceeded:
		return t.StatusError
	case analytics.BudgetApproaching:
		return t.StatusWarning
	default:
		return t.StatusSuccess
	}
}

// BudgetColor is the bar fill color for a budget level.
func (t Theme) BudgetColor(level analytics.BudgetLevel) lipgloss.Color {
	switch level {
	case analytics.BudgetExceeded:
		return t.Error
	case analytics.BudgetApproaching:
		return t.Warning
	default:
		return t.Success
	}
}

// Direction styles a change: more spending is an error color.
func (t Theme) Direction(d analytics.Direction) lipgloss.Style {
	switch d {
	case analytics.Increase:
		return t.StatusError
	case analytics.Decrease:
		return t.StatusSuccess
	default:
		return t.Muted
	}
}

// Category renders a category label in its color.
func (t Theme) Category(c model.Category) string {
	color, ok := t.Categories[c]
	if !ok {
		color = t.Subtle
	}
	return lipgloss.NewStyle().Foreground(color).Render(c.String())
}

func build(primary, secondary, success, warning, errColor, border, subtle, fg, bg lipgloss.Color,
	categories map[model.Category]lipgloss.Color,
) Theme {
	return Theme{
		Primary:    primary,
		Secondary:  secondary,
		Success:    success,
		Warning:    warning,
		Error:      errColor,
		Border:     border,
		Subtle:     subtle,
		Categories: categories,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(subtle).
			MarginBottom(1),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Muted: lipgloss.NewStyle().
			Foreground(subtle),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Background(primary).
			Foreground(bg).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(subtle).
			MarginTop(1),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			BorderBottom(true),
		TableSelected: lipgloss.NewStyle().
			Background(primary).
			Foreground(bg).
			Bold(true),
	}
}

// Default is the violet theme shared with the CLI output.
var Default = build(
	lipgloss.Color("#8b5cf6"),
	lipgloss.Color("#3b82f6"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#f59e0b"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#1a1a1a"),
	map[model.Category]lipgloss.Color{
		model.CategoryGame:      lipgloss.Color("#8b5cf6"),
		model.CategoryCosmetics: lipgloss.Color("#ec4899"),
		model.CategoryTrading:   lipgloss.Color("#10b981"),
		model.CategoryOther:     lipgloss.Color("#a0a0a0"),
	},
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#89b4fa"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#1e1e2e"),
	map[model.Category]lipgloss.Color{
		model.CategoryGame:      lipgloss.Color("#cba6f7"),
		model.CategoryCosmetics: lipgloss.Color("#f5c2e7"),
		model.CategoryTrading:   lipgloss.Color("#a6e3a1"),
		model.CategoryOther:     lipgloss.Color("#a6adc8"),
	},
)

// ByName looks a theme up by its config name.
func ByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return Default, true
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha, true
	default:
		return Default, false
	}
}
