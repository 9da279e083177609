package cli

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/robux-must-flow/internal/analytics"
)

// DisplayDateLayout is the long date format used in tables and exports.
const DisplayDateLayout = "January 02, 2006"

var printer = message.NewPrinter(language.English)

// FormatNumber rounds n and groups thousands, e.g. 1,234.
func FormatNumber(n float64) string {
	return printer.Sprintf("%d", int64(math.Round(n)))
}

// FormatRobux formats an amount as "1,234 R$".
func FormatRobux(amount float64) string {
	return FormatNumber(amount) + " R$"
}

// FormatOutflow formats a purchase amount as a debit, e.g. "-1,234 R$".
func FormatOutflow(amount float64) string {
	return "-" + FormatRobux(math.Abs(amount))
}

// FormatPercent formats p with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatDate formats t as "January 02, 2006".
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

// FormatChange renders a delta like "↑ 12.5% increase".
func FormatChange(d analytics.Delta) string {
	var icon string
	switch d.Direction {
	case analytics.Increase:
		icon = UpIcon
	case analytics.Decrease:
		icon = DownIcon
	default:
		return FlatIcon + " no change"
	}
	return fmt.Sprintf("%s %s %s", icon, FormatPercent(math.Abs(d.Percent)), d.Direction)
}

// FormatSignedPercent renders p with an explicit sign, e.g. "+4.0%".
func FormatSignedPercent(p float64) string {
	return fmt.Sprintf("%+.1f%%", p)
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
