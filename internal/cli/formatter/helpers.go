package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders hours with two decimals: 3.8 becomes "3.80".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

// DayLabel renders a calendar day as "Mon 2025-03-03".
func DayLabel(t time.Time) string {
	return t.Format("Mon 2006-01-02")
}

// DateRange renders an inclusive range, collapsing single days.
func DateRange(start, end time.Time) string {
	s, e := start.Format("2006-01-02"), end.Format("2006-01-02")
	if s == e {
		return s
	}
	return s + " → " + e
}

// OpenEnded renders an optional end date, "ongoing" when absent.
func OpenEnded(t *time.Time) string {
	if t == nil {
		return StyleGreen.Render("ongoing")
	}
	return t.Format("2006-01-02")
}

// Truncate shortens s to n visible runes with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
