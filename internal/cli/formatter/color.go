package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/timesheets/internal/app"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ReasonColor returns the style for a rejection reason. Input mistakes are
// yellow; conflicts with existing data are red.
func ReasonColor(code app.ReasonCode) lipgloss.Style {
	switch code {
	case app.ReasonDuplicateEntry, app.ReasonDailyCapExceeded:
		return StyleRed
	case app.ReasonNoActiveAssignment, app.ReasonNonWorkday:
		return StylePurple
	case app.ReasonInvalidIncrement, app.ReasonOutOfBounds:
		return StyleYellow
	default:
		return StyleDim
	}
}

// ResultBadge returns a colored indicator such as "✔ inserted" or
// "✖ DAILY_CAP_EXCEEDED".
func ResultBadge(r app.EntryResult) string {
	if r.Inserted() {
		return StyleGreen.Render("✔ inserted")
	}
	if r.Reason == "" {
		return StyleRed.Render("✖ rejected")
	}
	return ReasonColor(r.Reason).Render("✖ " + string(r.Reason))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
