package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	return "[" + progressBar(pct, width) + "] " + fmt.Sprintf("%3.0f%%", clamp01(pct)*100)
}

// RenderDayFill renders how much of the daily cap is logged, e.g.
// [████░░░░] 3.80/7.60h. A full day is green.
func RenderDayFill(hours, dailyCap float64, width int) string {
	pct := 0.0
	if dailyCap > 0 {
		pct = hours / dailyCap
	}
	return "[" + progressBar(pct, width) + "] " + fmt.Sprintf("%s/%sh", FormatHours(hours), FormatHours(dailyCap))
}

func progressBar(pct float64, width int) string {
	pct = clamp01(pct)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return style.Render(bar)
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
