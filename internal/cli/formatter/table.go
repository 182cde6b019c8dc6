package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// TableOption adjusts how RenderTable lays out a table.
type TableOption func(*tableConfig)

type tableConfig struct {
	rightAlign map[int]bool
	footer     []string
}

// AlignRight right-aligns the given column indexes, typically hours.
func AlignRight(cols ...int) TableOption {
	return func(c *tableConfig) {
		for _, i := range cols {
			c.rightAlign[i] = true
		}
	}
}

// WithFooter appends a bold row below a second separator, used for totals.
func WithFooter(cells ...string) TableOption {
	return func(c *tableConfig) {
		c.footer = cells
	}
}

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible width so styled cells line up.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	cfg := tableConfig{rightAlign: make(map[int]bool)}
	for _, opt := range opts {
		opt(&cfg)
	}

	cols := len(headers)
	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	measure(cfg.footer)

	var b strings.Builder
	styledHeaders := make([]string, cols)
	for i, h := range headers {
		styledHeaders[i] = StyleHeader.Render(h)
	}
	writeRow(&b, styledHeaders, widths, cfg.rightAlign)
	writeSeparator(&b, widths)
	for _, row := range rows {
		writeRow(&b, row, widths, cfg.rightAlign)
	}
	if len(cfg.footer) > 0 {
		writeSeparator(&b, widths)
		bold := make([]string, len(cfg.footer))
		for i, cell := range cfg.footer {
			bold[i] = Bold(cell)
		}
		writeRow(&b, bold, widths, cfg.rightAlign)
	}
	return b.String()
}

func writeRow(b *strings.Builder, row []string, widths []int, right map[int]bool) {
	cols := len(widths)
	for i := 0; i < cols; i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		pad := max(widths[i]-lipgloss.Width(cell), 0)
		if right[i] {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
			continue
		}
		b.WriteString(cell)
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
