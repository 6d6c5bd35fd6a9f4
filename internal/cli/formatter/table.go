package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// TableOption adjusts how RenderTable lays out columns.
type TableOption func(*tableOptions)

type tableOptions struct {
	rightAlign map[int]bool
	footer     []string
}

// AlignRight right-aligns the given column indexes. Use it for durations
// and other numeric columns.
func AlignRight(cols ...int) TableOption {
	return func(o *tableOptions) {
		for _, c := range cols {
			o.rightAlign[c] = true
		}
	}
}

// WithFooter appends a row below a second separator, typically a total.
func WithFooter(cells ...string) TableOption {
	return func(o *tableOptions) {
		o.footer = cells
	}
}

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible width so styled cells line up.
func RenderTable(headers []string, rows [][]string, opts ...TableOption) string {
	if len(headers) == 0 {
		return ""
	}
	o := tableOptions{rightAlign: make(map[int]bool)}
	for _, opt := range opts {
		opt(&o)
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
	if o.footer != nil {
		measure(o.footer)
	}

	var b strings.Builder
	writeRow := func(row []string, style *lipgloss.Style) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if style != nil {
				cell = style.Render(cell)
			}
			if o.rightAlign[i] {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}
	writeSeparator := func() {
		for i, w := range widths {
			b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, &StyleHeader)
	writeSeparator()
	for _, row := range rows {
		writeRow(row, nil)
	}
	if o.footer != nil {
		writeSeparator()
		writeRow(o.footer, &StyleBold)
	}
	return b.String()
}
