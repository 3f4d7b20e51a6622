package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	amountStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)
)

// Table describes a table for CLI output. Columns after the first are
// right-aligned unless LeftCols says otherwise.
type Table struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Footer   []string
	LeftCols int // number of leading left-aligned columns, default 1
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a rounded table with headers, rows and optional footer.
// A row holding the single cell "---" becomes a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	tw := table.NewWriter()
	if len(t.Headers) > 0 {
		tw.AppendHeader(toRow(t.Headers))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			tw.AppendSeparator()
			continue
		}
		tw.AppendRow(toRow(row))
	}
	if len(t.Footer) > 0 {
		footer := make(table.Row, len(t.Footer))
		for i, c := range t.Footer {
			footer[i] = text.Bold.Sprint(c)
		}
		tw.AppendFooter(footer)
	}

	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	left := t.LeftCols
	if left == 0 {
		left = 1
	}
	configs := make([]table.ColumnConfig, 0, numCols)
	for i := left + 1; i <= numCols; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignFooter: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}

func toRow(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}

// PrintTable writes RenderTable output to w.
func PrintTable(w io.Writer, t Table) {
	_, _ = io.WriteString(w, RenderTable(t))
}

// RenderAmount styles a formatted amount.
func RenderAmount(s string) string {
	return amountStyle.Render(s)
}

// RenderMuted styles secondary text.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}

// RenderWarning styles a notice the user should read.
func RenderWarning(s string) string {
	return warnStyle.Render(s)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderHorizontalBar renders a horizontal bar chart entry.
func RenderHorizontalBar(value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return ""
	}
	barLen := int(value / maxValue * float64(maxWidth))
	if barLen < 0 {
		barLen = 0
	}
	return fmt.Sprintf("%-*s", maxWidth, strings.Repeat("█", barLen))
}
