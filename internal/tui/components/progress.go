package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// ShareBar renders a bar for a 0-100 share with the percentage after it.
func ShareBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	barColor := ColorForShare(pct)
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct))
}

// ColorForShare picks a hotter color for categories that dominate spending.
func ColorForShare(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 50:
		return t.Red
	case pct >= 30:
		return t.Orange
	case pct >= 15:
		return t.Yellow
	default:
		return t.Green
	}
}
