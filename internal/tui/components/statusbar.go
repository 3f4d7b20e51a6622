package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// RenderStatusBar renders the bottom bar: key hints, the last action's
// message (red when isErr) and a right-aligned summary.
func RenderStatusBar(width int, message string, isErr bool, right string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	if isErr {
		msgStyle = msgStyle.Foreground(t.Red)
	}

	left := base.Render(" [?]help  [q]uit")
	if message != "" {
		left += base.Render("  │ ") + msgStyle.Render(message)
	}
	rightStr := ""
	if right != "" {
		rightStr = base.Render(right + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 0 {
		padding = 0
	}
	return lipgloss.NewStyle().Width(width).Background(t.Surface).
		Render(left + base.Render(strings.Repeat(" ", padding)) + rightStr)
}
