package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// Action is one of the dashboard's action buttons.
type Action struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Actions are the buttons below the form, in display order.
var Actions = []Action{
	{Name: "Monthly", Key: 'm', KeyPos: 0},
	{Name: "Yearly", Key: 'y', KeyPos: 0},
	{Name: "Export", Key: 'x', KeyPos: 1},
}

// ActionIdxByKey returns the action index for a key press, or -1.
func ActionIdxByKey(key rune) int {
	for i, a := range Actions {
		if a.Key == key {
			return i
		}
	}
	return -1
}

// ActionVisualWidth returns the rendered width of one button.
func ActionVisualWidth(a Action, active bool) int {
	return lipgloss.Width(renderAction(a, active))
}

// RenderActionBar renders the action buttons; activeIdx (or -1) is the
// button whose panel is open.
func RenderActionBar(activeIdx, width int) string {
	t := theme.Active

	parts := make([]string, len(Actions))
	for i, a := range Actions {
		parts[i] = renderAction(a, i == activeIdx)
	}
	sep := lipgloss.NewStyle().Background(t.Background).Render(" ")
	bar := " " + strings.Join(parts, sep)

	return lipgloss.NewStyle().
		Background(t.Background).
		Width(width).
		Render(bar)
}

func renderAction(a Action, active bool) string {
	t := theme.Active

	if active {
		return lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Accent).
			Bold(true).
			Padding(0, 1).
			Render(a.Name)
	}

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Underline(true)
	pad := base.Render(" ")

	if a.KeyPos < 0 || a.KeyPos >= len(a.Name) {
		return pad + base.Render(a.Name) + pad
	}
	return pad +
		base.Render(a.Name[:a.KeyPos]) +
		keyStyle.Render(string(a.Name[a.KeyPos])) +
		base.Render(a.Name[a.KeyPos+1:]) +
		pad
}

// ActionAtX returns the action index under column x of a bar rendered with
// activeIdx, or -1.
func ActionAtX(x, activeIdx int) int {
	pos := 1 // leading space
	for i, a := range Actions {
		w := ActionVisualWidth(a, i == activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
