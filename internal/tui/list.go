package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// visibleWindow returns the [start, end) rows to draw so that the cursor
// stays on screen.
func visibleWindow(cursor, total, visible int) (int, int) {
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	return start, min(start+visible, total)
}

// renderList renders the expense list card at outerWidth, as tall as height.
func (a App) renderList(outerWidth, height int) string {
	t := theme.Active
	focused := a.focus == zoneList
	title := fmt.Sprintf("Expenses (%d)", len(a.expenses))

	if len(a.expenses) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextDim).Render("No expenses yet. Fill in the form to add one.")
		return components.ContentCard(title, padHeight(body, max(height-3, 1)), outerWidth, focused)
	}

	inner := components.CardInnerWidth(outerWidth)
	catW := max(inner-44, 10)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	editStyle := lipgloss.NewStyle().Foreground(t.Yellow)

	line := func(idx, cat, amount, date, mode string) string {
		return fmt.Sprintf("%3s  %-*s %14s  %-10s  %-4s", idx, catW, truncStr(cat, catW), amount, date, mode)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(line("#", "Category", "Amount", "Date", "Mode")))

	visible := max(height-4, minListRows)
	start, end := visibleWindow(a.cursor, len(a.expenses), visible)
	for i := start; i < end; i++ {
		e := a.expenses[i]
		row := line(fmt.Sprint(i+1), e.Category.String(), a.amount(e.Amount), e.Date.String(), string(e.PaymentMode))
		b.WriteString("\n")
		switch {
		case i == a.cursor && focused:
			b.WriteString(selStyle.Render(row))
		case e.ID == a.ctrl.EditingID():
			b.WriteString(editStyle.Render(row))
		case i == a.cursor:
			b.WriteString(rowStyle.Underline(true).Render(row))
		default:
			b.WriteString(rowStyle.Render(row))
		}
	}
	if len(a.expenses) > visible {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render(
			fmt.Sprintf("%d-%d of %d · id %s", start+1, end, len(a.expenses), cli.ShortID(a.expenses[a.cursor].ID))))
	}

	return components.ContentCard(title, b.String(), outerWidth, focused)
}
