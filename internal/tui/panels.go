package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/report"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// panelInputs returns pointers to the inputs of the open panel, in tab order.
func (a *App) panelInputs() []*textinput.Model {
	switch a.panels.Open() {
	case report.PanelMonthly:
		return []*textinput.Model{&a.monthIn, &a.yearIn}
	case report.PanelYearly:
		return []*textinput.Model{&a.yearOnlyIn}
	default:
		return nil
	}
}

// focusPanel moves key focus to the first input of the open panel.
func (a App) focusPanel() (tea.Model, tea.Cmd) {
	a.focus = zonePanel
	a.inputIdx = 0
	return a, a.focusInput()
}

func (a *App) focusInput() tea.Cmd {
	inputs := a.panelInputs()
	var cmd tea.Cmd
	for i, in := range inputs {
		if i == a.inputIdx {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (a *App) blurInputs() {
	a.monthIn.Blur()
	a.yearIn.Blur()
	a.yearOnlyIn.Blur()
}

func (a App) updatePanelKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.blurInputs()
		a.focus = zoneList
		return a, nil
	case key.Matches(msg, a.keys.Focus), msg.String() == "shift+tab":
		n := len(a.panelInputs())
		if n > 1 {
			if msg.String() == "shift+tab" {
				a.inputIdx = (a.inputIdx - 1 + n) % n
			} else {
				a.inputIdx = (a.inputIdx + 1) % n
			}
			return a, a.focusInput()
		}
		a.blurInputs()
		a.focus = zoneForm
		return a, nil
	case key.Matches(msg, a.keys.Show):
		a.showTotal()
		return a, nil
	}
	return a.forwardToInput(msg)
}

func (a App) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	inputs := a.panelInputs()
	if a.inputIdx >= len(inputs) {
		return a, nil
	}
	var cmd tea.Cmd
	*inputs[a.inputIdx], cmd = inputs[a.inputIdx].Update(msg)
	a.syncPanelInputs()
	return a, cmd
}

func (a *App) syncPanelInputs() {
	a.panels.Month = a.monthIn.Value()
	a.panels.Year = a.yearIn.Value()
	a.panels.YearOnly = a.yearOnlyIn.Value()
}

// showTotal is the panel's explicit "Show Total" action. Blank input is a
// silent no-op. The breakdown shown under the total is captured here too, so
// both stay as of the last Show.
func (a *App) showTotal() {
	a.syncPanelInputs()

	var err error
	switch a.panels.Open() {
	case report.PanelMonthly:
		if err = a.panels.ShowMonthlyTotal(a.expenses); err == nil {
			f, _ := parsePanelFilter(a.panels.Month, a.panels.Year)
			a.shownMonth = f
			a.shownCats = report.ByCategory(a.expenses, f)
		}
	case report.PanelYearly:
		if err = a.panels.ShowYearlyTotal(a.expenses); err == nil {
			f, _ := parsePanelFilter("", a.panels.YearOnly)
			a.shownYear = f.Year
			a.shownBars = report.Monthly(a.expenses, f.Year)
		}
	default:
		return
	}

	switch {
	case err == nil:
		a.setStatus("", false)
	case errors.Is(err, report.ErrMissingInput):
	default:
		a.setStatus("Enter a month 1-12 and a four digit year", true)
	}
}

func parsePanelFilter(month, year string) (report.Filter, error) {
	var f report.Filter
	var err error
	if m := strings.TrimSpace(month); m != "" {
		if f.Month, err = strconv.Atoi(m); err != nil {
			return f, err
		}
	}
	f.Year, err = strconv.Atoi(strings.TrimSpace(year))
	return f, err
}

func (a App) renderPanel(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	totalStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	focused := a.focus == zonePanel

	var b strings.Builder
	var title string

	switch a.panels.Open() {
	case report.PanelMonthly:
		title = "Monthly Total"
		b.WriteString(labelStyle.Render("Month "))
		b.WriteString(a.monthIn.View())
		b.WriteString(labelStyle.Render("  Year "))
		b.WriteString(a.yearIn.View())
		b.WriteString("   ")
		b.WriteString(totalStyle.Render(a.amount(a.panels.MonthlyTotal)))
		if a.shownMonth.Year != 0 {
			b.WriteString(hintStyle.Render(fmt.Sprintf("  (%s %d)", cli.FormatMonth(a.shownMonth.Month), a.shownMonth.Year)))
			barW := min(30, components.CardInnerWidth(cw)-40)
			for _, c := range a.shownCats {
				fmt.Fprintf(&b, "\n%-18s %12s  %s",
					truncStr(c.Category.String(), 18),
					a.amount(c.Total),
					components.ShareBar(c.SharePercent, barW))
			}
		}

	case report.PanelYearly:
		title = "Yearly Total"
		b.WriteString(labelStyle.Render("Year "))
		b.WriteString(a.yearOnlyIn.View())
		b.WriteString("   ")
		b.WriteString(totalStyle.Render(a.amount(a.panels.YearlyTotal)))
		if a.shownYear != 0 {
			b.WriteString(hintStyle.Render(fmt.Sprintf("  (%d)", a.shownYear)))
			values := make([]float64, len(a.shownBars))
			labels := make([]string, len(a.shownBars))
			for i, m := range a.shownBars {
				values[i], _ = m.Total.Float64()
				labels[i] = cli.FormatMonth(m.Month)
			}
			b.WriteString("\n\n")
			b.WriteString(components.BarChart(values, labels, t.Accent, components.CardInnerWidth(cw), 8))
		}
	}

	b.WriteString("\n")
	if focused {
		b.WriteString(hintStyle.Render("enter: show total · tab: next field · esc: back"))
	} else {
		b.WriteString(hintStyle.Render("tab: focus panel"))
	}

	return components.ContentCard(title, b.String(), cw, focused)
}
