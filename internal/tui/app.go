// Package tui provides the interactive Bubble Tea dashboard for spendlog.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendlog/internal/cli"
	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/export"
	"github.com/theirongolddev/spendlog/internal/form"
	"github.com/theirongolddev/spendlog/internal/ledger"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/report"
	"github.com/theirongolddev/spendlog/internal/tui/components"
	"github.com/theirongolddev/spendlog/internal/tui/theme"
)

// zone is the part of the screen that receives keys.
type zone int

const (
	zoneList zone = iota
	zoneForm
	zonePanel
)

// Options configures NewApp.
type Options struct {
	Logger zerolog.Logger
	// FirstRun shows the setup wizard before the dashboard.
	FirstRun bool
}

// App is the root Bubble Tea model.
type App struct {
	ledger *ledger.Ledger
	cfg    config.Config
	log    zerolog.Logger
	keys   keyMap
	help   help.Model

	// Data, refreshed after every mutation
	expenses   []model.Expense
	stats      model.SummaryStats
	monthTotal decimal.Decimal
	yearTotal  decimal.Decimal
	today      model.Date

	// Form
	ctrl *form.Controller
	form *huh.Form

	// Totals panels
	panels     report.Panels
	monthIn    textinput.Model
	yearIn     textinput.Model
	yearOnlyIn textinput.Model
	inputIdx   int
	shownMonth report.Filter // zero until a monthly total is shown
	shownYear  int
	shownCats  []model.CategoryTotal // breakdown captured with the monthly total
	shownBars  []model.MonthTotal    // buckets captured with the yearly total

	// UI state
	focus     zone
	cursor    int
	busy      bool
	spinner   spinner.Model
	status    string
	statusErr bool
	showHelp  bool
	width     int
	height    int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 160
	formCardWidth    = 46
	minContentHeight = 5
	minListRows      = 3
)

// NewApp creates the dashboard over l.
func NewApp(l *ledger.Ledger, cfg config.Config, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		ledger:     l,
		cfg:        cfg,
		log:        opts.Logger,
		keys:       defaultKeyMap(),
		help:       help.New(),
		ctrl:       &form.Controller{},
		monthIn:    newPanelInput("MM", 2),
		yearIn:     newPanelInput("YYYY", 4),
		yearOnlyIn: newPanelInput("YYYY", 4),
		spinner:    sp,
		focus:      zoneForm,
		needSetup:  opts.FirstRun,
	}
	a.form = NewExpenseForm(&a.ctrl.Fields, a.ctrl.SubmitLabel())
	if a.needSetup {
		vals := SetupValuesFrom(cfg)
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals)
	}
	if l.Quarantined != "" {
		a.setStatus("Stored expenses were unreadable and moved to "+l.Quarantined, true)
	}
	a.setExpenses(l.List())
	return a
}

func newPanelInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit + 1
	ti.Prompt = ""
	return ti
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.form.Init(),
	}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// setExpenses replaces the displayed list and recomputes the headline totals.
func (a *App) setExpenses(expenses []model.Expense) {
	a.expenses = expenses
	a.today = model.Today()
	a.stats = report.Aggregate(expenses, report.Filter{})
	a.monthTotal = report.MonthlyTotal(expenses, int(a.today.Month()), a.today.Year())
	a.yearTotal = report.YearlyTotal(expenses, a.today.Year())

	if a.cursor >= len(expenses) {
		a.cursor = len(expenses) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

func (a *App) resetForm() tea.Cmd {
	a.form = NewExpenseForm(&a.ctrl.Fields, a.ctrl.SubmitLabel())
	if w := a.formWidth(); w > 0 {
		a.form = a.form.WithWidth(components.CardInnerWidth(w))
	}
	return a.form.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.form = a.form.WithWidth(components.CardInnerWidth(a.formWidth()))
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch a.focus {
		case zoneForm:
			return a.updateFormKeys(msg)
		case zonePanel:
			return a.updatePanelKeys(msg)
		default:
			return a.updateListKeys(msg)
		}

	case submittedMsg:
		a.busy = false
		*a.ctrl = msg.ctrl
		a.setExpenses(msg.expenses)
		if len(a.expenses) > 0 {
			a.panels.ClearNotice()
		}
		a.handleSubmitResult(msg)
		return a, a.resetForm()

	case deletedMsg:
		a.busy = false
		a.setExpenses(msg.expenses)
		if a.panels.CloseIfEmpty(len(a.expenses)) && a.focus == zonePanel {
			a.blurInputs()
			a.focus = zoneList
		}
		if msg.err != nil {
			a.log.Error().Err(msg.err).Str("id", msg.deleted.ID).Msg("delete failed")
			a.setStatus("Delete failed: "+msg.err.Error(), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Deleted %s %s", msg.deleted.Category, a.amount(msg.deleted.Amount)), false)
		// Deleting the record being edited drops back to create mode.
		if a.ctrl.EditingID() == msg.deleted.ID {
			a.ctrl.Cancel()
			return a, a.resetForm()
		}
		return a, nil

	case exportedMsg:
		a.busy = false
		switch {
		case errors.Is(msg.err, export.ErrEmpty):
			a.setStatus(report.EmptyNotice, false)
		case msg.err != nil:
			a.log.Error().Err(msg.err).Msg("export failed")
			a.setStatus("Export failed: "+msg.err.Error(), true)
		default:
			a.log.Info().Str("path", msg.path).Msg("exported expenses")
			a.setStatus("Exported to "+msg.path, false)
		}
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	// Forward everything else (cursor blinks, etc.) to whatever owns focus.
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.focus == zonePanel {
		return a.forwardToInput(msg)
	}
	return a.updateForm(msg)
}

func (a *App) handleSubmitResult(msg submittedMsg) {
	var fe *form.FieldError
	switch {
	case msg.err == nil:
		verb := "Added"
		if msg.edited {
			verb = "Updated"
		}
		a.setStatus(fmt.Sprintf("%s %s %s", verb, msg.saved.Category, a.amount(msg.saved.Amount)), false)
		if i := a.indexOf(msg.saved.ID); i >= 0 {
			a.cursor = i
		}
	case errors.Is(msg.err, form.ErrIncomplete):
		a.setStatus("", false)
	case errors.As(msg.err, &fe):
		a.setStatus("Invalid "+fe.Error(), true)
	case errors.Is(msg.err, ledger.ErrNotFound):
		a.setStatus("The expense being edited was deleted", true)
	default:
		a.log.Error().Err(msg.err).Msg("saving expense failed")
		a.setStatus("Save failed: "+msg.err.Error(), true)
	}
}

func (a App) indexOf(id string) int {
	for i, e := range a.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// ─── Form ───────────────────────────────────────────────────────

func (a App) updateFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Back) {
		if a.ctrl.Mode() == form.ModeEdit {
			a.ctrl.Cancel()
			a.setStatus("Edit cancelled", false)
			a.focus = zoneList
			return a, a.resetForm()
		}
		a.focus = zoneList
		return a, nil
	}
	return a.updateForm(msg)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	m, cmd := a.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.busy = true
		return a, tea.Batch(submitCmd(a.ledger, *a.ctrl), a.spinner.Tick)
	case huh.StateAborted:
		return a, a.resetForm()
	}
	return a, cmd
}

// ─── List ───────────────────────────────────────────────────────

func (a App) updateListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(a.expenses)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Top):
		a.cursor = 0
	case key.Matches(msg, a.keys.Bottom):
		a.cursor = max(len(a.expenses)-1, 0)
	case key.Matches(msg, a.keys.Add):
		a.focus = zoneForm
	case key.Matches(msg, a.keys.Edit):
		if len(a.expenses) == 0 || a.busy {
			return a, nil
		}
		a.ctrl.BeginEdit(a.expenses[a.cursor])
		a.focus = zoneForm
		a.setStatus("Editing expense "+cli.ShortID(a.ctrl.EditingID()), false)
		return a, a.resetForm()
	case key.Matches(msg, a.keys.Delete):
		if len(a.expenses) == 0 || a.busy {
			return a, nil
		}
		a.busy = true
		return a, tea.Batch(deleteCmd(a.ledger, a.expenses[a.cursor]), a.spinner.Tick)
	case key.Matches(msg, a.keys.Back):
		if a.ctrl.Mode() == form.ModeEdit {
			a.ctrl.Cancel()
			a.setStatus("Edit cancelled", false)
			return a, a.resetForm()
		}
	case key.Matches(msg, a.keys.Focus):
		if a.panels.Open() != report.PanelNone {
			return a.focusPanel()
		}
		a.focus = zoneForm
	default:
		return a.updateActionKeys(msg)
	}
	return a, nil
}

func (a App) updateActionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Monthly, a.keys.Yearly, a.keys.Export) && len(msg.Runes) == 1 {
		return a.triggerAction(components.ActionIdxByKey(msg.Runes[0]))
	}
	return a, nil
}

// triggerAction runs the action button at idx in components.Actions.
func (a App) triggerAction(idx int) (tea.Model, tea.Cmd) {
	switch idx {
	case 0:
		a.panels.ToggleMonthly(len(a.expenses))
	case 1:
		a.panels.ToggleYearly(len(a.expenses))
	case 2:
		if a.busy {
			return a, nil
		}
		if len(a.expenses) == 0 {
			a.setStatus(report.EmptyNotice, false)
			return a, nil
		}
		a.busy = true
		return a, tea.Batch(exportCmd(a.expenses, a.cfg.Export.Dir, a.cfg.Export.Format), a.spinner.Tick)
	default:
		return a, nil
	}

	if a.panels.Open() == report.PanelNone {
		if a.focus == zonePanel {
			a.focus = zoneList
		}
		return a, nil
	}
	return a.focusPanel()
}

// ─── Mouse ──────────────────────────────────────────────────────

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.cursor > 0 {
			a.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.cursor < len(a.expenses)-1 {
			a.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress || a.width == 0 {
			return a, nil
		}
		if msg.Y == a.actionBarY() {
			x := msg.X - (a.width-a.contentWidth())/2
			if idx := components.ActionAtX(x, a.activeAction()); idx >= 0 {
				return a.triggerAction(idx)
			}
		}
	}
	return a, nil
}

// activeAction is the action button highlighted for the open panel.
func (a App) activeAction() int {
	switch a.panels.Open() {
	case report.PanelMonthly:
		return 0
	case report.PanelYearly:
		return 1
	default:
		return -1
	}
}

// ─── Setup ──────────────────────────────────────────────────────

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.setupForm.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) saveSetupConfig() {
	cfg := a.cfg
	a.setupVals.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		a.setStatus("Settings not saved: "+err.Error(), true)
		return
	}
	if err := config.Save(cfg); err != nil {
		a.log.Error().Err(err).Msg("saving config")
		a.setStatus("Could not save config: "+err.Error(), true)
		return
	}
	storageChanged := cfg.Storage != a.cfg.Storage
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	if storageChanged {
		a.setStatus("Settings saved; storage changes apply on next start", false)
		return
	}
	a.setStatus("Settings saved to "+config.ConfigPath(), false)
}

// ─── View ───────────────────────────────────────────────────────

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) formWidth() int {
	if a.width == 0 {
		return 0
	}
	return formCardWidth
}

func (a App) amount(d decimal.Decimal) string {
	return cli.FormatAmount(a.cfg.General.CurrencySymbol, d)
}

// yearSparkline charts this year's monthly totals, January to December.
func (a App) yearSparkline() string {
	months := report.Monthly(a.expenses, a.today.Year())
	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = m.Total.InexactFloat64()
	}
	return components.Sparkline(values, theme.Active.Accent)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  spendlog needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("In the form: tab/shift+tab move between fields, enter confirms."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderTop renders everything above the action bar.
func (a App) renderTop(cw int) string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	header := " " + logoStyle.Render("◈ spendlog") + subStyle.Render(" · Expense Tracker")

	metrics := components.MetricRow([]components.Metric{
		{Label: "Total", Value: a.amount(a.stats.Total), Hint: fmt.Sprintf("%d expenses", a.stats.Count)},
		{Label: "This Month", Value: a.amount(a.monthTotal), Hint: a.today.Format("January 2006")},
		{Label: "This Year", Value: a.amount(a.yearTotal), Hint: a.today.Format("2006") + " " + a.yearSparkline()},
		{Label: "Average", Value: a.amount(a.stats.Average), Hint: fmt.Sprintf("largest %s", a.amount(a.stats.Largest))},
	}, cw)

	fw := formCardWidth
	formTitle := a.ctrl.SubmitLabel()
	formBody := a.form.View()
	if a.ctrl.Mode() == form.ModeEdit {
		formBody += "\n" + subStyle.Render("esc: cancel edit")
	}
	formCard := components.ContentCard(formTitle, formBody, fw, a.focus == zoneForm)

	listCard := a.renderList(cw-fw, lipgloss.Height(formCard))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		metrics,
		components.CardRow([]string{formCard, listCard}),
	)
}

func (a App) actionBarY() int {
	return lipgloss.Height(a.renderTop(a.contentWidth()))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	top := a.renderTop(cw)
	actions := components.RenderActionBar(a.activeAction(), cw)

	var below string
	switch {
	case a.panels.EmptyNotice() != "":
		below = lipgloss.NewStyle().Foreground(t.Orange).Render("  " + a.panels.EmptyNotice())
	case a.panels.Open() != report.PanelNone:
		below = a.renderPanel(cw)
	}

	statusMsg := a.status
	if a.busy {
		statusMsg = a.spinner.View() + " working…"
	}
	right := fmt.Sprintf("%d expenses · %s", len(a.expenses), a.cfg.Storage.Backend)
	statusBar := components.RenderStatusBar(w, statusMsg, a.statusErr && !a.busy, right)

	content := lipgloss.JoinVertical(lipgloss.Left, top, actions, below)
	contentH := max(h-lipgloss.Height(statusBar), minContentHeight)
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
