package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendlog/internal/config"
	"github.com/theirongolddev/spendlog/internal/form"
	"github.com/theirongolddev/spendlog/internal/ledger"
	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/report"
	"github.com/theirongolddev/spendlog/internal/store"
	"github.com/theirongolddev/spendlog/internal/tui/components"
)

func seedExpenses() []model.Expense {
	return []model.Expense{
		{Category: model.CategoryFood, Amount: decimal.NewFromInt(100), Date: model.NewDate(2024, time.March, 5), PaymentMode: model.PaymentCash},
		{Category: model.CategoryRent, Amount: decimal.NewFromInt(50), Date: model.NewDate(2024, time.April, 1), PaymentMode: model.PaymentUPI},
	}
}

func newTestApp(t *testing.T, seed ...model.Expense) (App, *ledger.Ledger) {
	t.Helper()
	ctx := context.Background()
	repo, err := store.NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	l, err := ledger.Open(ctx, repo, ledger.Options{})
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	for _, e := range seed {
		if _, err := l.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	m, _ := NewApp(l, cfg, Options{}).Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	return m.(App), l
}

func send(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app, cmd
}

func keys(t *testing.T, a App, ks ...string) App {
	t.Helper()
	for _, k := range ks {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		a, _ = send(t, a, msg)
	}
	return a
}

// collect runs cmd and any batched commands, returning the messages of type T.
func collect[T any](t *testing.T, cmd tea.Cmd) []T {
	t.Helper()
	var out []T
	var walk func(tea.Cmd)
	walk = func(c tea.Cmd) {
		if c == nil {
			return
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			for _, sub := range msg {
				walk(sub)
			}
		case T:
			out = append(out, msg)
		}
	}
	walk(cmd)
	return out
}

func TestPanelToggleSuppressedWhenEmpty(t *testing.T) {
	a, _ := newTestApp(t)
	a = keys(t, a, "esc", "m")

	if a.panels.Open() != report.PanelNone {
		t.Fatalf("panel = %v, want none", a.panels.Open())
	}
	if !strings.Contains(a.View(), report.EmptyNotice) {
		t.Fatal("view does not show the empty notice")
	}
}

func TestPanelsAreExclusive(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc", "m")
	if a.panels.Open() != report.PanelMonthly || a.focus != zonePanel {
		t.Fatalf("panel = %v focus = %v, want monthly/panel", a.panels.Open(), a.focus)
	}

	a = keys(t, a, "esc", "y")
	if a.panels.Open() != report.PanelYearly {
		t.Fatalf("panel = %v, want yearly", a.panels.Open())
	}

	a = keys(t, a, "esc", "y")
	if a.panels.Open() != report.PanelNone || a.focus != zoneList {
		t.Fatalf("panel = %v focus = %v, want closed/list", a.panels.Open(), a.focus)
	}
}

func TestShowMonthlyTotal(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc", "m", "3")

	// Only the month is filled in: nothing happens.
	a = keys(t, a, "enter")
	if !a.panels.MonthlyTotal.IsZero() {
		t.Fatalf("MonthlyTotal = %s before year entered", a.panels.MonthlyTotal)
	}

	a = keys(t, a, "tab", "2", "0", "2", "4", "enter")
	if !a.panels.MonthlyTotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("MonthlyTotal = %s, want 100", a.panels.MonthlyTotal)
	}
	if a.shownMonth != (report.Filter{Year: 2024, Month: 3}) {
		t.Fatalf("shownMonth = %+v", a.shownMonth)
	}
}

func TestShowYearlyTotal(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc", "y", "2", "0", "2", "4", "enter")
	if !a.panels.YearlyTotal.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("YearlyTotal = %s, want 150", a.panels.YearlyTotal)
	}
	if !strings.Contains(a.View(), "Mar") {
		t.Fatal("yearly panel does not render the month chart")
	}
}

func TestDeleteSelected(t *testing.T) {
	a, l := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc", "j")
	if a.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.cursor)
	}

	a, cmd := send(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	msgs := collect[deletedMsg](t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d deletedMsg, want 1", len(msgs))
	}
	a, _ = send(t, a, msgs[0])

	if l.Len() != 1 || len(a.expenses) != 1 {
		t.Fatalf("len = %d/%d, want 1", l.Len(), len(a.expenses))
	}
	if a.expenses[0].Category != model.CategoryFood {
		t.Fatalf("remaining = %s, want Food", a.expenses[0].Category)
	}
	if a.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", a.cursor)
	}
}

func TestEditAndCancel(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc", "e")

	if a.ctrl.Mode() != form.ModeEdit || a.focus != zoneForm {
		t.Fatalf("mode = %v focus = %v, want edit/form", a.ctrl.Mode(), a.focus)
	}
	if a.ctrl.Fields.Amount != "100" || a.ctrl.Fields.Date != "2024-03-05" {
		t.Fatalf("fields = %+v, want first expense", a.ctrl.Fields)
	}
	if !strings.Contains(a.View(), "Update Expense") {
		t.Fatal("form title should read Update Expense")
	}

	a = keys(t, a, "esc")
	if a.ctrl.Mode() != form.ModeCreate || a.ctrl.Fields != (form.Fields{}) {
		t.Fatalf("after esc mode = %v fields = %+v", a.ctrl.Mode(), a.ctrl.Fields)
	}
}

func TestSubmitResultUpdatesList(t *testing.T) {
	a, l := newTestApp(t, seedExpenses()...)

	ctrl := form.Controller{Fields: form.Fields{Category: "Travel", Amount: "75", Date: "2024-05-01", PaymentMode: "UPI"}}
	msgs := collect[submittedMsg](t, submitCmd(l, ctrl))
	a, _ = send(t, a, msgs[0])

	if len(a.expenses) != 3 || a.expenses[2].Category != model.CategoryTravel {
		t.Fatalf("expenses = %+v", a.expenses)
	}
	if !strings.HasPrefix(a.status, "Added Travel") {
		t.Fatalf("status = %q", a.status)
	}
	if a.ctrl.Fields != (form.Fields{}) {
		t.Fatalf("form not cleared: %+v", a.ctrl.Fields)
	}
}

func TestSubmitInvalidFieldShowsError(t *testing.T) {
	a, l := newTestApp(t)

	ctrl := form.Controller{Fields: form.Fields{Category: "Food", Amount: "-5", Date: "2024-05-01", PaymentMode: "Cash"}}
	msgs := collect[submittedMsg](t, submitCmd(l, ctrl))
	a, _ = send(t, a, msgs[0])

	if !a.statusErr || !strings.Contains(a.status, "amount") {
		t.Fatalf("status = %q (err=%v), want amount error", a.status, a.statusErr)
	}
	if l.Len() != 0 {
		t.Fatalf("len = %d, want 0", l.Len())
	}
	if a.ctrl.Fields.Amount != "-5" {
		t.Fatal("form should keep the invalid input")
	}
}

func TestExport(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	a, cmd := send(t, keys(t, a, "esc"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	msgs := collect[exportedMsg](t, cmd)
	if len(msgs) != 1 || msgs[0].err != nil {
		t.Fatalf("export msgs = %+v", msgs)
	}
	a, _ = send(t, a, msgs[0])
	if !strings.HasPrefix(a.status, "Exported to") {
		t.Fatalf("status = %q", a.status)
	}
	if _, err := os.Stat(filepath.Join(a.cfg.Export.Dir, "expenses.csv")); err != nil {
		t.Fatalf("export file: %v", err)
	}
}

func TestExportEmptyShowsNotice(t *testing.T) {
	a, _ := newTestApp(t)
	a, cmd := send(t, keys(t, a, "esc"), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd != nil {
		t.Fatal("empty export should not start a command")
	}
	if a.status != report.EmptyNotice {
		t.Fatalf("status = %q", a.status)
	}
}

func TestActionBarClick(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc")

	x := 1 + components.ActionVisualWidth(components.Actions[0], false) + 1 + 2
	a, _ = send(t, a, tea.MouseMsg{X: x, Y: a.actionBarY(), Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if a.panels.Open() != report.PanelYearly {
		t.Fatalf("panel = %v, want yearly after clicking Yearly", a.panels.Open())
	}
}

func TestViewShowsList(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	v := a.View()
	for _, want := range []string{"Add Expense", "Expenses (2)", "Food", "Rent", "Monthly", "Yearly", "Export"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestVisibleWindowKeepsCursorOnScreen(t *testing.T) {
	start, end := visibleWindow(12, 20, 5)
	if start != 8 || end != 13 {
		t.Fatalf("visibleWindow = [%d,%d), want [8,13)", start, end)
	}
	start, end = visibleWindow(0, 3, 5)
	if start != 0 || end != 3 {
		t.Fatalf("visibleWindow = [%d,%d), want [0,3)", start, end)
	}
}

func TestFreshFormIsBlank(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	if a.ctrl.Fields != (form.Fields{}) {
		t.Fatalf("fresh form fields = %+v, want all empty", a.ctrl.Fields)
	}
	if err := requireChoice("category")(""); err == nil {
		t.Fatal("empty category choice accepted")
	}
	if err := requireChoice("payment mode")("UPI"); err != nil {
		t.Fatalf("requireChoice(UPI) = %v, want nil", err)
	}
}

func TestEditKeepsSelectedChoices(t *testing.T) {
	a, _ := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc", "j", "e")
	if a.ctrl.Fields.Category != "Rent" || a.ctrl.Fields.PaymentMode != "UPI" {
		t.Fatalf("fields = %+v, want Rent/UPI", a.ctrl.Fields)
	}
}

func TestPanelBreakdownWaitsForShow(t *testing.T) {
	a, l := newTestApp(t, seedExpenses()...)
	a = keys(t, a, "esc", "m", "3", "tab", "2", "0", "2", "4", "enter")
	if !a.panels.MonthlyTotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("MonthlyTotal = %s, want 100", a.panels.MonthlyTotal)
	}

	ctrl := form.Controller{Fields: form.Fields{Category: "Travel", Amount: "999", Date: "2024-03-09", PaymentMode: "Cash"}}
	msgs := collect[submittedMsg](t, submitCmd(l, ctrl))
	a, _ = send(t, a, msgs[0])

	panel := a.renderPanel(a.contentWidth())
	if strings.Contains(panel, "Travel") {
		t.Fatalf("breakdown changed before Show Total:\n%s", panel)
	}
	if !a.panels.MonthlyTotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("MonthlyTotal = %s, want 100 until shown again", a.panels.MonthlyTotal)
	}

	a = keys(t, a, "enter")
	if !a.panels.MonthlyTotal.Equal(decimal.NewFromInt(1099)) {
		t.Fatalf("MonthlyTotal = %s, want 1099", a.panels.MonthlyTotal)
	}
	if !strings.Contains(a.renderPanel(a.contentWidth()), "Travel") {
		t.Fatal("breakdown missing Travel after Show Total")
	}
}

func TestDeletingLastExpenseClosesPanel(t *testing.T) {
	a, l := newTestApp(t, seedExpenses()[0])
	a = keys(t, a, "esc", "m")
	if a.panels.Open() != report.PanelMonthly {
		t.Fatalf("panel = %v, want monthly", a.panels.Open())
	}

	msgs := collect[deletedMsg](t, deleteCmd(l, a.expenses[0]))
	a, _ = send(t, a, msgs[0])

	if a.panels.Open() != report.PanelNone {
		t.Fatalf("panel = %v, want closed", a.panels.Open())
	}
	if a.focus != zoneList {
		t.Fatalf("focus = %v, want list", a.focus)
	}
	if !strings.Contains(a.View(), report.EmptyNotice) {
		t.Fatal("view does not show the empty notice")
	}
}
