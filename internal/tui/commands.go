package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/spendlog/internal/export"
	"github.com/theirongolddev/spendlog/internal/form"
	"github.com/theirongolddev/spendlog/internal/ledger"
	"github.com/theirongolddev/spendlog/internal/model"
)

const opTimeout = 10 * time.Second

// submittedMsg carries the result of a form submission.
type submittedMsg struct {
	ctrl     form.Controller
	edited   bool
	saved    model.Expense
	expenses []model.Expense
	err      error
}

// deletedMsg carries the result of a delete.
type deletedMsg struct {
	deleted  model.Expense
	expenses []model.Expense
	err      error
}

// exportedMsg carries the result of an export.
type exportedMsg struct {
	path string
	err  error
}

// submitCmd submits a copy of the controller so the UI keeps its own state
// until the result arrives.
func submitCmd(l *ledger.Ledger, ctrl form.Controller) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		edited := ctrl.Mode() == form.ModeEdit
		saved, err := ctrl.Submit(ctx, l)
		return submittedMsg{ctrl: ctrl, edited: edited, saved: saved, expenses: l.List(), err: err}
	}
}

func deleteCmd(l *ledger.Ledger, e model.Expense) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		err := l.Delete(ctx, e.ID)
		return deletedMsg{deleted: e, expenses: l.List(), err: err}
	}
}

func exportCmd(expenses []model.Expense, dir, format string) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ToFile(dir, format, expenses)
		return exportedMsg{path: path, err: err}
	}
}
