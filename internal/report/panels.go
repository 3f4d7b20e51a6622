package report

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendlog/internal/model"
)

// EmptyNotice is shown instead of a totals panel when there is nothing to sum.
const EmptyNotice = "No expenses available. Please add some first."

// ErrMissingInput is returned by the Show actions when month or year is blank.
var ErrMissingInput = errors.New("month and year are required")

// ErrInvalidInput is returned when month or year does not parse.
var ErrInvalidInput = errors.New("invalid month or year")

// Panel identifies which totals panel is open.
type Panel int

const (
	PanelNone Panel = iota
	PanelMonthly
	PanelYearly
)

func (p Panel) String() string {
	switch p {
	case PanelMonthly:
		return "monthly"
	case PanelYearly:
		return "yearly"
	default:
		return "none"
	}
}

// Panels tracks the monthly/yearly totals panels. At most one is open, and
// totals only change when a Show action runs.
type Panels struct {
	open   Panel
	notice string

	Month string
	Year  string

	// YearOnly is the year input of the yearly panel.
	YearOnly string

	MonthlyTotal decimal.Decimal
	YearlyTotal  decimal.Decimal
}

// Open returns the panel currently shown.
func (p *Panels) Open() Panel { return p.open }

// EmptyNotice returns the notice set by the last suppressed toggle, or "".
func (p *Panels) EmptyNotice() string { return p.notice }

// ClearNotice dismisses the empty-list notice.
func (p *Panels) ClearNotice() { p.notice = "" }

// ToggleMonthly opens the monthly panel, closing the yearly one, or closes it
// if already open. count is the current list length; with no expenses the
// toggle is suppressed and the notice set.
func (p *Panels) ToggleMonthly(count int) {
	p.toggle(PanelMonthly, count)
}

// ToggleYearly is the yearly counterpart of ToggleMonthly.
func (p *Panels) ToggleYearly(count int) {
	p.toggle(PanelYearly, count)
}

func (p *Panels) toggle(target Panel, count int) {
	if count == 0 {
		p.notice = EmptyNotice
		return
	}
	p.notice = ""
	if p.open == target {
		p.open = PanelNone
		return
	}
	p.open = target
}

// CloseIfEmpty closes the open panel and sets the notice once the list has
// become empty. It reports whether a panel was closed.
func (p *Panels) CloseIfEmpty(count int) bool {
	if count > 0 || p.open == PanelNone {
		return false
	}
	p.open = PanelNone
	p.notice = EmptyNotice
	return true
}

// ShowMonthlyTotal recomputes MonthlyTotal from the Month and Year inputs.
// Blank input leaves the total unchanged.
func (p *Panels) ShowMonthlyTotal(expenses []model.Expense) error {
	ms, ys := strings.TrimSpace(p.Month), strings.TrimSpace(p.Year)
	if ms == "" || ys == "" {
		return ErrMissingInput
	}
	month, err := strconv.Atoi(ms)
	if err != nil || month < 1 || month > 12 {
		return ErrInvalidInput
	}
	year, err := strconv.Atoi(ys)
	if err != nil {
		return ErrInvalidInput
	}
	p.MonthlyTotal = MonthlyTotal(expenses, month, year)
	return nil
}

// ShowYearlyTotal recomputes YearlyTotal from the YearOnly input.
func (p *Panels) ShowYearlyTotal(expenses []model.Expense) error {
	ys := strings.TrimSpace(p.YearOnly)
	if ys == "" {
		return ErrMissingInput
	}
	year, err := strconv.Atoi(ys)
	if err != nil {
		return ErrInvalidInput
	}
	p.YearlyTotal = YearlyTotal(expenses, year)
	return nil
}
