// Package form implements the add/edit expense form: four raw fields and a
// Create/Edit mode that decides what a submit does.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendlog/internal/ledger"
	"github.com/theirongolddev/spendlog/internal/model"
)

// ErrIncomplete is returned when a submit is attempted with an empty field.
var ErrIncomplete = errors.New("all fields are required")

// Mode is the form's current state.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Field names used in FieldError.
const (
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDate        = "date"
	FieldPaymentMode = "payment mode"
)

// FieldError reports a present but invalid field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }
func (e *FieldError) Unwrap() error { return e.Err }

// Fields holds the raw form input.
type Fields struct {
	Category    string
	Amount      string
	Date        string
	PaymentMode string
}

// Missing returns the names of empty fields in form order.
func (f Fields) Missing() []string {
	var missing []string
	if strings.TrimSpace(f.Category) == "" {
		missing = append(missing, FieldCategory)
	}
	if strings.TrimSpace(f.Amount) == "" {
		missing = append(missing, FieldAmount)
	}
	if strings.TrimSpace(f.Date) == "" {
		missing = append(missing, FieldDate)
	}
	if strings.TrimSpace(f.PaymentMode) == "" {
		missing = append(missing, FieldPaymentMode)
	}
	return missing
}

// Expense parses the fields into an expense without an id.
func (f Fields) Expense() (model.Expense, error) {
	if missing := f.Missing(); len(missing) > 0 {
		return model.Expense{}, fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(missing, ", "))
	}
	category, err := model.ParseCategory(f.Category)
	if err != nil {
		return model.Expense{}, &FieldError{Field: FieldCategory, Err: err}
	}
	amount, err := model.ParseAmount(f.Amount)
	if err != nil {
		return model.Expense{}, &FieldError{Field: FieldAmount, Err: err}
	}
	date, err := model.ParseDate(f.Date)
	if err != nil {
		return model.Expense{}, &FieldError{Field: FieldDate, Err: err}
	}
	mode, err := model.ParsePaymentMode(f.PaymentMode)
	if err != nil {
		return model.Expense{}, &FieldError{Field: FieldPaymentMode, Err: err}
	}
	return model.Expense{
		Category:    category,
		Amount:      amount,
		Date:        date,
		PaymentMode: mode,
	}, nil
}

// FieldsOf copies an expense into raw form fields.
func FieldsOf(e model.Expense) Fields {
	return Fields{
		Category:    string(e.Category),
		Amount:      e.Amount.String(),
		Date:        e.Date.String(),
		PaymentMode: string(e.PaymentMode),
	}
}

// Store is the part of the ledger a form writes to.
type Store interface {
	Append(ctx context.Context, e model.Expense) (model.Expense, error)
	Update(ctx context.Context, id string, e model.Expense) error
}

var _ Store = (*ledger.Ledger)(nil)

// Controller is the form state machine. The zero value is an empty form in
// Create mode.
type Controller struct {
	Fields  Fields
	editing string // id of the record being edited; "" in Create mode
}

// Mode reports Create or Edit.
func (c *Controller) Mode() Mode {
	if c.editing != "" {
		return ModeEdit
	}
	return ModeCreate
}

// EditingID returns the id being edited, or "".
func (c *Controller) EditingID() string { return c.editing }

// SubmitLabel is the text of the submit button for the current mode.
func (c *Controller) SubmitLabel() string {
	if c.Mode() == ModeEdit {
		return "Update Expense"
	}
	return "Add Expense"
}

// BeginEdit loads e into the form and switches to Edit mode.
func (c *Controller) BeginEdit(e model.Expense) {
	c.Fields = FieldsOf(e)
	c.editing = e.ID
}

// Cancel leaves Edit mode and clears the fields.
func (c *Controller) Cancel() {
	c.Fields = Fields{}
	c.editing = ""
}

// Submit validates the fields and either appends a new expense (Create) or
// replaces the one being edited (Edit). On success the form is cleared and
// returns to Create mode. On validation failure nothing changes.
func (c *Controller) Submit(ctx context.Context, s Store) (model.Expense, error) {
	e, err := c.Fields.Expense()
	if err != nil {
		return model.Expense{}, err
	}

	if c.editing == "" {
		saved, err := s.Append(ctx, e)
		if err != nil {
			return model.Expense{}, err
		}
		c.Cancel()
		return saved, nil
	}

	id := c.editing
	if err := s.Update(ctx, id, e); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			// The record went away while being edited.
			c.editing = ""
		}
		return model.Expense{}, err
	}
	e.ID = id
	c.Cancel()
	return e, nil
}
