// Package model defines domain types for spendlog expenses and reports.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	ErrInvalidDate        = errors.New("invalid date")
)

// Expense is one logged expense. ID is assigned at creation and never changes;
// edits replace every other field.
type Expense struct {
	ID          string
	Category    Category
	Amount      decimal.Decimal
	Date        Date
	PaymentMode PaymentMode
}

// NewID returns a fresh expense identifier.
func NewID() string {
	return uuid.NewString()
}

// Validate reports the first field that breaks the record invariants.
func (e Expense) Validate() error {
	if !e.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(e.Category))
	}
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, e.Amount.String())
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if !e.PaymentMode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMode, string(e.PaymentMode))
	}
	return nil
}

// Equal compares two expenses field by field, treating amounts numerically.
func (e Expense) Equal(o Expense) bool {
	return e.ID == o.ID &&
		e.Category == o.Category &&
		e.Amount.Equal(o.Amount) &&
		e.Date.Equal(o.Date) &&
		e.PaymentMode == o.PaymentMode
}

// ParseAmount parses a strictly positive decimal amount. A comma is accepted
// as the decimal separator.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmount)
	}
	return d, nil
}
