package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/spendlog/internal/form"
	"github.com/theirongolddev/spendlog/internal/model"
)

// NewExpenseForm builds the add/edit form bound to f. The form completes when
// the last field is confirmed; the caller then submits the controller.
func NewExpenseForm(f *form.Fields, submitLabel string) *huh.Form {
	// The blank first option keeps a fresh or cleared form empty; huh writes
	// the selected option into the bound value as soon as the field is built.
	categories := []huh.Option[string]{huh.NewOption("Select Category", "")}
	for _, c := range model.Categories {
		categories = append(categories, huh.NewOption(c.String(), c.String()))
	}
	modes := []huh.Option[string]{huh.NewOption("Payment Mode", "")}
	for _, m := range model.PaymentModes {
		modes = append(modes, huh.NewOption(string(m), string(m)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(form.FieldCategory).
				Title("Category").
				Options(categories...).
				Height(6).
				Value(&f.Category).
				Validate(requireChoice("category")),
			huh.NewInput().
				Key(form.FieldAmount).
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(validateAmount),
			huh.NewInput().
				Key(form.FieldDate).
				Title("Date").
				Placeholder(model.Today().String()).
				Value(&f.Date).
				Validate(validateDate),
			huh.NewSelect[string]().
				Key(form.FieldPaymentMode).
				Title("Payment Mode").
				Description("enter: "+submitLabel).
				Options(modes...).
				Inline(true).
				Value(&f.PaymentMode).
				Validate(requireChoice("payment mode")),
		),
	).WithShowHelp(false)
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("amount is required")
	}
	_, err := model.ParseAmount(s)
	return err
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("date is required")
	}
	_, err := model.ParseDate(s)
	return err
}

func requireChoice(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}
