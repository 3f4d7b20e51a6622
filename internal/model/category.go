package model

import (
	"fmt"
	"strings"
)

// Category is one of the fixed expense labels.
type Category string

const (
	CategoryFood           Category = "Food"
	CategoryRent           Category = "Rent"
	CategoryTravel         Category = "Travel"
	CategoryGroceries      Category = "Groceries"
	CategoryUtilities      Category = "Utilities"
	CategoryHealth         Category = "Health"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryTransport      Category = "Transport"
	CategorySavings        Category = "Savings"
	CategoryInsurance      Category = "Insurance"
	CategorySubscription   Category = "Subscription"
	CategoryInvestment     Category = "Investment"
	CategoryMaintenance    Category = "Maintenance"
	CategoryMobileInternet Category = "Mobile & Internet"
	CategoryLoanRepayment  Category = "Loan Repayment"
	CategoryMiscellaneous  Category = "Miscellaneous"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryRent,
	CategoryTravel,
	CategoryGroceries,
	CategoryUtilities,
	CategoryHealth,
	CategoryEntertainment,
	CategoryShopping,
	CategoryTransport,
	CategorySavings,
	CategoryInsurance,
	CategorySubscription,
	CategoryInvestment,
	CategoryMaintenance,
	CategoryMobileInternet,
	CategoryLoanRepayment,
	CategoryMiscellaneous,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string { return string(c) }

// ParseCategory matches s against the known labels, ignoring case and
// surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// PaymentMode is how an expense was paid.
type PaymentMode string

const (
	PaymentCash PaymentMode = "Cash"
	PaymentUPI  PaymentMode = "UPI"
)

// PaymentModes lists every payment mode in display order.
var PaymentModes = []PaymentMode{PaymentCash, PaymentUPI}

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	return m == PaymentCash || m == PaymentUPI
}

func (m PaymentMode) String() string { return string(m) }

// ParsePaymentMode matches s against the known modes, ignoring case.
func ParsePaymentMode(s string) (PaymentMode, error) {
	s = strings.TrimSpace(s)
	for _, m := range PaymentModes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMode, s)
}
