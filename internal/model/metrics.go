package model

import "github.com/shopspring/decimal"

// SummaryStats holds the top-level aggregate for a filtered set of expenses.
type SummaryStats struct {
	Count        int
	Total        decimal.Decimal
	Average      decimal.Decimal
	Largest      decimal.Decimal
	First        Date
	Last         Date
	ActiveMonths int
}

// MonthTotal holds the total for one calendar month.
type MonthTotal struct {
	Year  int
	Month int // 1-12
	Count int
	Total decimal.Decimal
}

// CategoryTotal holds the aggregate for one category.
type CategoryTotal struct {
	Category     Category
	Count        int
	Total        decimal.Decimal
	SharePercent float64
}

// PaymentTotal holds the aggregate for one payment mode.
type PaymentTotal struct {
	PaymentMode  PaymentMode
	Count        int
	Total        decimal.Decimal
	SharePercent float64
}

// YearSummary bundles everything the summary views show for one year.
type YearSummary struct {
	Year       int
	Stats      SummaryStats
	Months     []MonthTotal
	Categories []CategoryTotal
	Payments   []PaymentTotal
}
