// Package report computes totals and breakdowns over the expense list.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendlog/internal/model"
)

// Filter selects expenses by year and, optionally, month. Zero fields match
// everything.
type Filter struct {
	Year  int
	Month int // 1-12, 0 for the whole year
}

// Match reports whether e passes the filter.
func (f Filter) Match(e model.Expense) bool {
	if f.Year != 0 && e.Date.Year() != f.Year {
		return false
	}
	if f.Month != 0 && int(e.Date.Month()) != f.Month {
		return false
	}
	return true
}

// FilterExpenses returns the expenses matching f, in list order.
func FilterExpenses(expenses []model.Expense, f Filter) []model.Expense {
	if f == (Filter{}) {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if f.Match(e) {
			result = append(result, e)
		}
	}
	return result
}

// Sum adds up the amounts.
func Sum(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// MonthlyTotal sums expenses dated in the given month (1-12) of year.
func MonthlyTotal(expenses []model.Expense, month, year int) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Date.InMonth(month, year) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// YearlyTotal sums expenses dated in year.
func YearlyTotal(expenses []model.Expense, year int) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Date.InYear(year) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Aggregate computes summary statistics for the expenses matching f.
func Aggregate(expenses []model.Expense, f Filter) model.SummaryStats {
	filtered := FilterExpenses(expenses, f)

	stats := model.SummaryStats{Total: decimal.Zero, Largest: decimal.Zero, Average: decimal.Zero}
	months := make(map[[2]int]struct{})

	for _, e := range filtered {
		stats.Count++
		stats.Total = stats.Total.Add(e.Amount)
		if e.Amount.GreaterThan(stats.Largest) {
			stats.Largest = e.Amount
		}
		if stats.First.IsZero() || e.Date.Before(stats.First.Time) {
			stats.First = e.Date
		}
		if stats.Last.IsZero() || e.Date.After(stats.Last.Time) {
			stats.Last = e.Date
		}
		months[[2]int{e.Date.Year(), int(e.Date.Month())}] = struct{}{}
	}

	stats.ActiveMonths = len(months)
	if stats.Count > 0 {
		stats.Average = stats.Total.Div(decimal.NewFromInt(int64(stats.Count))).Round(2)
	}
	return stats
}

// Monthly returns twelve buckets, January first, for year.
func Monthly(expenses []model.Expense, year int) []model.MonthTotal {
	months := make([]model.MonthTotal, 12)
	for i := range months {
		months[i] = model.MonthTotal{Year: year, Month: i + 1, Total: decimal.Zero}
	}
	for _, e := range expenses {
		if !e.Date.InYear(year) {
			continue
		}
		m := &months[int(e.Date.Month())-1]
		m.Count++
		m.Total = m.Total.Add(e.Amount)
	}
	return months
}

// ByCategory groups the expenses matching f by category, largest total first.
func ByCategory(expenses []model.Expense, f Filter) []model.CategoryTotal {
	filtered := FilterExpenses(expenses, f)
	grand := Sum(filtered)

	catMap := make(map[model.Category]*model.CategoryTotal)
	for _, e := range filtered {
		ct, ok := catMap[e.Category]
		if !ok {
			ct = &model.CategoryTotal{Category: e.Category, Total: decimal.Zero}
			catMap[e.Category] = ct
		}
		ct.Count++
		ct.Total = ct.Total.Add(e.Amount)
	}

	cats := make([]model.CategoryTotal, 0, len(catMap))
	for _, ct := range catMap {
		ct.SharePercent = share(ct.Total, grand)
		cats = append(cats, *ct)
	}
	sort.Slice(cats, func(i, j int) bool {
		if !cats[i].Total.Equal(cats[j].Total) {
			return cats[i].Total.GreaterThan(cats[j].Total)
		}
		return cats[i].Category < cats[j].Category
	})
	return cats
}

// ByPaymentMode groups the expenses matching f by payment mode, largest
// total first.
func ByPaymentMode(expenses []model.Expense, f Filter) []model.PaymentTotal {
	filtered := FilterExpenses(expenses, f)
	grand := Sum(filtered)

	modeMap := make(map[model.PaymentMode]*model.PaymentTotal)
	for _, e := range filtered {
		pt, ok := modeMap[e.PaymentMode]
		if !ok {
			pt = &model.PaymentTotal{PaymentMode: e.PaymentMode, Total: decimal.Zero}
			modeMap[e.PaymentMode] = pt
		}
		pt.Count++
		pt.Total = pt.Total.Add(e.Amount)
	}

	modes := make([]model.PaymentTotal, 0, len(modeMap))
	for _, pt := range modeMap {
		pt.SharePercent = share(pt.Total, grand)
		modes = append(modes, *pt)
	}
	sort.Slice(modes, func(i, j int) bool {
		if !modes[i].Total.Equal(modes[j].Total) {
			return modes[i].Total.GreaterThan(modes[j].Total)
		}
		return modes[i].PaymentMode < modes[j].PaymentMode
	})
	return modes
}

// Summarize builds the full year view used by the summary command and TUI.
func Summarize(expenses []model.Expense, year int) model.YearSummary {
	f := Filter{Year: year}
	return model.YearSummary{
		Year:       year,
		Stats:      Aggregate(expenses, f),
		Months:     Monthly(expenses, year),
		Categories: ByCategory(expenses, f),
		Payments:   ByPaymentMode(expenses, f),
	}
}

// Years returns the distinct years present, most recent first.
func Years(expenses []model.Expense) []int {
	seen := make(map[int]struct{})
	for _, e := range expenses {
		seen[e.Date.Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func share(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	f, _ := part.Div(whole).Mul(decimal.NewFromInt(100)).Float64()
	return f
}
