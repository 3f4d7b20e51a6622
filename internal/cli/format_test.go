package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"100", "₹100.00"},
		{"1234.5", "₹1,234.50"},
		{"1234567.891", "₹1,234,567.89"},
		{"-12", "-₹12.00"},
	}
	for _, tt := range tests {
		got := FormatAmount("₹", decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -4200: "-4,200", 1000000000: "1,000,000,000"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Fatalf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth(3); got != "Mar" {
		t.Fatalf("FormatMonth(3) = %q, want Mar", got)
	}
	if got := FormatMonth(13); got != "???" {
		t.Fatalf("FormatMonth(13) = %q, want ???", got)
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Fatalf("ShortID = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Expenses",
		Headers: []string{"Category", "Amount"},
		Rows:    [][]string{{"Food", "₹100.00"}, {"---"}, {"Rent", "₹50.00"}},
		Footer:  []string{"Total", "₹150.00"},
	})
	for _, want := range []string{"Expenses", "Category", "Food", "Rent", "Total", "₹150.00", "╭"} {
		if !strings.Contains(out, want) {
			t.Fatalf("RenderTable output missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Fatal("empty table should render nothing")
	}
}

func TestToRowKeepsCellOrder(t *testing.T) {
	row := toRow([]string{"Food", "₹100.00", "2024-03-05"})
	if len(row) != 3 {
		t.Fatalf("len(row) = %d, want 3", len(row))
	}
	if row[0] != "Food" || row[2] != "2024-03-05" {
		t.Fatalf("row = %v, want cells in input order", row)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1}); got != "▁█" {
		t.Fatalf("RenderSparkline = %q, want ▁█", got)
	}
}
