// Package export writes the expense list as CSV or XLSX.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/report"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("no expenses to export")

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Header is the column row written first by every format.
var Header = []string{"Category", "Amount", "Date", "Payment Mode"}

const sheetName = "Expenses"

// Filename returns the output file name for a format.
func Filename(format string) string {
	return "expenses." + format
}

// CSV writes the list as RFC 4180 CSV, header first, in list order.
func CSV(w io.Writer, expenses []model.Expense) error {
	if len(expenses) == 0 {
		return ErrEmpty
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range expenses {
		if err := cw.Write(row(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// XLSX writes the list as a single-sheet workbook with a totals row.
func XLSX(w io.Writer, expenses []model.Expense) error {
	if len(expenses) == 0 {
		return ErrEmpty
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	for col, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", headerStyle); err != nil {
		return err
	}

	for i, e := range expenses {
		r := i + 2
		amount, _ := e.Amount.Float64()
		values := []any{string(e.Category), amount, e.Date.String(), string(e.PaymentMode)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	last := len(expenses) + 1
	totalRow := last + 1
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return err
	}
	total, _ := report.Sum(expenses).Float64()
	if err := f.SetCellValue(sheetName, fmt.Sprintf("B%d", totalRow), total); err != nil {
		return err
	}
	if err := f.SetCellFormula(sheetName, fmt.Sprintf("B%d", totalRow), fmt.Sprintf("SUM(B2:B%d)", last)); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("B%d", totalRow), headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(sheetName, "A", "A", 20)
	_ = f.SetColWidth(sheetName, "D", "D", 14)

	return f.Write(w)
}

// Write dispatches to the writer for format.
func Write(w io.Writer, format string, expenses []model.Expense) error {
	switch strings.ToLower(format) {
	case "", FormatCSV:
		return CSV(w, expenses)
	case FormatXLSX:
		return XLSX(w, expenses)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// ToFile writes the list into dir as expenses.<format> and returns the path.
// The file only appears once fully written; an empty list creates nothing.
func ToFile(dir, format string, expenses []model.Expense) (string, error) {
	if len(expenses) == 0 {
		return "", ErrEmpty
	}
	if format == "" {
		format = FormatCSV
	}
	format = strings.ToLower(format)
	if format != FormatCSV && format != FormatXLSX {
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	path := filepath.Join(dir, Filename(format))
	tmp, err := os.CreateTemp(dir, ".expenses-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := Write(tmp, format, expenses); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func row(e model.Expense) []string {
	return []string{
		string(e.Category),
		e.Amount.String(),
		e.Date.String(),
		string(e.PaymentMode),
	}
}
