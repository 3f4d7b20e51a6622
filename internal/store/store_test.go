package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/model"
)

func sampleExpenses() []model.Expense {
	return []model.Expense{
		{
			ID:          "a1",
			Category:    model.CategoryFood,
			Amount:      decimal.RequireFromString("100"),
			Date:        model.NewDate(2024, time.March, 5),
			PaymentMode: model.PaymentCash,
		},
		{
			ID:          "b2",
			Category:    model.CategoryMobileInternet,
			Amount:      decimal.RequireFromString("49.99"),
			Date:        model.NewDate(2024, time.April, 1),
			PaymentMode: model.PaymentUPI,
		},
	}
}

func assertSameList(t *testing.T, got, want []model.Expense) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func repositories(t *testing.T) map[string]Repository {
	t.Helper()
	out := make(map[string]Repository)
	for _, backend := range []string{BackendFile, BackendSQLite} {
		repo, err := Open(backend, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%s): %v", backend, err)
		}
		t.Cleanup(func() { _ = repo.Close() })
		out[backend] = repo
	}
	return out
}

func TestRepository_EmptyWhenAbsent(t *testing.T) {
	for name, repo := range repositories(t) {
		got, err := repo.Load(context.Background())
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("%s: Load = %v, want empty non-nil list", name, got)
		}
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, repo := range repositories(t) {
		want := sampleExpenses()
		if err := repo.Save(ctx, want); err != nil {
			t.Fatalf("%s: Save: %v", name, err)
		}
		got, err := repo.Load(ctx)
		if err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		assertSameList(t, got, want)

		// Overwrite with a shorter list.
		if err := repo.Save(ctx, want[1:]); err != nil {
			t.Fatalf("%s: second Save: %v", name, err)
		}
		got, err = repo.Load(ctx)
		if err != nil {
			t.Fatalf("%s: second Load: %v", name, err)
		}
		assertSameList(t, got, want[1:])
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); err == nil {
		t.Fatal("Open(redis) succeeded, want error")
	}
}

func writeDoc(t *testing.T, dir, content string) *FileStore {
	t.Helper()
	path := filepath.Join(dir, "storage.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestFileStore_LegacyRecordsGetIDs(t *testing.T) {
	fs := writeDoc(t, t.TempDir(), `{"expenseList":[
		{"category":"Food","amount":100,"date":"2024-03-05","paymentMode":"Cash"},
		{"category":"Rent","amount":"2500.50","date":"2024-03-01","paymentMode":"UPI"}
	]}`)

	got, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID == "" || got[1].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("ids not assigned: %q %q", got[0].ID, got[1].ID)
	}
	if !got[1].Amount.Equal(decimal.RequireFromString("2500.5")) {
		t.Fatalf("amount = %s, want 2500.5", got[1].Amount)
	}
}

func TestFileStore_NullValueIsEmpty(t *testing.T) {
	fs := writeDoc(t, t.TempDir(), `{"expenseList":null}`)
	got, err := fs.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestFileStore_CorruptIsSurfaced(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{{{`},
		{"wrong shape", `{"expenseList":{"category":"Food"}}`},
		{"unknown category", `{"expenseList":[{"category":"Fuel","amount":1,"date":"2024-01-01","paymentMode":"Cash"}]}`},
		{"bad date", `{"expenseList":[{"category":"Food","amount":1,"date":"yesterday","paymentMode":"Cash"}]}`},
		{"zero amount", `{"expenseList":[{"category":"Food","amount":0,"date":"2024-01-01","paymentMode":"Cash"}]}`},
		{"duplicate id", `{"expenseList":[
			{"id":"x","category":"Food","amount":1,"date":"2024-01-01","paymentMode":"Cash"},
			{"id":"x","category":"Food","amount":2,"date":"2024-01-02","paymentMode":"Cash"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := writeDoc(t, t.TempDir(), tt.doc)
			if _, err := fs.Load(context.Background()); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Load err = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestFileStore_NonPositiveLegacyAmountRejectsWholeList(t *testing.T) {
	for _, amount := range []string{"0", "-12.5"} {
		t.Run(amount, func(t *testing.T) {
			fs := writeDoc(t, t.TempDir(), `{"expenseList":[
				{"category":"Food","amount":100,"date":"2024-03-05","paymentMode":"Cash"},
				{"category":"Rent","amount":`+amount+`,"date":"2024-03-01","paymentMode":"UPI"},
				{"category":"Travel","amount":40,"date":"2024-03-02","paymentMode":"UPI"}
			]}`)

			got, err := fs.Load(context.Background())
			if !errors.Is(err, ErrCorrupt) {
				t.Fatalf("Load err = %v, want ErrCorrupt", err)
			}
			if got != nil {
				t.Fatalf("Load returned %d records alongside the error", len(got))
			}
			if !strings.Contains(err.Error(), "record 1") {
				t.Fatalf("err = %v, want it to name record 1", err)
			}
		})
	}
}

func TestFileStore_QuarantineKeepsBadValue(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := writeDoc(t, dir, `{"expenseList":[{"category":"Fuel"}],"theme":"dark"}`)

	where, err := fs.Quarantine(ctx)
	if err != nil {
		t.Fatalf("Quarantine: %v", err)
	}
	if !strings.Contains(where, StorageKey+".corrupt-") {
		t.Fatalf("Quarantine location = %q", where)
	}

	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load after quarantine: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}

	data, err := os.ReadFile(fs.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"theme"`) {
		t.Fatalf("unrelated key lost: %s", data)
	}
}

func TestFileStore_QuarantineUnparseableFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs := writeDoc(t, dir, `not json at all`)

	where, err := fs.Quarantine(ctx)
	if err != nil {
		t.Fatalf("Quarantine: %v", err)
	}
	if _, err := os.Stat(where); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
	if err := fs.Save(ctx, sampleExpenses()); err != nil {
		t.Fatalf("Save after quarantine: %v", err)
	}
	got, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameList(t, got, sampleExpenses())
}

func TestSQLiteStore_Quarantine(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "spendlog.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = s.Close() }()

	if _, err := s.db.Exec("INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		StorageKey, "[{", "now"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load err = %v, want ErrCorrupt", err)
	}

	where, err := s.Quarantine(ctx)
	if err != nil {
		t.Fatalf("Quarantine: %v", err)
	}
	if !strings.HasPrefix(where, "kv:"+StorageKey+".corrupt-") {
		t.Fatalf("Quarantine location = %q", where)
	}
	got, err := s.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("Load after quarantine = %v, %v", got, err)
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "spendlog.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Save(ctx, sampleExpenses()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_ = s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSameList(t, got, sampleExpenses())
}
