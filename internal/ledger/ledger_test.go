package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/store"
)

// memRepo is an in-memory store.Repository that can be told to fail.
type memRepo struct {
	saved   []model.Expense
	saves   int
	failErr error
	loadErr error
}

func (m *memRepo) Load(context.Context) ([]model.Expense, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]model.Expense, len(m.saved))
	copy(out, m.saved)
	return out, nil
}

func (m *memRepo) Save(_ context.Context, expenses []model.Expense) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.saved = make([]model.Expense, len(expenses))
	copy(m.saved, expenses)
	return nil
}

func (m *memRepo) Close() error { return nil }

func expense(category model.Category, amount string, y int, mo time.Month, d int) model.Expense {
	return model.Expense{
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Date:        model.NewDate(y, mo, d),
		PaymentMode: model.PaymentCash,
	}
}

func openFileLedger(t *testing.T) (*Ledger, store.Repository) {
	t.Helper()
	repo, err := store.NewFileStore(filepath.Join(t.TempDir(), "storage.json"))
	if err != nil {
		t.Fatal(err)
	}
	l, err := Open(context.Background(), repo, Options{Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return l, repo
}

func seed(t *testing.T, l *Ledger, n int) []model.Expense {
	t.Helper()
	var out []model.Expense
	for i := 0; i < n; i++ {
		e, err := l.Append(context.Background(), expense(model.CategoryFood, "10", 2024, time.January, i+1))
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		out = append(out, e)
	}
	return out
}

func assertPersisted(t *testing.T, l *Ledger, repo store.Repository) {
	t.Helper()
	stored, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	mem := l.List()
	if len(stored) != len(mem) {
		t.Fatalf("persisted len = %d, memory len = %d", len(stored), len(mem))
	}
	for i := range mem {
		if !stored[i].Equal(mem[i]) {
			t.Fatalf("persisted[%d] = %+v, memory = %+v", i, stored[i], mem[i])
		}
	}
}

func TestAppend_AddsToEnd(t *testing.T) {
	l, repo := openFileLedger(t)
	seed(t, l, 2)

	e := expense(model.CategoryRent, "2500.50", 2024, time.February, 1)
	e.PaymentMode = model.PaymentUPI
	got, err := l.Append(context.Background(), e)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if got.ID == "" {
		t.Fatal("Append did not assign an id")
	}
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}
	last, _ := l.At(2)
	e.ID = got.ID
	if !last.Equal(e) {
		t.Fatalf("last = %+v, want %+v", last, e)
	}
	assertPersisted(t, l, repo)
}

func TestAppend_RejectsInvalid(t *testing.T) {
	l, _ := openFileLedger(t)
	bad := expense(model.CategoryFood, "1", 2024, time.January, 1)
	bad.Amount = decimal.Zero
	if _, err := l.Append(context.Background(), bad); !errors.Is(err, model.ErrInvalidAmount) {
		t.Fatalf("Append err = %v, want ErrInvalidAmount", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0", l.Len())
	}
}

func TestReplaceAt_KeepsLengthOrderAndID(t *testing.T) {
	l, repo := openFileLedger(t)
	before := seed(t, l, 3)

	repl := expense(model.CategoryHealth, "99", 2023, time.December, 31)
	if err := l.ReplaceAt(context.Background(), 1, repl); err != nil {
		t.Fatalf("ReplaceAt: %v", err)
	}

	after := l.List()
	if len(after) != 3 {
		t.Fatalf("len = %d, want 3", len(after))
	}
	if !after[0].Equal(before[0]) || !after[2].Equal(before[2]) {
		t.Fatal("neighbours changed")
	}
	if after[1].ID != before[1].ID {
		t.Fatalf("id = %s, want %s", after[1].ID, before[1].ID)
	}
	if after[1].Category != model.CategoryHealth || !after[1].Amount.Equal(decimal.NewFromInt(99)) {
		t.Fatalf("replaced = %+v", after[1])
	}
	assertPersisted(t, l, repo)
}

func TestReplaceAt_OutOfRange(t *testing.T) {
	l, _ := openFileLedger(t)
	seed(t, l, 2)
	for _, idx := range []int{-1, 2, 10} {
		err := l.ReplaceAt(context.Background(), idx, expense(model.CategoryFood, "1", 2024, time.May, 1))
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ReplaceAt(%d) err = %v, want ErrIndexOutOfRange", idx, err)
		}
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
}

func TestRemoveAt_RemovesExactlyOne(t *testing.T) {
	l, repo := openFileLedger(t)
	before := seed(t, l, 4)

	if err := l.RemoveAt(context.Background(), 1); err != nil {
		t.Fatalf("RemoveAt: %v", err)
	}
	after := l.List()
	want := []model.Expense{before[0], before[2], before[3]}
	if len(after) != len(want) {
		t.Fatalf("len = %d, want %d", len(after), len(want))
	}
	for i := range want {
		if !after[i].Equal(want[i]) {
			t.Fatalf("after[%d] = %+v, want %+v", i, after[i], want[i])
		}
	}
	assertPersisted(t, l, repo)

	if err := l.RemoveAt(context.Background(), 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("RemoveAt(3) err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestUpdateAndDeleteByID(t *testing.T) {
	l, repo := openFileLedger(t)
	before := seed(t, l, 3)
	ctx := context.Background()

	if err := l.Update(ctx, before[2].ID, expense(model.CategoryTravel, "5", 2024, time.June, 6)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := l.Get(before[2].ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Category != model.CategoryTravel {
		t.Fatalf("Category = %s, want Travel", got.Category)
	}

	if err := l.Delete(ctx, before[0].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if l.IndexOf(before[0].ID) != -1 {
		t.Fatal("deleted id still present")
	}
	if l.IndexOf(before[2].ID) != 1 {
		t.Fatalf("IndexOf = %d, want 1", l.IndexOf(before[2].ID))
	}
	assertPersisted(t, l, repo)

	if err := l.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete(missing) err = %v, want ErrNotFound", err)
	}
	if err := l.Update(ctx, "missing", before[1]); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(missing) err = %v, want ErrNotFound", err)
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	repo := &memRepo{}
	l, err := Open(context.Background(), repo, Options{})
	if err != nil {
		t.Fatal(err)
	}
	seed(t, l, 2)

	repo.failErr = errors.New("disk full")
	ctx := context.Background()
	if _, err := l.Append(ctx, expense(model.CategoryFood, "1", 2024, time.March, 1)); err == nil {
		t.Fatal("Append succeeded with failing repo")
	}
	if err := l.RemoveAt(ctx, 0); err == nil {
		t.Fatal("RemoveAt succeeded with failing repo")
	}
	if err := l.ReplaceAt(ctx, 0, expense(model.CategoryRent, "1", 2024, time.March, 1)); err == nil {
		t.Fatal("ReplaceAt succeeded with failing repo")
	}

	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
	first, _ := l.At(0)
	if first.Category != model.CategoryFood {
		t.Fatalf("first category = %s, want Food", first.Category)
	}
	if repo.saves != 2 {
		t.Fatalf("saves = %d, want 2", repo.saves)
	}
}

func TestListReturnsCopy(t *testing.T) {
	l, _ := openFileLedger(t)
	seed(t, l, 1)
	list := l.List()
	list[0].Category = model.CategoryRent
	first, _ := l.At(0)
	if first.Category != model.CategoryFood {
		t.Fatal("List exposed internal slice")
	}
}

func writeCorrupt(t *testing.T) *store.FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.json")
	if err := os.WriteFile(path, []byte(`{"expenseList":"oops"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	repo, err := store.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestOpen_CorruptFailsByDefault(t *testing.T) {
	repo := writeCorrupt(t)
	if _, err := Open(context.Background(), repo, Options{}); !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("Open err = %v, want ErrCorrupt", err)
	}
}

func TestOpen_DiscardCorrupt(t *testing.T) {
	repo := writeCorrupt(t)
	l, err := Open(context.Background(), repo, Options{DiscardCorrupt: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("Len = %d, want 0", l.Len())
	}
	if l.Quarantined == "" {
		t.Fatal("Quarantined not recorded")
	}

	seed(t, l, 1)
	assertPersisted(t, l, repo)
}

func TestOpen_OtherLoadErrorsAlwaysFail(t *testing.T) {
	repo := &memRepo{loadErr: errors.New("permission denied")}
	if _, err := Open(context.Background(), repo, Options{DiscardCorrupt: true}); err == nil {
		t.Fatal("Open succeeded despite load error")
	}
}
