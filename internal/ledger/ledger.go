// Package ledger holds the ordered in-memory expense list and mirrors it to a
// store.Repository after every change.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/theirongolddev/spendlog/internal/model"
	"github.com/theirongolddev/spendlog/internal/store"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotFound        = errors.New("expense not found")
)

// Options controls how a ledger is opened.
type Options struct {
	// DiscardCorrupt starts from an empty list when the stored value is
	// corrupt, moving the bad value aside first. Without it Open fails.
	DiscardCorrupt bool
	Logger         zerolog.Logger
}

// Ledger is the ordered expense list. Order is insertion order; edits replace
// in place and deletes shift later entries down.
type Ledger struct {
	mu       sync.Mutex
	repo     store.Repository
	log      zerolog.Logger
	expenses []model.Expense

	// Set when Open discarded a corrupt value; empty otherwise.
	Quarantined string
}

// Open hydrates a ledger from repo.
func Open(ctx context.Context, repo store.Repository, opts Options) (*Ledger, error) {
	l := &Ledger{repo: repo, log: opts.Logger}

	expenses, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) || !opts.DiscardCorrupt {
			return nil, fmt.Errorf("loading expenses: %w", err)
		}
		where := ""
		if q, ok := repo.(store.Quarantiner); ok {
			if where, err = q.Quarantine(ctx); err != nil {
				return nil, fmt.Errorf("discarding corrupt expenses: %w", err)
			}
		}
		l.log.Warn().Str("moved_to", where).Msg("stored expense list was corrupt; starting empty")
		l.Quarantined = where
		expenses = []model.Expense{}
	}

	l.expenses = expenses
	l.log.Debug().Int("count", len(expenses)).Msg("ledger loaded")
	return l, nil
}

// Len returns the number of expenses.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.expenses)
}

// List returns a copy of the expenses in order.
func (l *Ledger) List() []model.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// At returns the expense at index.
func (l *Ledger) At(index int) (model.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.expenses) {
		return model.Expense{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l.expenses))
	}
	return l.expenses[index], nil
}

// Get returns the expense with the given id.
func (l *Ledger) Get(id string) (model.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOfLocked(id)
	if i < 0 {
		return model.Expense{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.expenses[i], nil
}

// IndexOf returns the position of id, or -1.
func (l *Ledger) IndexOf(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexOfLocked(id)
}

// Append adds e to the end of the list, assigning an id if it has none.
func (l *Ledger) Append(ctx context.Context, e model.Expense) (model.Expense, error) {
	if e.ID == "" {
		e.ID = model.NewID()
	}
	if err := e.Validate(); err != nil {
		return model.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOfLocked(e.ID) >= 0 {
		return model.Expense{}, fmt.Errorf("duplicate expense id %s", e.ID)
	}

	next := make([]model.Expense, len(l.expenses), len(l.expenses)+1)
	copy(next, l.expenses)
	next = append(next, e)
	if err := l.commitLocked(ctx, next); err != nil {
		return model.Expense{}, err
	}
	l.log.Debug().Str("op", "append").Str("id", e.ID).Int("index", len(next)-1).Msg("expense added")
	return e, nil
}

// ReplaceAt overwrites the expense at index. The stored id is kept.
func (l *Ledger) ReplaceAt(ctx context.Context, index int, e model.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.replaceLocked(ctx, index, e)
}

// Update overwrites the expense with the given id.
func (l *Ledger) Update(ctx context.Context, id string, e model.Expense) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOfLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.replaceLocked(ctx, i, e)
}

// RemoveAt deletes exactly the expense at index.
func (l *Ledger) RemoveAt(ctx context.Context, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeLocked(ctx, index)
}

// Delete removes the expense with the given id.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOfLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l.removeLocked(ctx, i)
}

func (l *Ledger) replaceLocked(ctx context.Context, index int, e model.Expense) error {
	if index < 0 || index >= len(l.expenses) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l.expenses))
	}
	e.ID = l.expenses[index].ID
	if err := e.Validate(); err != nil {
		return err
	}

	next := make([]model.Expense, len(l.expenses))
	copy(next, l.expenses)
	next[index] = e
	if err := l.commitLocked(ctx, next); err != nil {
		return err
	}
	l.log.Debug().Str("op", "replace").Str("id", e.ID).Int("index", index).Msg("expense updated")
	return nil
}

func (l *Ledger) removeLocked(ctx context.Context, index int) error {
	if index < 0 || index >= len(l.expenses) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(l.expenses))
	}
	id := l.expenses[index].ID

	next := make([]model.Expense, 0, len(l.expenses)-1)
	next = append(next, l.expenses[:index]...)
	next = append(next, l.expenses[index+1:]...)
	if err := l.commitLocked(ctx, next); err != nil {
		return err
	}
	l.log.Debug().Str("op", "remove").Str("id", id).Int("index", index).Msg("expense deleted")
	return nil
}

// commitLocked saves next and only then makes it the current list, so memory
// and storage never disagree after a failed write.
func (l *Ledger) commitLocked(ctx context.Context, next []model.Expense) error {
	if err := l.repo.Save(ctx, next); err != nil {
		l.log.Error().Err(err).Msg("saving expenses failed")
		return fmt.Errorf("saving expenses: %w", err)
	}
	l.expenses = next
	return nil
}

func (l *Ledger) indexOfLocked(id string) int {
	for i, e := range l.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}
