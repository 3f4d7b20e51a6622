// Package store persists the expense list as a single key-value entry.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/theirongolddev/spendlog/internal/model"
)

// StorageKey is the fixed key the expense list is stored under.
const StorageKey = "expenseList"

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ErrCorrupt is returned by Load when the stored value exists but cannot be
// decoded into a valid expense list.
var ErrCorrupt = errors.New("stored expense list is corrupt")

// Repository loads and saves the whole expense list.
type Repository interface {
	Load(ctx context.Context) ([]model.Expense, error)
	Save(ctx context.Context, expenses []model.Expense) error
	Close() error
}

// Quarantiner is implemented by repositories that can move a corrupt stored
// value aside so a fresh list can be written. It returns where the old value
// went.
type Quarantiner interface {
	Quarantine(ctx context.Context) (string, error)
}

// Open returns the repository for backend rooted at dataDir.
func Open(backend, dataDir string) (Repository, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(filepath.Join(dataDir, "storage.json"))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dataDir, "spendlog.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// record is the persisted shape of one expense.
type record struct {
	ID          string      `json:"id,omitempty"`
	Category    string      `json:"category"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	PaymentMode string      `json:"paymentMode"`
}

func encodeList(expenses []model.Expense) ([]byte, error) {
	records := make([]record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, record{
			ID:          e.ID,
			Category:    string(e.Category),
			Amount:      json.Number(e.Amount.String()),
			Date:        e.Date.String(),
			PaymentMode: string(e.PaymentMode),
		})
	}
	return json.Marshal(records)
}

// decodeList turns a stored value back into expenses. An empty or null value
// is an empty list. Records stored without an id get a fresh one.
func decodeList(data []byte) ([]model.Expense, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []model.Expense{}, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	expenses := make([]model.Expense, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		e, err := r.toExpense()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorrupt, i, err)
		}
		if e.ID == "" {
			e.ID = model.NewID()
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate id %s", ErrCorrupt, i, e.ID)
		}
		seen[e.ID] = struct{}{}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (r record) toExpense() (model.Expense, error) {
	category, err := model.ParseCategory(r.Category)
	if err != nil {
		return model.Expense{}, err
	}
	amount, err := model.ParseAmount(r.Amount.String())
	if err != nil {
		return model.Expense{}, err
	}
	date, err := model.ParseDate(r.Date)
	if err != nil {
		return model.Expense{}, err
	}
	mode, err := model.ParsePaymentMode(r.PaymentMode)
	if err != nil {
		return model.Expense{}, err
	}
	return model.Expense{
		ID:          r.ID,
		Category:    category,
		Amount:      amount,
		Date:        date,
		PaymentMode: mode,
	}, nil
}

func quarantineKey(now time.Time) string {
	return StorageKey + ".corrupt-" + strconv.FormatInt(now.Unix(), 10)
}
