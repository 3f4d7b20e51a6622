package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/spendlog/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const sqliteDSNParams = "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)"

// SQLiteStore keeps the expense list as one row of a key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at dbPath and applies migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dsn := dbPath + sqliteDSNParams
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := runMigrations(dsn); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the expense list. A missing row is an empty list.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Expense, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", StorageKey, err)
	}
	return decodeList([]byte(value))
}

// Save overwrites the expense list row.
func (s *SQLiteStore) Save(ctx context.Context, expenses []model.Expense) error {
	value, err := encodeList(expenses)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		StorageKey, string(value), now)
	if err != nil {
		return fmt.Errorf("writing %s: %w", StorageKey, err)
	}
	return nil
}

// Quarantine renames the stored row to a timestamped key.
func (s *SQLiteStore) Quarantine(ctx context.Context) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	key := quarantineKey(time.Now())
	res, err := tx.ExecContext(ctx, "UPDATE kv SET key = ? WHERE key = ?", key, StorageKey)
	if err != nil {
		return "", fmt.Errorf("quarantining %s: %w", StorageKey, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", nil
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return "kv:" + key, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
