package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/theirongolddev/spendlog/internal/model"
)

// FileStore keeps a JSON document of key -> value on disk, like a browser's
// local storage. Only StorageKey is read and written by the app.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by the document at path, creating its
// directory if needed. The file itself is created on first Save.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// Load reads the expense list. A missing file or key is an empty list.
func (s *FileStore) Load(_ context.Context) ([]model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDoc()
	if err != nil {
		return nil, err
	}
	raw, ok := doc[StorageKey]
	if !ok {
		return []model.Expense{}, nil
	}
	return decodeList(raw)
}

// Save overwrites the expense list, keeping any other keys in the document.
func (s *FileStore) Save(_ context.Context, expenses []model.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := encodeList(expenses)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	doc, err := s.readDoc()
	switch {
	case errors.Is(err, ErrCorrupt):
		// Unparseable document; the caller has already chosen to overwrite it.
		doc = make(map[string]json.RawMessage)
	case err != nil:
		return err
	}
	doc[StorageKey] = value
	return s.writeDoc(doc)
}

// Quarantine moves the stored value to a timestamped key. If the document
// itself cannot be parsed the whole file is renamed aside instead.
func (s *FileStore) Quarantine(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	doc, err := s.readDoc()
	if err != nil {
		dst := fmt.Sprintf("%s.corrupt-%d", s.path, now.Unix())
		if err := os.Rename(s.path, dst); err != nil {
			return "", fmt.Errorf("moving corrupt storage aside: %w", err)
		}
		return dst, nil
	}

	raw, ok := doc[StorageKey]
	if !ok {
		return "", nil
	}
	key := quarantineKey(now)
	// Keep the bytes as a JSON string so invalid JSON can still be written.
	quoted, err := json.Marshal(string(raw))
	if err != nil {
		return "", err
	}
	doc[key] = quoted
	delete(doc, StorageKey)
	if err := s.writeDoc(doc); err != nil {
		return "", err
	}
	return s.path + "#" + key, nil
}

// Close is a no-op; the file is not held open between calls.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) readDoc() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, fmt.Errorf("reading storage: %w", err)
	}
	doc := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return doc, nil
}

func (s *FileStore) writeDoc(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storage-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing storage: %w", err)
	}
	return nil
}
