package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bokdata/isbn-scraper/internal/models"
)

// RecordStore persists one JSON document per ISBN in a directory. Writes
// go through a temp file and rename so a crash never leaves a truncated
// record behind.
type RecordStore struct {
	mu  sync.RWMutex
	dir string
}

func NewRecordStore(dir string) (*RecordStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &RecordStore{dir: dir}, nil
}

func (s *RecordStore) Save(ctx context.Context, record *models.BookRecord) error {
	if record.ISBN == "" {
		return fmt.Errorf("record has no ISBN")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	path := s.path(record.ISBN)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	return os.Rename(tmp, path)
}

func (s *RecordStore) Get(ctx context.Context, isbn string) (*models.BookRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(isbn))
	if err != nil {
		return nil, err
	}

	var record models.BookRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %s: %w", isbn, err)
	}

	return &record, nil
}

// ListISBNs returns the ISBNs of all persisted records.
func (s *RecordStore) ListISBNs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var isbns []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		isbns = append(isbns, strings.TrimSuffix(name, ".json"))
	}

	return isbns, nil
}

func (s *RecordStore) path(isbn string) string {
	return filepath.Join(s.dir, isbn+".json")
}
