package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"yutai/internal/core"
)

// Store is an in-process record source, seeded at construction. Used as the
// default backend and as a test double.
type Store struct {
	mu    sync.Mutex
	items []core.BenefitRecord
}

func New(records []core.BenefitRecord) *Store {
	return &Store{items: append([]core.BenefitRecord(nil), records...)}
}

// NewFromFile seeds the store from a JSON array document on disk. A missing
// or unreadable file is an error: a memory backend with no seed serves
// nothing, which is never what the operator intended.
func NewFromFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var records []core.BenefitRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return New(records), nil
}

// ListRecords implements catalog.RecordSource.
func (s *Store) ListRecords(_ context.Context) ([]core.BenefitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BenefitRecord(nil), s.items...), nil
}

// Replace swaps the stored record set. Tests use it to simulate upstream data
// changes between reloads.
func (s *Store) Replace(records []core.BenefitRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.BenefitRecord(nil), records...)
}
