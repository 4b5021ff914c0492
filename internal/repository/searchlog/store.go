// Package searchlog appends executed searches to a storage-backed list for
// offline analysis. Writes are best effort from the caller's point of view.
package searchlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carprompt/carsearch/internal/usecase/search"
)

// store is the consumer interface for the search log (ISP).
type store interface {
	RPush(ctx context.Context, key string, value []byte) error
}

// Store implements usecase/search.Recorder on an append-only list.
type Store struct {
	store  store
	prefix string
}

// New creates a search log store. prefix namespaces the log key, e.g. "carsearch:".
func New(s store, prefix string) *Store {
	return &Store{store: s, prefix: prefix}
}

// Record appends one search log entry as a JSON document.
func (s *Store) Record(ctx context.Context, rec search.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal search record: %w", err)
	}
	if err := s.store.RPush(ctx, s.prefix+"search_log", data); err != nil {
		return fmt.Errorf("rpush search record: %w", err)
	}
	return nil
}
