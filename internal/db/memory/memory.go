// Package memory is an in-process db.Store used for local development and
// tests. No persistence, no TTL enforcement beyond expiry-on-read.
package memory

import (
	"context"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/carprompt/carsearch/internal/db"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Store is a map-backed db.Store.
type Store struct {
	mu    sync.RWMutex
	kv    map[string]entry
	lists map[string][][]byte
}

var _ db.Store = (*Store)(nil)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		kv:    make(map[string]entry),
		lists: make(map[string][][]byte),
	}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady always succeeds.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Get returns the value for key or db.ErrKeyNotFound.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.kv[key]
	s.mu.RUnlock()
	if !ok || e.expired() {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrKeyNotFound}
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores value under key without expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.kv[key] = entry{value: append([]byte(nil), value...)}
	s.mu.Unlock()
	return nil
}

// SetWithTTL stores value under key with an expiry.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	s.kv[key] = entry{value: append([]byte(nil), value...), expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

// Del removes key. Deleting a missing key is not an error.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.kv, key)
	s.mu.Unlock()
	return nil
}

// Scan returns keys matching a glob pattern, sorted for determinism.
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	s.mu.RLock()
	var keys []string
	for k, e := range s.kv {
		if e.expired() {
			continue
		}
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

// MGet returns values for keys; missing keys yield nil entries.
func (s *Store) MGet(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values := make([][]byte, len(keys))
	for i, k := range keys {
		if e, ok := s.kv[k]; ok && !e.expired() {
			values[i] = append([]byte(nil), e.value...)
		}
	}
	return values, nil
}

// RPush appends value to the list stored at key.
func (s *Store) RPush(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.lists[key] = append(s.lists[key], append([]byte(nil), value...))
	s.mu.Unlock()
	return nil
}

// ListLen reports the length of the list at key. Test helper.
func (s *Store) ListLen(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists[key])
}

func (e entry) expired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}
