// Package listing persists vehicle listings as JSON documents in a key-value
// store, one key per listing.
package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carprompt/carsearch/internal/db"
	"github.com/carprompt/carsearch/internal/domain"
)

// store is the consumer interface for listings (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	MGet(ctx context.Context, keys []string) ([][]byte, error)
}

// Repo implements the listing store contracts of the search and seeding flows.
type Repo struct {
	store  store
	prefix string
}

// New creates a listing repository. prefix namespaces all keys, e.g. "carsearch:".
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// All returns every stored listing. Entries that fail to decode are skipped:
// one corrupt record must not take down every search.
func (r *Repo) All(ctx context.Context) ([]domain.Listing, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"listing:*")
	if err != nil {
		return nil, fmt.Errorf("scan listings: %w", err)
	}
	if len(keys) == 0 {
		return []domain.Listing{}, nil
	}

	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget listings: %w", err)
	}

	listings := make([]domain.Listing, 0, len(values))
	for _, raw := range values {
		if len(raw) == 0 {
			continue
		}
		var doc listingDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		l, err := doc.toDomain()
		if err != nil {
			continue
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Get returns one listing by ID.
func (r *Repo) Get(ctx context.Context, id string) (domain.Listing, error) {
	raw, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.Listing{}, domain.ErrListingNotFound
		}
		return domain.Listing{}, fmt.Errorf("get listing %s: %w", id, err)
	}

	var doc listingDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Listing{}, fmt.Errorf("decode listing %s: %w", id, err)
	}
	return doc.toDomain()
}

// Put creates or replaces a listing.
func (r *Repo) Put(ctx context.Context, l *domain.Listing) error {
	doc := toDoc(l)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal listing %s: %w", l.ID, err)
	}
	if err := r.store.Set(ctx, r.key(l.ID), data); err != nil {
		return fmt.Errorf("set listing %s: %w", l.ID, err)
	}
	return nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del listing %s: %w", id, err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "listing:" + id
}
