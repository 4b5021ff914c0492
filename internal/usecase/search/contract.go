package search

import (
	"context"
	"time"

	"github.com/carprompt/carsearch/internal/domain"
	"github.com/carprompt/carsearch/internal/domain/search/filter"
)

// ListingStore supplies the candidate universe for a search run.
type ListingStore interface {
	All(ctx context.Context) ([]domain.Listing, error)
}

// Parser turns a free-text prompt into structured filters.
type Parser interface {
	Parse(ctx context.Context, text string) (filter.Filter, error)
}

// Embedder produces the query vector for hybrid scoring.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Recorder persists search log entries. Recording is best effort: a recorder
// failure never fails the search.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Record is one search log entry.
type Record struct {
	Prompt      string        `json:"prompt"`
	Filter      filter.Filter `json:"filter"`
	ResultCount int           `json:"result_count"`
	At          time.Time     `json:"at"`
}
