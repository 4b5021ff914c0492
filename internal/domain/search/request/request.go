// Package request validates and normalizes incoming search parameters.
package request

import (
	"fmt"

	"github.com/carprompt/carsearch/internal/domain"
)

// Search parameter limits.
const (
	// MaxPromptLength is the maximum allowed prompt length.
	MaxPromptLength = 4096
	DefaultLimit    = 20
	MaxLimit        = 100
)

// Request is a validated search query.
type Request struct {
	prompt        string
	limit         int
	useHybrid     bool
	useSpellCheck bool
	expandQuery   bool
}

// New validates and normalizes search parameters.
// An empty prompt is allowed and yields an unfiltered search. limit < 0 is a
// validation error; limit 0 is a valid empty-result request; limit above
// MaxLimit is clamped.
func New(prompt string, limit int, useHybrid, useSpellCheck, expandQuery bool) (Request, error) {
	if len(prompt) > MaxPromptLength {
		return Request{}, fmt.Errorf("%w: prompt too long (max %d chars)", domain.ErrInvalidRequest, MaxPromptLength)
	}
	if limit < 0 {
		return Request{}, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidRequest)
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		prompt:        prompt,
		limit:         limit,
		useHybrid:     useHybrid,
		useSpellCheck: useSpellCheck,
		expandQuery:   expandQuery,
	}, nil
}

// Prompt returns the free-text search prompt.
func (r *Request) Prompt() string { return r.prompt }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// UseHybrid reports whether vector similarity should contribute to ranking.
func (r *Request) UseHybrid() bool { return r.useHybrid }

// UseSpellCheck reports whether the prompt should be spell-corrected first.
func (r *Request) UseSpellCheck() bool { return r.useSpellCheck }

// ExpandQuery reports whether keywords should be expanded via the synonym table.
func (r *Request) ExpandQuery() bool { return r.expandQuery }
