// Package search implements the hybrid relevance pipeline: spell correction,
// prompt parsing, keyword expansion, query embedding, candidate selection,
// weighted scoring, and ranking.
package search

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/carprompt/carsearch/internal/domain"
	"github.com/carprompt/carsearch/internal/domain/search/filter"
	"github.com/carprompt/carsearch/internal/domain/search/request"
	"github.com/carprompt/carsearch/internal/domain/search/result"
	"github.com/carprompt/carsearch/internal/metrics"
)

// Search type labels reported in response metadata and metrics.
const (
	searchTypeHybrid     = "hybrid"
	searchTypeFilterOnly = "filter_only"
)

// Metadata describes how a search was executed.
type Metadata struct {
	SearchType       string   `json:"search_type"`
	KeywordsExpanded []string `json:"keywords_expanded"`
	VectorSearchUsed bool     `json:"vector_search_used"`
	SpellCorrected   bool     `json:"spell_corrected"`
}

// Response is the complete outcome of one search run.
type Response struct {
	Prompt   string                `json:"prompt"`
	Filters  filter.Filter         `json:"filters"`
	Results  []result.ScoredResult `json:"results"`
	Count    int                   `json:"count"`
	Metadata Metadata              `json:"metadata"`
}

// Service runs the search pipeline. Scoring fans out over a shared worker
// pool; everything else is sequential per request.
type Service struct {
	listings ListingStore
	parser   Parser
	embedder Embedder
	recorder Recorder
	pool     *ants.Pool
	logger   *zap.Logger
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithRecorder attaches a best-effort search log recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithPoolSize overrides the scoring worker pool size.
func WithPoolSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.pool.Tune(n)
		}
	}
}

// New builds a search service with a scoring pool sized to the host by default.
func New(listings ListingStore, parser Parser, embedder Embedder, logger *zap.Logger, opts ...Option) (*Service, error) {
	pool, err := ants.NewPool(runtime.NumCPU())
	if err != nil {
		return nil, fmt.Errorf("create scoring pool: %w", err)
	}

	s := &Service{
		listings: listings,
		parser:   parser,
		embedder: embedder,
		pool:     pool,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Release frees the scoring worker pool. Call on shutdown.
func (s *Service) Release() {
	s.pool.Release()
}

// Search executes the full pipeline for one validated request.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	start := time.Now()

	prompt := req.Prompt()
	corrected := false
	if req.UseSpellCheck() {
		if fixed := correctSpelling(prompt); fixed != prompt {
			prompt = fixed
			corrected = true
		}
	}

	f := s.parseFilter(ctx, prompt)
	if swaps := f.Normalize(); swaps > 0 {
		metrics.FilterBoundSwapsTotal.Add(float64(swaps))
		s.logger.Warn("repaired inverted filter bounds",
			zap.Int("swaps", swaps),
			zap.String("prompt", prompt))
	}

	keywords := f.Keywords
	if req.ExpandQuery() {
		keywords = expandKeywords(keywords)
	}

	searchType := searchTypeFilterOnly
	var queryVec []float32
	if req.UseHybrid() {
		searchType = searchTypeHybrid
		queryVec = s.embedQuery(ctx, prompt, keywords)
	}

	listings, err := s.listings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}

	candidates := selectCandidates(&f, listings)
	metrics.SearchResults.Observe(float64(len(candidates)))

	scored := s.scoreAll(candidates, &f, queryVec, keywords)
	ranked := rankResults(scored, req.Limit())

	s.record(ctx, prompt, f, len(ranked))

	metrics.SearchesTotal.WithLabelValues(searchType).Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	return &Response{
		Prompt:  prompt,
		Filters: f,
		Results: ranked,
		Count:   len(ranked),
		Metadata: Metadata{
			SearchType:       searchType,
			KeywordsExpanded: keywords,
			VectorSearchUsed: hasSignal(queryVec),
			SpellCorrected:   corrected,
		},
	}, nil
}

// parseFilter asks the AI parser for structured filters and degrades to a
// static vocabulary scan when the parser is unavailable. A search must never
// fail because the parser did.
func (s *Service) parseFilter(ctx context.Context, prompt string) filter.Filter {
	f, err := s.parser.Parse(ctx, prompt)
	if err != nil {
		metrics.ParseFallbacksTotal.Inc()
		s.logger.Warn("prompt parse failed, falling back to keyword scan",
			zap.Error(err))
		return filter.Filter{Keywords: scanKnownKeywords(prompt)}
	}
	return f
}

// embedQuery embeds the prompt together with the expanded keywords. On
// provider failure it degrades to no vector, which zeroes the similarity
// factor instead of failing the search.
func (s *Service) embedQuery(ctx context.Context, prompt string, keywords []string) []float32 {
	text := strings.TrimSpace(prompt)
	if len(keywords) > 0 {
		text = strings.TrimSpace(text + " " + strings.Join(keywords, " "))
	}
	if text == "" {
		return nil
	}

	res, err := s.embedder.Embed(ctx, text)
	if err != nil {
		metrics.EmbedFallbacksTotal.Inc()
		s.logger.Warn("query embedding failed, degrading to zero similarity",
			zap.Error(err))
		return nil
	}
	return res.Embedding
}

// hasSignal reports whether the vector can contribute to ranking. A zero
// vector, the embedding fallback and the deterministic provider's output,
// carries no similarity signal.
func hasSignal(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return true
		}
	}
	return false
}

// selectCandidates applies the hard filters. Ordering is left to the ranker.
func selectCandidates(f *filter.Filter, listings []domain.Listing) []domain.Listing {
	candidates := make([]domain.Listing, 0, len(listings))
	for i := range listings {
		if f.Matches(&listings[i]) {
			candidates = append(candidates, listings[i])
		}
	}
	return candidates
}

// scoreAll scores candidates concurrently over the worker pool, preserving
// candidate order in the output slice.
func (s *Service) scoreAll(candidates []domain.Listing, f *filter.Filter, queryVec []float32, keywords []string) []result.ScoredResult {
	kw := newKeywordMatcher(keywords)
	scored := make([]result.ScoredResult, len(candidates))

	var wg sync.WaitGroup
	for i := range candidates {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			combined, factors := scoreListing(&candidates[i], f, queryVec, kw)
			scored[i] = result.ScoredResult{
				Listing:     candidates[i],
				Score:       combined,
				Factors:     factors,
				Explanation: explain(factors),
			}
		}
		if err := s.pool.Submit(task); err != nil {
			// Pool released or overloaded: score inline rather than drop.
			task()
		}
	}
	wg.Wait()

	return scored
}

// record persists the search log entry when a recorder is configured.
func (s *Service) record(ctx context.Context, prompt string, f filter.Filter, count int) {
	if s.recorder == nil {
		return
	}
	rec := Record{
		Prompt:      prompt,
		Filter:      f,
		ResultCount: count,
		At:          time.Now().UTC(),
	}
	if err := s.recorder.Record(ctx, rec); err != nil {
		s.logger.Warn("search log write failed", zap.Error(err))
	}
}
