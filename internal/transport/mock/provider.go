// Package mock is a deterministic AI provider for local development and
// tests. No network, no tokens, stable output for a given prompt.
package mock

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/carprompt/carsearch/internal/domain"
	"github.com/carprompt/carsearch/internal/domain/search/filter"
)

// vocabulary lists the descriptive terms the mock parser recognizes.
var vocabulary = []string{
	"reliable", "fuel efficient", "economical", "cheap", "affordable",
	"luxury", "premium", "sporty", "fast", "comfortable", "spacious",
	"practical", "family", "first car", "commuter", "weekend", "fun",
	"low mileage", "good condition", "full service history", "one owner",
	"automatic", "manual", "petrol", "diesel", "electric", "hybrid",
	"suv", "hatchback", "saloon", "estate", "convertible", "coupe",
	"new", "used", "recent", "old", "classic", "modern",
}

// marques lists the manufacturers the mock parser can pick out of a prompt.
var marques = []string{
	"toyota", "honda", "ford", "volkswagen", "bmw", "mercedes", "audi",
	"nissan", "mazda", "kia", "hyundai", "vauxhall", "peugeot", "renault",
	"volvo", "skoda", "seat", "fiat", "mini", "lexus", "tesla", "jaguar",
	"land rover", "subaru",
}

var maxPriceRe = regexp.MustCompile(`(?i)(?:under|below|less than|max)\s*£?(\d+)(k?)`)

// Parser extracts filters with static tables and one price pattern.
type Parser struct{}

// NewParser creates the deterministic parser.
func NewParser() *Parser { return &Parser{} }

// Parse implements filter.PromptParser. It never fails.
func (p *Parser) Parse(_ context.Context, text string) (filter.Filter, error) {
	lower := strings.ToLower(text)
	f := filter.Filter{}

	for _, m := range marques {
		if strings.Contains(lower, m) {
			f.Make = filter.StringPtr(m)
			break
		}
	}

	if match := maxPriceRe.FindStringSubmatch(text); match != nil {
		if v, err := strconv.ParseFloat(match[1], 64); err == nil {
			if match[2] != "" {
				v *= 1000
			}
			f.MaxPrice = filter.FloatPtr(v)
		}
	}

	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			f.Keywords = append(f.Keywords, term)
		}
	}

	return f, nil
}

// HealthCheck always succeeds.
func (p *Parser) HealthCheck(_ context.Context) error { return nil }

// Embedder returns a zero vector of fixed dimension, so vector similarity
// contributes nothing and ranking falls back to the other factors.
type Embedder struct {
	dimensions int
}

// NewEmbedder creates the deterministic embedder.
func NewEmbedder(dimensions int) *Embedder {
	return &Embedder{dimensions: dimensions}
}

// Embed implements domain.Embedder. It never fails.
func (e *Embedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: make([]float32, e.dimensions)}, nil
}

// HealthCheck always succeeds.
func (e *Embedder) HealthCheck(_ context.Context) error { return nil }
