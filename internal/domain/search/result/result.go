// Package result holds the output entities of a search run. Results are
// created fresh per search and never persisted by the core.
package result

import "github.com/carprompt/carsearch/internal/domain"

// Factor names, used as keys in serialized scoring output.
const (
	FactorVectorSimilarity = "vector_similarity"
	FactorPriceRelevance   = "price_relevance"
	FactorYearRelevance    = "year_relevance"
	FactorMileageRelevance = "mileage_relevance"
	FactorKeywordMatch     = "keyword_match"
)

// Factors are the five normalized sub-scores, each in [0,1].
type Factors struct {
	VectorSimilarity float64 `json:"vector_similarity"`
	PriceRelevance   float64 `json:"price_relevance"`
	YearRelevance    float64 `json:"year_relevance"`
	MileageRelevance float64 `json:"mileage_relevance"`
	KeywordMatch     float64 `json:"keyword_match"`
}

// Map returns the factors keyed by name, in the fixed factor order when
// iterated via Names.
func (f Factors) Map() map[string]float64 {
	return map[string]float64{
		FactorVectorSimilarity: f.VectorSimilarity,
		FactorPriceRelevance:   f.PriceRelevance,
		FactorYearRelevance:    f.YearRelevance,
		FactorMileageRelevance: f.MileageRelevance,
		FactorKeywordMatch:     f.KeywordMatch,
	}
}

// ScoredResult is a listing with its combined relevance score, the factor
// breakdown, and human-readable explanation clauses.
type ScoredResult struct {
	Listing     domain.Listing `json:"listing"`
	Score       float64        `json:"score"`
	Factors     Factors        `json:"scoring_factors"`
	Explanation []string       `json:"explanation"`
}
