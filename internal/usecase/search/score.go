package search

import (
	"math"
	"regexp"
	"strings"

	"github.com/carprompt/carsearch/internal/domain"
	"github.com/carprompt/carsearch/internal/domain/search/filter"
	"github.com/carprompt/carsearch/internal/domain/search/result"
)

// Factor weights. They sum to 1.0 so the combined score stays in [0,1]
// whenever every factor does.
const (
	weightVector  = 0.40
	weightPrice   = 0.20
	weightYear    = 0.15
	weightMileage = 0.15
	weightKeyword = 0.10
)

// mileageDecay shapes the exponential falloff of mileage relevance. At the
// filter's cap the factor bottoms out near exp(-3) ~ 0.05.
const mileageDecay = 3.0

// scoreListing computes the five relevance factors for one candidate and
// folds them into the combined weighted score.
func scoreListing(l *domain.Listing, f *filter.Filter, queryVec []float32, kw *keywordMatcher) (float64, result.Factors) {
	factors := result.Factors{
		VectorSimilarity: vectorSimilarity(queryVec, l.Embedding),
		PriceRelevance:   priceRelevance(l.Price, f),
		YearRelevance:    yearRelevance(l.Year, f),
		MileageRelevance: mileageRelevance(l.Mileage, f),
		KeywordMatch:     kw.fraction(l.Title + " " + l.Description),
	}

	combined := weightVector*factors.VectorSimilarity +
		weightPrice*factors.PriceRelevance +
		weightYear*factors.YearRelevance +
		weightMileage*factors.MileageRelevance +
		weightKeyword*factors.KeywordMatch

	return clamp01(combined), factors
}

// vectorSimilarity rescales cosine similarity from [-1,1] into [0,1].
// A missing, mismatched, or zero-magnitude vector on either side scores 0,
// which is what makes the zero-vector embedding fallback degrade gracefully.
func vectorSimilarity(query, candidate []float32) float64 {
	if len(query) == 0 || len(query) != len(candidate) {
		return 0
	}

	var dot, normQ, normC float64
	for i := range query {
		q, c := float64(query[i]), float64(candidate[i])
		dot += q * c
		normQ += q * q
		normC += c * c
	}
	if normQ == 0 || normC == 0 {
		return 0
	}

	cos := dot / (math.Sqrt(normQ) * math.Sqrt(normC))
	return clamp01((cos + 1) / 2)
}

// priceRelevance scores proximity to an ideal price derived from the filter
// bounds: the midpoint when both are present, otherwise the single bound.
// No price constraint means price carries no signal and scores neutral 1.
func priceRelevance(price float64, f *filter.Filter) float64 {
	var ideal float64
	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		ideal = (*f.MinPrice + *f.MaxPrice) / 2
	case f.MaxPrice != nil:
		ideal = *f.MaxPrice
	case f.MinPrice != nil:
		ideal = *f.MinPrice
	default:
		return 1
	}
	if ideal <= 0 {
		// A zero or negative target gives no usable distance scale.
		return 1
	}
	return clamp01(1 - math.Abs(price-ideal)/ideal)
}

// yearRelevance normalizes the listing year linearly between the filter
// bounds, newer scoring higher. With a single bound the factor is binary:
// satisfied scores 1, violated scores 0. No bound scores neutral 1.
func yearRelevance(year int, f *filter.Filter) float64 {
	switch {
	case f.MinYear != nil && f.MaxYear != nil:
		lo, hi := *f.MinYear, *f.MaxYear
		if hi == lo {
			if year >= lo {
				return 1
			}
			return 0
		}
		return clamp01(float64(year-lo) / float64(hi-lo))
	case f.MinYear != nil:
		if year >= *f.MinYear {
			return 1
		}
		return 0
	case f.MaxYear != nil:
		if year <= *f.MaxYear {
			return 1
		}
		return 0
	default:
		return 1
	}
}

// mileageRelevance decays exponentially toward the filter's mileage cap.
// Unknown mileage, no cap, or non-positive mileage all score neutral 1.
func mileageRelevance(mileage *float64, f *filter.Filter) float64 {
	if f.MaxMileage == nil || *f.MaxMileage <= 0 || mileage == nil || *mileage <= 0 {
		return 1
	}
	return clamp01(math.Exp(-mileageDecay * *mileage / *f.MaxMileage))
}

// keywordMatcher matches expanded keywords against listing text using
// whole-word, case-insensitive patterns compiled once per search.
type keywordMatcher struct {
	patterns []*regexp.Regexp
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	m := &keywordMatcher{patterns: make([]*regexp.Regexp, 0, len(keywords))}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		m.patterns = append(m.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return m
}

// fraction returns the share of keywords found in text. An empty keyword set
// scores 0: no keyword evidence is absence of signal, not neutrality.
func (m *keywordMatcher) fraction(text string) float64 {
	if len(m.patterns) == 0 {
		return 0
	}
	matched := 0
	for _, p := range m.patterns {
		if p.MatchString(text) {
			matched++
		}
	}
	return float64(matched) / float64(len(m.patterns))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
