package search

import "github.com/carprompt/carsearch/internal/domain/search/result"

// notableThreshold is the factor level above which an explanation clause is
// attached to a result.
const notableThreshold = 0.7

// explain builds human-readable clauses for every notable factor, in fixed
// factor order so output is deterministic.
func explain(f result.Factors) []string {
	clauses := make([]string, 0, 5)
	if f.VectorSimilarity >= notableThreshold {
		clauses = append(clauses, "Highly matches your description")
	}
	if f.PriceRelevance >= notableThreshold {
		clauses = append(clauses, "Great price for your budget")
	}
	if f.YearRelevance >= notableThreshold {
		clauses = append(clauses, "Right age range")
	}
	if f.MileageRelevance >= notableThreshold {
		clauses = append(clauses, "Low mileage")
	}
	if f.KeywordMatch >= notableThreshold {
		clauses = append(clauses, "Matches your keywords")
	}
	return clauses
}
