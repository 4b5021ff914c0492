package search

import "strings"

// synonymTable maps descriptive vehicle terms to related terms. Static data
// loaded once at process start; lookups that miss simply pass the term through.
var synonymTable = map[string][]string{
	"reliable":       {"dependable", "trustworthy", "durable"},
	"fuel efficient": {"economical", "good mpg", "low fuel consumption"},
	"cheap":          {"affordable", "inexpensive", "budget"},
	"luxury":         {"premium", "high-end", "luxurious"},
	"sporty":         {"fast", "performance", "quick"},
	"family":         {"practical", "spacious", "roomy"},
	"suv":            {"4x4", "crossover", "off-road"},
	"hatchback":      {"5-door"},
	"saloon":         {"sedan", "4-door"},
	"estate":         {"wagon", "station wagon"},
	"convertible":    {"cabriolet", "drophead"},
	"manual":         {"stick shift", "standard"},
	"automatic":      {"auto", "self-shifting"},
	"economy":        {"fuel efficient"},
	"mpg":            {"fuel efficient"},
	"4x4":            {"suv", "off-road"},
}

// expandKeywords unions every keyword with its synonyms. Output order is
// deterministic: originals first in input order, then synonyms in table order.
// Unknown terms pass through unchanged.
func expandKeywords(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	expanded := make([]string, 0, len(keywords))

	add := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		expanded = append(expanded, term)
	}

	for _, kw := range keywords {
		add(kw)
	}
	for _, kw := range keywords {
		for _, syn := range synonymTable[strings.ToLower(strings.TrimSpace(kw))] {
			add(syn)
		}
	}

	return expanded
}

// keywordVocabulary is the static list of descriptive terms the fallback
// parser recognizes when the AI parser is unavailable.
var keywordVocabulary = []string{
	"reliable", "fuel efficient", "economical", "cheap", "affordable",
	"luxury", "premium", "sporty", "fast", "comfortable", "spacious",
	"practical", "family", "first car", "commuter", "weekend", "fun",
	"low mileage", "good condition", "full service history", "one owner",
	"automatic", "manual", "petrol", "diesel", "electric", "hybrid",
	"suv", "hatchback", "saloon", "estate", "convertible", "coupe",
	"new", "used", "recent", "old", "classic", "modern",
}

// scanKnownKeywords extracts vocabulary terms present in the prompt.
// Substring containment is deliberate: multi-word terms like "fuel efficient"
// should match inside longer phrases.
func scanKnownKeywords(prompt string) []string {
	lower := strings.ToLower(prompt)
	var found []string
	for _, term := range keywordVocabulary {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}
