package search

import "strings"

// spellCorrections maps common marque misspellings to their canonical form.
// Static data, applied word by word before parsing when the request asks for it.
var spellCorrections = map[string]string{
	"toyta":     "toyota",
	"fordd":     "ford",
	"bmww":      "bmw",
	"vw":        "volkswagen",
	"vauxhal":   "vauxhall",
	"mercedez":  "mercedes",
	"nissann":   "nissan",
	"mazdaa":    "mazda",
	"subaruu":   "subaru",
	"hyunda":    "hyundai",
	"kiaa":      "kia",
	"audii":     "audi",
	"lexuss":    "lexus",
	"teslla":    "tesla",
	"jagaur":    "jaguar",
	"landrover": "land rover",
	"volvoo":    "volvo",
	"peugot":    "peugeot",
	"renaultt":  "renault",
	"citreon":   "citroen",
	"alfaromeo": "alfa romeo",
}

// correctSpelling replaces recognized misspellings word by word.
// Unknown words are kept as typed.
func correctSpelling(prompt string) string {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return prompt
	}

	corrected := make([]string, len(words))
	for i, word := range words {
		if fix, ok := spellCorrections[strings.ToLower(word)]; ok {
			corrected[i] = fix
		} else {
			corrected[i] = word
		}
	}
	return strings.Join(corrected, " ")
}
