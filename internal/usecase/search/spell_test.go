package search

import "testing"

func TestCorrectSpelling(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"empty prompt unchanged", "", ""},
		{"no misspellings unchanged", "reliable toyota estate", "reliable toyota estate"},
		{"single correction", "cheap toyta corolla", "cheap toyota corolla"},
		{"correction is case insensitive", "Toyta please", "toyota please"},
		{"abbreviation expanded", "vw golf", "volkswagen golf"},
		{"multiple corrections", "toyta or fordd", "toyota or ford"},
		{"two-word replacement", "landrover defender", "land rover defender"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := correctSpelling(tc.prompt); got != tc.want {
				t.Errorf("correctSpelling(%q) = %q, want %q", tc.prompt, got, tc.want)
			}
		})
	}
}
