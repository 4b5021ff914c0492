// Package filter holds the structured search constraints derived from a
// free-text prompt. Every field is optional; pointer fields make "absent"
// distinguishable from a zero value, which matters because scoring formulas
// branch on presence, not value.
package filter

import (
	"strings"

	"github.com/carprompt/carsearch/internal/domain"
)

// Filter is the structured form of a vehicle search prompt.
type Filter struct {
	Make         *string  `json:"make,omitempty"`
	Model        *string  `json:"model,omitempty"`
	MinPrice     *float64 `json:"min_price,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	MinYear      *int     `json:"min_year,omitempty"`
	MaxYear      *int     `json:"max_year,omitempty"`
	MaxMileage   *float64 `json:"max_mileage,omitempty"`
	FuelType     *string  `json:"fuel_type,omitempty"`
	Transmission *string  `json:"transmission,omitempty"`
	BodyType     *string  `json:"body_type,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
}

// IsEmpty reports whether no constraint and no keyword is present.
func (f *Filter) IsEmpty() bool {
	return f.Make == nil && f.Model == nil &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinYear == nil && f.MaxYear == nil &&
		f.MaxMileage == nil &&
		f.FuelType == nil && f.Transmission == nil && f.BodyType == nil &&
		len(f.Keywords) == 0
}

// Normalize repairs inverted ranges by swapping bounds and returns the number
// of swaps performed. Swapping instead of rejecting is a deliberate leniency:
// an inverted range usually means the upstream parser mixed the bounds up, so
// callers should log and count a non-zero return.
func (f *Filter) Normalize() int {
	swapped := 0
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		f.MinPrice, f.MaxPrice = f.MaxPrice, f.MinPrice
		swapped++
	}
	if f.MinYear != nil && f.MaxYear != nil && *f.MinYear > *f.MaxYear {
		f.MinYear, f.MaxYear = f.MaxYear, f.MinYear
		swapped++
	}
	return swapped
}

// Matches reports whether a listing satisfies every present constraint.
// Absent fields impose no constraint. A listing with unknown mileage passes a
// MaxMileage filter: an unknown value cannot exclude a candidate.
func (f *Filter) Matches(l *domain.Listing) bool {
	if !matchString(f.Make, l.Make) {
		return false
	}
	if !matchString(f.Model, l.Model) {
		return false
	}
	if !matchString(f.FuelType, l.FuelType) {
		return false
	}
	if !matchString(f.Transmission, l.Transmission) {
		return false
	}
	if !matchString(f.BodyType, l.BodyType) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	if f.MinYear != nil && l.Year < *f.MinYear {
		return false
	}
	if f.MaxYear != nil && l.Year > *f.MaxYear {
		return false
	}
	if f.MaxMileage != nil && l.Mileage != nil && *l.Mileage > *f.MaxMileage {
		return false
	}
	return true
}

// matchString is a case-insensitive exact match; nil wanted means no constraint.
func matchString(want *string, got string) bool {
	if want == nil {
		return true
	}
	return strings.EqualFold(*want, got)
}

// String builder helpers for constructing filters from parsed values.

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
