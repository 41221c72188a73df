package core

import (
	"sort"
	"strings"
)

// FilterSpec is the active filter state: three independent selection sets
// combined as "OR within a category, AND across categories", plus at most one
// selected calendar date. The zero-value-like empty spec matches every record.
// Specs are treated as immutable values; Apply produces new ones.
type FilterSpec struct {
	Sectors      map[Sector]struct{}
	BenefitTypes map[BenefitType]struct{}
	PriceRanges  map[PriceRange]struct{}

	// SelectedDate is a YYYY-MM-DD key; empty means no date restriction.
	SelectedDate string
}

// NewFilterSpec returns an empty spec with all sets initialized.
func NewFilterSpec() FilterSpec {
	return FilterSpec{
		Sectors:      make(map[Sector]struct{}),
		BenefitTypes: make(map[BenefitType]struct{}),
		PriceRanges:  make(map[PriceRange]struct{}),
	}
}

// Clone returns an independent copy of the spec.
func (s FilterSpec) Clone() FilterSpec {
	out := NewFilterSpec()
	for k := range s.Sectors {
		out.Sectors[k] = struct{}{}
	}
	for k := range s.BenefitTypes {
		out.BenefitTypes[k] = struct{}{}
	}
	for k := range s.PriceRanges {
		out.PriceRanges[k] = struct{}{}
	}
	out.SelectedDate = s.SelectedDate
	return out
}

// IsEmpty reports whether no criterion is active.
func (s FilterSpec) IsEmpty() bool {
	return len(s.Sectors) == 0 && len(s.BenefitTypes) == 0 &&
		len(s.PriceRanges) == 0 && s.SelectedDate == ""
}

// Matches evaluates the composite predicate. The four clauses are orthogonal
// and all must hold; an empty set places no constraint on its category.
func (s FilterSpec) Matches(r BenefitRecord) bool {
	if len(s.Sectors) > 0 {
		if _, ok := s.Sectors[r.Sector]; !ok {
			return false
		}
	}
	if len(s.BenefitTypes) > 0 {
		if _, ok := s.BenefitTypes[r.BenefitType]; !ok {
			return false
		}
	}
	if len(s.PriceRanges) > 0 {
		if _, ok := s.PriceRanges[ClassifyInvestment(r.MinInvestment)]; !ok {
			return false
		}
	}
	if s.SelectedDate != "" {
		if r.ExRightsDate.Key() != s.SelectedDate && r.ExDividendDate.Key() != s.SelectedDate {
			return false
		}
	}
	return true
}

// Key returns a deterministic string form of the spec, used as a memoization
// key together with the record-set version.
func (s FilterSpec) Key() string {
	sectors := make([]string, 0, len(s.Sectors))
	for k := range s.Sectors {
		sectors = append(sectors, string(k))
	}
	sort.Strings(sectors)

	types := make([]string, 0, len(s.BenefitTypes))
	for k := range s.BenefitTypes {
		types = append(types, string(k))
	}
	sort.Strings(types)

	ranges := make([]string, 0, len(s.PriceRanges))
	for k := range s.PriceRanges {
		ranges = append(ranges, string(k))
	}
	sort.Strings(ranges)

	return "s=" + strings.Join(sectors, ",") +
		"|t=" + strings.Join(types, ",") +
		"|p=" + strings.Join(ranges, ",") +
		"|d=" + s.SelectedDate
}

// Filter returns the subsequence of records satisfying the spec, preserving
// the relative order of the input. An empty result is a valid outcome, not an
// error; the input is never mutated.
func Filter(records []BenefitRecord, spec FilterSpec) []BenefitRecord {
	out := make([]BenefitRecord, 0, len(records))
	for _, r := range records {
		if spec.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
