// Package core implements the benefit catalog's filtering, classification and
// date-aggregation engine. Everything in this package is a pure function over
// immutable inputs; the only mutable state of the subsystem (FilterSpec and
// the display cursor) lives in Session and changes only through Apply.
package core

// PriceRange is one of four ordered buckets classifying a minimum investment
// amount. It is always derived through ClassifyInvestment, never stored on a
// record.
type PriceRange string

const (
	PriceUnder100K  PriceRange = "under_100k"
	Price100Kto500K PriceRange = "100k_500k"
	Price500Kto1M   PriceRange = "500k_1m"
	PriceOver1M     PriceRange = "over_1m"
)

var priceRangeOrder = []PriceRange{
	PriceUnder100K, Price100Kto500K, Price500Kto1M, PriceOver1M,
}

var priceRangeLabels = map[PriceRange]string{
	PriceUnder100K:  "10万円以下",
	Price100Kto500K: "10～50万円",
	Price500Kto1M:   "50～100万円",
	PriceOver1M:     "100万円以上",
}

// PriceRanges returns the four buckets in ascending order.
func PriceRanges() []PriceRange {
	return append([]PriceRange(nil), priceRangeOrder...)
}

// Label returns the Japanese display label for a bucket.
func (p PriceRange) Label() string {
	return priceRangeLabels[p]
}

// ParsePriceRange validates a raw string against the closed bucket set.
func ParsePriceRange(s string) (PriceRange, error) {
	for _, v := range priceRangeOrder {
		if PriceRange(s) == v {
			return v, nil
		}
	}
	return "", ErrUnknownPriceRange
}

// ClassifyInvestment maps an amount to its bucket. Boundaries are inclusive on
// the upper edge and evaluated in ascending order, first match wins:
// 100,000 yen is still under_100k, 500,000 yen is still 100k_500k, and
// 1,000,000 yen is still 500k_1m. Negative amounts are a caller precondition
// violation; the classification of a negative amount is undefined.
func ClassifyInvestment(amount Money) PriceRange {
	switch {
	case amount.Yen <= 100_000:
		return PriceUnder100K
	case amount.Yen <= 500_000:
		return Price100Kto500K
	case amount.Yen <= 1_000_000:
		return Price500Kto1M
	default:
		return PriceOver1M
	}
}
