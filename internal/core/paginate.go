package core

const (
	// DefaultDisplayCount is the cursor value at the start of every filter epoch.
	DefaultDisplayCount = 50

	// PageSize is the fixed increment applied by "show more".
	PageSize = 50
)

// Page returns the leading displayCount records of an already-filtered
// sequence. Out-of-range cursors are clamped to [0, len(filtered)] rather
// than rejected.
func Page(filtered []BenefitRecord, displayCount int) []BenefitRecord {
	if displayCount < 0 {
		displayCount = 0
	}
	if displayCount > len(filtered) {
		displayCount = len(filtered)
	}
	return filtered[:displayCount]
}

// HasMore reports whether records beyond the cursor remain.
func HasMore(filtered []BenefitRecord, displayCount int) bool {
	return displayCount < len(filtered)
}

// Advance grows the cursor by one page. The cursor is monotonically
// non-decreasing within a filter epoch; only a spec change resets it.
func Advance(displayCount int) int {
	return displayCount + PageSize
}
