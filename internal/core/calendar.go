package core

import "time"

// DayKind classifies a calendar day for the month view.
type DayKind string

const (
	DayNone       DayKind = "none"
	DayExRights   DayKind = "ex_rights"
	DayExDividend DayKind = "ex_dividend"
	DayBoth       DayKind = "both"
)

// DateSet is a set of YYYY-MM-DD keys.
type DateSet map[string]struct{}

func (s DateSet) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the set members in undefined order.
func (s DateSet) Keys() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// MonthDates holds the ex-rights and ex-dividend dates falling in one month.
// The same date may appear in both sets: a single record whose two dates
// coincide, or two records placing the same day in each role.
type MonthDates struct {
	ExRights   DateSet
	ExDividend DateSet
}

// AggregateMonth collects, from the full record set, every ex-rights date and
// every ex-dividend date whose year and month equal the queried ones. The two
// date fields are treated as independent opaque dates; no ordering between
// them is assumed. Records outside the month contribute nothing, and an empty
// record set yields two empty sets.
func AggregateMonth(records []BenefitRecord, year int, month time.Month) MonthDates {
	md := MonthDates{
		ExRights:   make(DateSet),
		ExDividend: make(DateSet),
	}
	for _, r := range records {
		if r.ExRightsDate.Year() == year && r.ExRightsDate.Month() == month {
			md.ExRights[r.ExRightsDate.Key()] = struct{}{}
		}
		if r.ExDividendDate.Year() == year && r.ExDividendDate.Month() == month {
			md.ExDividend[r.ExDividendDate.Key()] = struct{}{}
		}
	}
	return md
}

// Kind classifies a single date key against the aggregated sets.
func (md MonthDates) Kind(key string) DayKind {
	r := md.ExRights.Contains(key)
	d := md.ExDividend.Contains(key)
	switch {
	case r && d:
		return DayBoth
	case r:
		return DayExRights
	case d:
		return DayExDividend
	default:
		return DayNone
	}
}

// Days produces the per-day classification map for every day of the given
// month, the shape the calendar view renders from. The "both" overlap case is
// reported distinctly.
func (md MonthDates) Days(year int, month time.Month) map[string]DayKind {
	out := make(map[string]DayKind, DaysInMonth(year, month))
	for day := 1; day <= DaysInMonth(year, month); day++ {
		key := NewDate(year, month, day).Key()
		out[key] = md.Kind(key)
	}
	return out
}

// DaysInMonth delegates month-length arithmetic, leap years included, to the
// time package: day zero of the following month is the last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
