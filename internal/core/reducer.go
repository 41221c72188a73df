package core

// Action is a tagged variant over the discrete user interactions that mutate
// filter state. Actions are applied through a pure reducer so the filter
// semantics stay independent of any view layer.
type Action interface {
	isAction()
}

type (
	// ToggleSector adds (On) or removes the sector from the selection set.
	ToggleSector struct {
		Sector Sector
		On     bool
	}

	// ToggleBenefitType adds or removes the benefit type.
	ToggleBenefitType struct {
		Type BenefitType
		On   bool
	}

	// TogglePriceRange adds or removes the price bucket.
	TogglePriceRange struct {
		Range PriceRange
		On    bool
	}

	// SelectDate sets the single selected date. Selecting the already-active
	// date clears it again, as does an empty Date.
	SelectDate struct {
		Date string
	}

	// ResetFilters clears every criterion.
	ResetFilters struct{}

	// ShowMore advances the display cursor. It never touches the FilterSpec;
	// Session handles it.
	ShowMore struct{}
)

func (ToggleSector) isAction()      {}
func (ToggleBenefitType) isAction() {}
func (TogglePriceRange) isAction()  {}
func (SelectDate) isAction()        {}
func (ResetFilters) isAction()      {}
func (ShowMore) isAction()          {}

// Apply is the pure reducer (FilterSpec, Action) -> FilterSpec. The input
// spec is never mutated.
//
// Category toggles clear the selected date while date selection leaves the
// category sets intact: a calendar click is a transient refinement on top of
// the standing category filters, not a peer of them.
func Apply(spec FilterSpec, a Action) FilterSpec {
	next := spec.Clone()
	switch act := a.(type) {
	case ToggleSector:
		if act.On {
			next.Sectors[act.Sector] = struct{}{}
		} else {
			delete(next.Sectors, act.Sector)
		}
		next.SelectedDate = ""
	case ToggleBenefitType:
		if act.On {
			next.BenefitTypes[act.Type] = struct{}{}
		} else {
			delete(next.BenefitTypes, act.Type)
		}
		next.SelectedDate = ""
	case TogglePriceRange:
		if act.On {
			next.PriceRanges[act.Range] = struct{}{}
		} else {
			delete(next.PriceRanges, act.Range)
		}
		next.SelectedDate = ""
	case SelectDate:
		if act.Date == "" || act.Date == next.SelectedDate {
			next.SelectedDate = ""
		} else {
			next.SelectedDate = act.Date
		}
	case ResetFilters:
		next = NewFilterSpec()
	case ShowMore:
		// cursor-only action, spec unchanged
	}
	return next
}
