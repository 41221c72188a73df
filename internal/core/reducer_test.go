package core

import (
	"testing"
	"time"
)

func TestApplyToggleSector(t *testing.T) {
	spec := NewFilterSpec()

	spec = Apply(spec, ToggleSector{Sector: SectorFood, On: true})
	if _, ok := spec.Sectors[SectorFood]; !ok {
		t.Fatalf("sector not added")
	}

	spec = Apply(spec, ToggleSector{Sector: SectorFood, On: false})
	if len(spec.Sectors) != 0 {
		t.Fatalf("sector not removed")
	}
}

func TestApplyCategoryToggleClearsSelectedDate(t *testing.T) {
	spec := NewFilterSpec()
	spec.SelectedDate = "2024-03-05"

	cases := []Action{
		ToggleSector{Sector: SectorFood, On: true},
		ToggleBenefitType{Type: BenefitGiftVoucher, On: true},
		TogglePriceRange{Range: PriceUnder100K, On: true},
	}
	for _, a := range cases {
		if got := Apply(spec, a); got.SelectedDate != "" {
			t.Fatalf("%T must clear the selected date, kept %q", a, got.SelectedDate)
		}
	}
}

func TestApplySelectDateKeepsCategories(t *testing.T) {
	spec := NewFilterSpec()
	spec.Sectors[SectorFood] = struct{}{}
	spec.BenefitTypes[BenefitDiscount] = struct{}{}

	got := Apply(spec, SelectDate{Date: "2024-03-05"})
	if got.SelectedDate != "2024-03-05" {
		t.Fatalf("date not selected")
	}
	if len(got.Sectors) != 1 || len(got.BenefitTypes) != 1 {
		t.Fatalf("date selection must not clear category sets: %+v", got)
	}
}

func TestApplySelectDateTogglesOff(t *testing.T) {
	spec := NewFilterSpec()
	spec = Apply(spec, SelectDate{Date: "2024-03-05"})
	spec = Apply(spec, SelectDate{Date: "2024-03-05"})
	if spec.SelectedDate != "" {
		t.Fatalf("re-selecting the active date must clear it, kept %q", spec.SelectedDate)
	}

	spec = Apply(spec, SelectDate{Date: "2024-03-05"})
	spec = Apply(spec, SelectDate{Date: "2024-04-01"})
	if spec.SelectedDate != "2024-04-01" {
		t.Fatalf("selecting a new date must replace the old one, got %q", spec.SelectedDate)
	}

	spec = Apply(spec, SelectDate{})
	if spec.SelectedDate != "" {
		t.Fatalf("empty date must clear the selection")
	}
}

func TestApplyResetFilters(t *testing.T) {
	spec := NewFilterSpec()
	spec.Sectors[SectorFood] = struct{}{}
	spec.PriceRanges[PriceOver1M] = struct{}{}
	spec.SelectedDate = "2024-03-05"

	got := Apply(spec, ResetFilters{})
	if !got.IsEmpty() {
		t.Fatalf("reset must clear every criterion: %+v", got)
	}
}

func TestApplyIsPure(t *testing.T) {
	spec := NewFilterSpec()
	spec.Sectors[SectorFood] = struct{}{}

	_ = Apply(spec, ToggleSector{Sector: SectorRetail, On: true})
	if len(spec.Sectors) != 1 {
		t.Fatalf("reducer mutated its input: %+v", spec)
	}
}

func TestSessionEpochReset(t *testing.T) {
	s := NewSession(2024, time.March)
	if s.DisplayCount != DefaultDisplayCount {
		t.Fatalf("new session cursor = %d, want %d", s.DisplayCount, DefaultDisplayCount)
	}

	s.Apply(ShowMore{})
	s.Apply(ShowMore{})
	if s.DisplayCount != 150 {
		t.Fatalf("cursor after two show-more = %d, want 150", s.DisplayCount)
	}

	// Any filter mutation ends the epoch.
	s.Apply(ToggleSector{Sector: SectorFood, On: true})
	if s.DisplayCount != DefaultDisplayCount {
		t.Fatalf("filter change must reset cursor, got %d", s.DisplayCount)
	}

	s.Apply(ShowMore{})
	s.Apply(SelectDate{Date: "2024-03-05"})
	if s.DisplayCount != DefaultDisplayCount {
		t.Fatalf("date selection must reset cursor, got %d", s.DisplayCount)
	}
}

func TestSessionMonthNavigationKeepsState(t *testing.T) {
	s := NewSession(2024, time.March)
	s.Apply(ToggleSector{Sector: SectorFood, On: true})
	s.Apply(ShowMore{})

	s.SetMonth(2024, time.April)
	if s.Year != 2024 || s.Month != time.April {
		t.Fatalf("month not updated: %d-%s", s.Year, s.Month)
	}
	if len(s.Spec.Sectors) != 1 || s.DisplayCount != 100 {
		t.Fatalf("month navigation must not touch filters or cursor: %+v", s)
	}
}

func TestSessionSelectRecord(t *testing.T) {
	s := NewSession(2024, time.January)
	s.SelectRecord("007")
	if s.SelectedID != "007" {
		t.Fatalf("record not selected")
	}
	s.SelectRecord("")
	if s.SelectedID != "" {
		t.Fatalf("selection not cleared")
	}
}
