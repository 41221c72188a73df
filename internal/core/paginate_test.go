package core

import "testing"

func TestPage(t *testing.T) {
	filtered := sampleRecords()

	if got := Page(filtered, 0); len(got) != 0 {
		t.Fatalf("Page(F, 0) must be empty, got %d items", len(got))
	}
	if got := Page(filtered, 2); len(got) != 2 {
		t.Fatalf("Page(F, 2) = %d items, want 2", len(got))
	}
	if got := Page(filtered, 10_000_000); len(got) != len(filtered) {
		t.Fatalf("oversized cursor must return everything, got %d items", len(got))
	}
	if got := Page(filtered, -5); len(got) != 0 {
		t.Fatalf("negative cursor must clamp to zero, got %d items", len(got))
	}
	if got := Page(nil, 50); len(got) != 0 {
		t.Fatalf("empty sequence pages to empty, got %d items", len(got))
	}
}

func TestHasMore(t *testing.T) {
	filtered := sampleRecords()
	cases := []struct {
		count int
		want  bool
	}{
		{0, true},
		{2, true},
		{3, false},
		{50, false},
	}
	for _, tc := range cases {
		if got := HasMore(filtered, tc.count); got != tc.want {
			t.Fatalf("HasMore(3 records, %d) = %v, want %v", tc.count, got, tc.want)
		}
	}
}

func TestAdvance(t *testing.T) {
	if got := Advance(50); got != 100 {
		t.Fatalf("Advance(50) = %d, want 100", got)
	}
	if got := Advance(Advance(DefaultDisplayCount)); got != 150 {
		t.Fatalf("two advances from default = %d, want 150", got)
	}
}
