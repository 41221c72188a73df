package google

import (
	"testing"

	"yutai/internal/core"
)

func row(cells ...string) []interface{} {
	out := make([]interface{}, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

func TestParseRows(t *testing.T) {
	values := [][]interface{}{
		row("001", "サンプル食品", "2001", "食品", "2024-03-28", "2024-03-29",
			"¥150,000", "商品券", "自社商品券3000円分", "100株以上保有で進呈",
			"https://example.co.jp", "1,500", "3000", "2.1%", "4.1"),
		row("", "", ""), // blank row, skipped
		row("002", "サンプル小売", "3002", "小売", "2024-09-27", "2024-09-30",
			"600000", "割引券", "店舗割引券", "お買物優待カード"),
	}

	records, err := parseRows(values)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.MinInvestment.Yen != 150_000 {
		t.Fatalf("yen parsing with separators failed: %d", first.MinInvestment.Yen)
	}
	if first.PreviousClosePrice.Yen != 1500 || first.BenefitValue.Yen != 3000 {
		t.Fatalf("market columns wrong: %+v", first)
	}
	if first.DividendYield != 2.1 || first.TotalYield != 4.1 {
		t.Fatalf("yield columns wrong: %+v", first)
	}
	if err := first.Validate(); err != nil {
		t.Fatalf("parsed record must validate: %v", err)
	}

	second := records[1]
	if second.URL != "" || second.PreviousClosePrice.Yen != 0 {
		t.Fatalf("short row must leave optional columns zero: %+v", second)
	}
	if second.Sector != core.SectorRetail {
		t.Fatalf("sector wrong: %q", second.Sector)
	}
}

func TestParseRowsBadDate(t *testing.T) {
	values := [][]interface{}{
		row("001", "会社", "2001", "食品", "28/03/2024", "2024-03-29",
			"150000", "商品券", "説明", "詳細"),
	}
	if _, err := parseRows(values); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestParseYen(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"150000", 150_000, true},
		{"¥1,234,567", 1_234_567, true},
		{" 42 ", 42, true},
		{"12.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := parseYen(tc.in)
		if tc.ok {
			if err != nil || got.Yen != tc.want {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.want, got.Yen, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}
