package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"yutai/internal/core"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError sends a JSON error body with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseFilterSpec builds a filter from query parameters. Unknown enum values
// are a client error rather than an empty result, so typos surface early.
func parseFilterSpec(r *http.Request) (core.FilterSpec, error) {
	spec := core.NewFilterSpec()
	q := r.URL.Query()

	for _, raw := range q["sector"] {
		sec, err := core.ParseSector(raw)
		if err != nil {
			return spec, fmt.Errorf("sector: %w", err)
		}
		spec.Sectors[sec] = struct{}{}
	}
	for _, raw := range q["benefitType"] {
		bt, err := core.ParseBenefitType(raw)
		if err != nil {
			return spec, fmt.Errorf("benefitType: %w", err)
		}
		spec.BenefitTypes[bt] = struct{}{}
	}
	for _, raw := range q["priceRange"] {
		pr, err := core.ParsePriceRange(raw)
		if err != nil {
			return spec, fmt.Errorf("priceRange: %w", err)
		}
		spec.PriceRanges[pr] = struct{}{}
	}
	if raw := strings.TrimSpace(q.Get("date")); raw != "" {
		d, err := core.ParseDate(raw)
		if err != nil {
			return spec, fmt.Errorf("date: %w", err)
		}
		spec.SelectedDate = d.Key()
	}

	return spec, nil
}

// parseDisplayCount reads displayCount, falling back to the default for
// missing or non-positive values.
func parseDisplayCount(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("displayCount"))
	if raw == "" {
		return core.DefaultDisplayCount
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return core.DefaultDisplayCount
	}
	return n
}

// parseYearMonth extracts year and month from query parameters, defaulting
// to the current month. Months are clamped to the calendar range.
func parseYearMonth(r *http.Request) (int, time.Month) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			month = m
		}
	}

	if month < 1 {
		month = 1
	}
	if month > 12 {
		month = 12
	}

	return year, time.Month(month)
}

// formatYen formats an amount as a grouped yen string (e.g. "¥123,000").
func formatYen(m core.Money) string {
	yen := m.Yen
	neg := yen < 0
	if neg {
		yen = -yen
	}

	s := strconv.FormatInt(yen, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-¥" + b.String()
	}
	return "¥" + b.String()
}
