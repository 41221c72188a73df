package http

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"yutai/internal/core"
	"yutai/internal/gcal"
	"yutai/internal/services"
)

// benefitsResponse is the paginated listing payload.
type benefitsResponse struct {
	Items        []core.BenefitRecord `json:"items"`
	Total        int                  `json:"total"`
	HasMore      bool                 `json:"hasMore"`
	DisplayCount int                  `json:"displayCount"`
	Version      int64                `json:"version"`
}

func (s *Server) handleBenefits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	spec, err := parseFilterSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	displayCount := parseDisplayCount(r)

	res := s.catalog.Query(spec, displayCount)
	writeJSON(w, http.StatusOK, benefitsResponse{
		Items:        res.Items,
		Total:        res.Total,
		HasMore:      res.HasMore,
		DisplayCount: displayCount,
		Version:      s.catalog.Version(),
	})
}

// benefitDetailResponse decorates a record with derived display fields.
type benefitDetailResponse struct {
	core.BenefitRecord
	PriceRange          core.PriceRange `json:"priceRange"`
	PriceRangeLabel     string          `json:"priceRangeLabel"`
	FormattedInvestment string          `json:"formattedInvestment"`
	ExRightsCalendarURL string          `json:"exRightsCalendarUrl"`
	ExDividendCalURL    string          `json:"exDividendCalendarUrl"`
	ShareText           string          `json:"shareText"`
}

func (s *Server) handleBenefitByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/benefits/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	rec, err := s.catalog.Record(id)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}

	pr := core.ClassifyInvestment(rec.MinInvestment)
	writeJSON(w, http.StatusOK, benefitDetailResponse{
		BenefitRecord:       rec,
		PriceRange:          pr,
		PriceRangeLabel:     pr.Label(),
		FormattedInvestment: formatYen(rec.MinInvestment),
		ExRightsCalendarURL: gcal.ExRightsEvent(rec).URL(),
		ExDividendCalURL:    gcal.ExDividendEvent(rec).URL(),
		ShareText:           gcal.ShareText(rec),
	})
}

// calendarResponse lists the marked days of one month.
type calendarResponse struct {
	Year            int                     `json:"year"`
	Month           int                     `json:"month"`
	DaysInMonth     int                     `json:"daysInMonth"`
	Days            map[string]core.DayKind `json:"days"`
	ExRightDates    []string                `json:"exRightDates"`
	ExDividendDates []string                `json:"exDividendDates"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	year, month := parseYearMonth(r)
	dates := s.catalog.MonthCalendar(year, month)

	exRights := dates.ExRights.Keys()
	exDividend := dates.ExDividend.Keys()
	sort.Strings(exRights)
	sort.Strings(exDividend)

	writeJSON(w, http.StatusOK, calendarResponse{
		Year:            year,
		Month:           int(month),
		DaysInMonth:     core.DaysInMonth(year, month),
		Days:            dates.Days(year, month),
		ExRightDates:    exRights,
		ExDividendDates: exDividend,
	})
}

func (s *Server) handlePriceRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("amount"))
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "amount must be an integer number of yen")
		return
	}
	if amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	pr := core.ClassifyInvestment(core.Money{Yen: amount})
	writeJSON(w, http.StatusOK, map[string]any{
		"amount":    amount,
		"formatted": formatYen(core.Money{Yen: amount}),
		"range":     pr,
		"label":     pr.Label(),
	})
}

// priceRangeOption pairs a range ID with its display label.
type priceRangeOption struct {
	ID    core.PriceRange `json:"id"`
	Label string          `json:"label"`
}

type filterOptionsResponse struct {
	Sectors      []core.Sector      `json:"sectors"`
	BenefitTypes []core.BenefitType `json:"benefitTypes"`
	PriceRanges  []priceRangeOption `json:"priceRanges"`
}

func (s *Server) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	opts := s.catalog.FilterOptions()
	resp := filterOptionsResponse{
		Sectors:      opts.Sectors,
		BenefitTypes: opts.BenefitTypes,
	}
	for _, pr := range opts.PriceRanges {
		resp.PriceRanges = append(resp.PriceRanges, priceRangeOption{ID: pr, Label: pr.Label()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.catalog.RequestRefresh(r.Context(), "api"); err != nil {
		slog.ErrorContext(r.Context(), "Catalog refresh failed", "error", err)
		writeError(w, http.StatusBadGateway, "refresh failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"version":     s.catalog.Version(),
		"recordCount": len(s.catalog.Records()),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady reports ready once a catalog snapshot has been loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.catalog.Version() == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"reason": "catalog not loaded",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ready",
		"version":     s.catalog.Version(),
		"recordCount": len(s.catalog.Records()),
		"loadedAt":    s.catalog.LoadedAt().Format(time.RFC3339),
	})
}
