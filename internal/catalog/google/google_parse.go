package google

import (
	"fmt"
	"strconv"
	"strings"

	"yutai/internal/core"
)

// Column order of the curated sheet:
// A id, B company, C ticker, D sector, E ex-rights date, F ex-dividend date,
// G min investment (yen), H benefit type, I description, J details, K url,
// L previous close (yen), M benefit value (yen), N dividend yield %,
// O total yield %.
const (
	colID = iota
	colCompany
	colTicker
	colSector
	colExRights
	colExDividend
	colMinInvestment
	colBenefitType
	colDescription
	colDetails
	colURL
	colPrevClose
	colBenefitValue
	colDividendYield
	colTotalYield
)

func parseRows(values [][]interface{}) ([]core.BenefitRecord, error) {
	records := make([]core.BenefitRecord, 0, len(values))
	for i, raw := range values {
		row := toStrings(raw)
		if isBlank(row) {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			// Row 1 is the header, data starts at sheet row 2.
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (core.BenefitRecord, error) {
	exRights, err := core.ParseDate(safeGet(row, colExRights))
	if err != nil {
		return core.BenefitRecord{}, fmt.Errorf("ex-rights date %q: %w", safeGet(row, colExRights), err)
	}
	exDividend, err := core.ParseDate(safeGet(row, colExDividend))
	if err != nil {
		return core.BenefitRecord{}, fmt.Errorf("ex-dividend date %q: %w", safeGet(row, colExDividend), err)
	}
	minInvestment, err := parseYen(safeGet(row, colMinInvestment))
	if err != nil {
		return core.BenefitRecord{}, fmt.Errorf("min investment %q: %w", safeGet(row, colMinInvestment), err)
	}

	rec := core.BenefitRecord{
		ID:                 strings.TrimSpace(safeGet(row, colID)),
		CompanyName:        strings.TrimSpace(safeGet(row, colCompany)),
		Ticker:             strings.TrimSpace(safeGet(row, colTicker)),
		Sector:             core.Sector(strings.TrimSpace(safeGet(row, colSector))),
		ExRightsDate:       exRights,
		ExDividendDate:     exDividend,
		MinInvestment:      minInvestment,
		BenefitType:        core.BenefitType(strings.TrimSpace(safeGet(row, colBenefitType))),
		BenefitDescription: strings.TrimSpace(safeGet(row, colDescription)),
		BenefitDetails:     strings.TrimSpace(safeGet(row, colDetails)),
		URL:                strings.TrimSpace(safeGet(row, colURL)),
	}

	// Market columns are optional; blanks stay zero.
	if v := safeGet(row, colPrevClose); strings.TrimSpace(v) != "" {
		if rec.PreviousClosePrice, err = parseYen(v); err != nil {
			return core.BenefitRecord{}, fmt.Errorf("previous close %q: %w", v, err)
		}
	}
	if v := safeGet(row, colBenefitValue); strings.TrimSpace(v) != "" {
		if rec.BenefitValue, err = parseYen(v); err != nil {
			return core.BenefitRecord{}, fmt.Errorf("benefit value %q: %w", v, err)
		}
	}
	if v := safeGet(row, colDividendYield); strings.TrimSpace(v) != "" {
		if rec.DividendYield, err = parsePercent(v); err != nil {
			return core.BenefitRecord{}, fmt.Errorf("dividend yield %q: %w", v, err)
		}
	}
	if v := safeGet(row, colTotalYield); strings.TrimSpace(v) != "" {
		if rec.TotalYield, err = parsePercent(v); err != nil {
			return core.BenefitRecord{}, fmt.Errorf("total yield %q: %w", v, err)
		}
	}

	return rec, nil
}

// parseYen accepts plain integers plus the formatting a hand-curated sheet
// tends to pick up: thousands separators and a yen sign.
func parseYen(s string) (core.Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "¥")
	s = strings.ReplaceAll(s, ",", "")
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return core.Money{}, core.ErrNegativeAmount
	}
	return core.Money{Yen: n}, nil
}

func parsePercent(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	return strconv.ParseFloat(s, 64)
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
