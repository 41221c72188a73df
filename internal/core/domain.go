package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	SectorFood          Sector = "食品"
	SectorRetail        Sector = "小売"
	SectorFinance       Sector = "金融"
	SectorRealEstate    Sector = "不動産"
	SectorUtilities     Sector = "電気・ガス"
	SectorTelecom       Sector = "通信"
	SectorTransport     Sector = "運輸"
	SectorTourism       Sector = "観光・ホテル"
	SectorHealthcare    Sector = "医療・介護"
	SectorIT            Sector = "IT・情報通信"
	SectorManufacturing Sector = "製造業"
	SectorOtherMisc     Sector = "その他"
)

const (
	BenefitGiftVoucher BenefitType = "商品券"
	BenefitDiscount    BenefitType = "割引券"
	BenefitService     BenefitType = "サービス"
	BenefitGoods       BenefitType = "株主優待品"
	BenefitOther       BenefitType = "その他"
)

type (
	// Sector is one of the 12 closed sector categories.
	Sector string

	// BenefitType is one of the 5 closed benefit categories.
	BenefitType string

	Date struct {
		time.Time
	}

	// Money is an amount in whole yen. Amounts are never fractional in this domain.
	Money struct {
		Yen int64
	}

	// BenefitRecord is one company's shareholder-benefit program instance.
	// Records are immutable once loaded; the engine only ever reads them.
	BenefitRecord struct {
		ID                 string      `json:"id"`
		CompanyName        string      `json:"companyName"`
		Ticker             string      `json:"ticker"`
		Sector             Sector      `json:"sector"`
		ExRightsDate       Date        `json:"exRightDate"`
		ExDividendDate     Date        `json:"exDividendDate"`
		MinInvestment      Money       `json:"minInvestment"`
		BenefitType        BenefitType `json:"benefitType"`
		BenefitDescription string      `json:"benefitDescription"`
		BenefitDetails     string      `json:"benefitDetails"`
		URL                string      `json:"url,omitempty"`

		// Market fields are display-only and optional in the source document.
		PreviousClosePrice Money   `json:"previousClosePrice"`
		BenefitValue       Money   `json:"benefitValue"`
		DividendYield      float64 `json:"dividendYield"`
		TotalYield         float64 `json:"totalYield"`
	}
)

var (
	ErrEmptyID            = errors.New("empty record id")
	ErrEmptyCompanyName   = errors.New("empty company name")
	ErrEmptyTicker        = errors.New("empty ticker")
	ErrUnknownSector      = errors.New("unknown sector")
	ErrUnknownBenefitType = errors.New("unknown benefit type")
	ErrUnknownPriceRange  = errors.New("unknown price range")
	ErrNegativeAmount     = errors.New("negative amount")
	ErrInvalidDate        = errors.New("invalid date")
)

var sectorOrder = []Sector{
	SectorFood, SectorRetail, SectorFinance, SectorRealEstate,
	SectorUtilities, SectorTelecom, SectorTransport, SectorTourism,
	SectorHealthcare, SectorIT, SectorManufacturing, SectorOtherMisc,
}

var benefitTypeOrder = []BenefitType{
	BenefitGiftVoucher, BenefitDiscount, BenefitService, BenefitGoods, BenefitOther,
}

// Sectors returns the closed sector enumeration in canonical order.
func Sectors() []Sector {
	return append([]Sector(nil), sectorOrder...)
}

// BenefitTypes returns the closed benefit-type enumeration in canonical order.
func BenefitTypes() []BenefitType {
	return append([]BenefitType(nil), benefitTypeOrder...)
}

// ParseSector validates a raw string against the closed sector set.
func ParseSector(s string) (Sector, error) {
	for _, v := range sectorOrder {
		if Sector(s) == v {
			return v, nil
		}
	}
	return "", ErrUnknownSector
}

// ParseBenefitType validates a raw string against the closed benefit-type set.
func ParseBenefitType(s string) (BenefitType, error) {
	for _, v := range benefitTypeOrder {
		if BenefitType(s) == v {
			return v, nil
		}
	}
	return "", ErrUnknownBenefitType
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day in the Gregorian calendar.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Key returns the date in YYYY-MM-DD form, the canonical set/map key.
func (d Date) Key() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Key())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Yen < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.Yen, 10)), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	n, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return ErrNegativeAmount
	}
	m.Yen = n
	return nil
}

// Validate enforces the loader-boundary contract: the filtering engine assumes
// closed-enumeration validity and non-negative amounts as preconditions, so a
// record must pass here before it reaches any core operation.
func (r BenefitRecord) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.CompanyName) == "" {
		return ErrEmptyCompanyName
	}
	if strings.TrimSpace(r.Ticker) == "" {
		return ErrEmptyTicker
	}
	if _, err := ParseSector(string(r.Sector)); err != nil {
		return err
	}
	if _, err := ParseBenefitType(string(r.BenefitType)); err != nil {
		return err
	}
	if err := r.ExRightsDate.Validate(); err != nil {
		return err
	}
	if err := r.ExDividendDate.Validate(); err != nil {
		return err
	}
	if err := r.MinInvestment.Validate(); err != nil {
		return err
	}
	return nil
}
