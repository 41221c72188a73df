// Package gcal builds Google Calendar "add event" links for benefit dates.
// No API access is involved, the links are plain render URLs the user opens
// in a browser.
package gcal

import (
	"fmt"
	"net/url"

	"yutai/internal/core"
)

const renderURL = "https://calendar.google.com/calendar/render"

// Event is one all-day calendar entry.
type Event struct {
	Title   string
	Date    core.Date
	Details string
}

// URL returns the calendar render link for the event. All-day events use the
// YYYYMMDD/YYYYMMDD form with an exclusive end date.
func (e Event) URL() string {
	start := e.Date.Format("20060102")
	end := e.Date.AddDate(0, 0, 1).Format("20060102")

	v := url.Values{}
	v.Set("action", "TEMPLATE")
	v.Set("text", e.Title)
	v.Set("dates", start+"/"+end)
	if e.Details != "" {
		v.Set("details", e.Details)
	}
	return renderURL + "?" + v.Encode()
}

// ExRightsEvent builds the ex-rights date reminder for a record.
func ExRightsEvent(r core.BenefitRecord) Event {
	return Event{
		Title:   fmt.Sprintf("【権利確定日】%s (%s)", r.CompanyName, r.Ticker),
		Date:    r.ExRightsDate,
		Details: r.BenefitDescription,
	}
}

// ExDividendEvent builds the ex-dividend date reminder for a record.
func ExDividendEvent(r core.BenefitRecord) Event {
	return Event{
		Title:   fmt.Sprintf("【権利落ち日】%s (%s)", r.CompanyName, r.Ticker),
		Date:    r.ExDividendDate,
		Details: r.BenefitDescription,
	}
}

// ShareText is the plain-text summary used for share links.
func ShareText(r core.BenefitRecord) string {
	return fmt.Sprintf("%s (%s) の株主優待: %s 権利確定日: %s",
		r.CompanyName, r.Ticker, r.BenefitDescription, r.ExRightsDate.Key())
}
