package core

import "time"

// Session is the interactive session context: the only mutable state of the
// subsystem. It owns the FilterSpec, the display cursor, the visible calendar
// month and the currently opened record. A Session is created on session
// start, discarded on session end, and mutated only through its methods in
// response to discrete serialized user actions.
type Session struct {
	Spec         FilterSpec
	DisplayCount int
	Year         int
	Month        time.Month
	SelectedID   string
}

// NewSession starts a session showing the given month with no filters active.
func NewSession(year int, month time.Month) *Session {
	return &Session{
		Spec:         NewFilterSpec(),
		DisplayCount: DefaultDisplayCount,
		Year:         year,
		Month:        month,
	}
}

// Apply routes an action through the reducer. Every filter action ends the
// current pagination epoch and resets the cursor to the default; ShowMore is
// the one action that grows the cursor instead.
func (s *Session) Apply(a Action) {
	if _, ok := a.(ShowMore); ok {
		s.DisplayCount = Advance(s.DisplayCount)
		return
	}
	s.Spec = Apply(s.Spec, a)
	s.DisplayCount = DefaultDisplayCount
}

// SetMonth moves the visible calendar month. Month navigation does not touch
// the filter state or the cursor.
func (s *Session) SetMonth(year int, month time.Month) {
	s.Year = year
	s.Month = month
}

// SelectRecord opens a record detail; empty id closes it.
func (s *Session) SelectRecord(id string) {
	s.SelectedID = id
}
