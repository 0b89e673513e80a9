package models

import "time"

// ViewMode selects the date range a summary covers.
type ViewMode string

const (
	ViewModeDaily   ViewMode = "daily"
	ViewModeMonthly ViewMode = "monthly"
	ViewModeOverall ViewMode = "overall"
)

// Valid returns true for a supported view mode.
func (m ViewMode) Valid() bool {
	return m == ViewModeDaily || m == ViewModeMonthly || m == ViewModeOverall
}

// DateRange resolves the mode against a reference instant. Daily covers the
// reference date, monthly the calendar month to date, overall is unbounded
// (nil on both ends).
func (m ViewMode) DateRange(now time.Time) (from, to *time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch m {
	case ViewModeDaily:
		return &day, &day
	case ViewModeMonthly:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return &monthStart, &day
	default:
		return nil, nil
	}
}
