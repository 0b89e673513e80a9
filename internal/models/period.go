package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PeriodDefinition describes one row of the school's bell schedule.
type PeriodDefinition struct {
	PeriodNumber int    `json:"period_number"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	IsBreak      bool   `json:"is_break"`
	Label        string `json:"label,omitempty"`
}

// PeriodCalendar is the immutable catalog of the day's periods, built once at
// process start. Lookups are by period number.
type PeriodCalendar struct {
	periods []PeriodDefinition
	byNum   map[int]PeriodDefinition
}

// DefaultPeriods is the built-in bell schedule used when no override is
// configured: eight periods with a morning break and a lunch break.
func DefaultPeriods() []PeriodDefinition {
	return []PeriodDefinition{
		{PeriodNumber: 1, StartTime: "08:00", EndTime: "08:45"},
		{PeriodNumber: 2, StartTime: "08:45", EndTime: "09:30"},
		{PeriodNumber: 3, StartTime: "09:30", EndTime: "09:50", IsBreak: true, Label: "Break"},
		{PeriodNumber: 4, StartTime: "09:50", EndTime: "10:35"},
		{PeriodNumber: 5, StartTime: "10:35", EndTime: "11:20"},
		{PeriodNumber: 6, StartTime: "11:20", EndTime: "12:00", IsBreak: true, Label: "Lunch"},
		{PeriodNumber: 7, StartTime: "12:00", EndTime: "12:45"},
		{PeriodNumber: 8, StartTime: "12:45", EndTime: "13:30"},
	}
}

// NewPeriodCalendar validates and freezes a bell schedule. Periods must be
// unique, ordered by number, and non-overlapping in time.
func NewPeriodCalendar(periods []PeriodDefinition) (*PeriodCalendar, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("period calendar requires at least one period")
	}
	sorted := make([]PeriodDefinition, len(periods))
	copy(sorted, periods)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PeriodNumber < sorted[j].PeriodNumber })

	byNum := make(map[int]PeriodDefinition, len(sorted))
	for i, p := range sorted {
		if p.PeriodNumber <= 0 {
			return nil, fmt.Errorf("period number must be positive, got %d", p.PeriodNumber)
		}
		if _, dup := byNum[p.PeriodNumber]; dup {
			return nil, fmt.Errorf("duplicate period number %d", p.PeriodNumber)
		}
		if p.StartTime >= p.EndTime {
			return nil, fmt.Errorf("period %d start %s is not before end %s", p.PeriodNumber, p.StartTime, p.EndTime)
		}
		if i > 0 && sorted[i-1].EndTime > p.StartTime {
			return nil, fmt.Errorf("period %d overlaps period %d", p.PeriodNumber, sorted[i-1].PeriodNumber)
		}
		byNum[p.PeriodNumber] = p
	}
	return &PeriodCalendar{periods: sorted, byNum: byNum}, nil
}

// NewPeriodCalendarFromJSON parses a JSON override of the bell schedule. An
// empty document falls back to the built-in schedule.
func NewPeriodCalendarFromJSON(raw string) (*PeriodCalendar, error) {
	if raw == "" {
		return NewPeriodCalendar(DefaultPeriods())
	}
	var periods []PeriodDefinition
	if err := json.Unmarshal([]byte(raw), &periods); err != nil {
		return nil, fmt.Errorf("parse timetable periods: %w", err)
	}
	return NewPeriodCalendar(periods)
}

// Periods returns the schedule ordered by period number.
func (c *PeriodCalendar) Periods() []PeriodDefinition {
	out := make([]PeriodDefinition, len(c.periods))
	copy(out, c.periods)
	return out
}

// Lookup returns the definition for a period number.
func (c *PeriodCalendar) Lookup(periodNumber int) (PeriodDefinition, bool) {
	p, ok := c.byNum[periodNumber]
	return p, ok
}

// IsBreak reports whether the period number is a break or lunch row. Unknown
// periods report false; callers validate existence separately.
func (c *PeriodCalendar) IsBreak(periodNumber int) bool {
	p, ok := c.byNum[periodNumber]
	return ok && p.IsBreak
}
