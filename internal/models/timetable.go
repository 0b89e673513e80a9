package models

import "time"

// Weekday is the timetable's day-of-week dimension. The grid covers the
// teaching week only.
type Weekday string

const (
	WeekdayMonday    Weekday = "MONDAY"
	WeekdayTuesday   Weekday = "TUESDAY"
	WeekdayWednesday Weekday = "WEDNESDAY"
	WeekdayThursday  Weekday = "THURSDAY"
	WeekdayFriday    Weekday = "FRIDAY"
	WeekdaySaturday  Weekday = "SATURDAY"
)

// SchoolWeek lists the teaching days in grid column order.
var SchoolWeek = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
}

// Valid returns true when the value is a teaching day.
func (d Weekday) Valid() bool {
	switch d {
	case WeekdayMonday, WeekdayTuesday, WeekdayWednesday, WeekdayThursday, WeekdayFriday, WeekdaySaturday:
		return true
	default:
		return false
	}
}

// WeekdayOf maps a calendar date onto the grid dimension. Sunday maps to an
// empty value; no column exists for it.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return WeekdayMonday
	case time.Tuesday:
		return WeekdayTuesday
	case time.Wednesday:
		return WeekdayWednesday
	case time.Thursday:
		return WeekdayThursday
	case time.Friday:
		return WeekdayFriday
	case time.Saturday:
		return WeekdaySaturday
	default:
		return ""
	}
}

// TimetableSlot is one cell of a class's weekly grid. Subject and teacher are
// either both set or both null; a cleared slot keeps its row with both null.
type TimetableSlot struct {
	ID           string    `db:"id" json:"id"`
	ClassGroup   string    `db:"class_group" json:"class_group"`
	DayOfWeek    Weekday   `db:"day_of_week" json:"day_of_week"`
	PeriodNumber int       `db:"period_number" json:"period_number"`
	SubjectName  *string   `db:"subject_name" json:"subject_name,omitempty"`
	TeacherID    *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Assigned reports whether the slot carries a subject/teacher pair.
func (s TimetableSlot) Assigned() bool {
	return s.SubjectName != nil && s.TeacherID != nil
}

// GridCell is one rendered cell of the weekly grid.
type GridCell struct {
	DayOfWeek   Weekday `json:"day_of_week"`
	SubjectName *string `json:"subject_name,omitempty"`
	TeacherID   *string `json:"teacher_id,omitempty"`
	TeacherName *string `json:"teacher_name,omitempty"`
}

// GridRow is one period row of the weekly grid. Break rows carry no cells and
// are rendered non-interactive.
type GridRow struct {
	Period PeriodDefinition `json:"period"`
	Cells  []GridCell       `json:"cells,omitempty"`
}

// TimetableGrid is the full period-by-weekday matrix for a class.
type TimetableGrid struct {
	ClassGroup string    `json:"class_group"`
	Days       []Weekday `json:"days"`
	Rows       []GridRow `json:"rows"`
}

// SlotAt returns the grid cell for a day and period, or nil when the row is a
// break or the cell is empty of any assignment.
func (g *TimetableGrid) SlotAt(day Weekday, periodNumber int) *GridCell {
	for i := range g.Rows {
		if g.Rows[i].Period.PeriodNumber != periodNumber || g.Rows[i].Period.IsBreak {
			continue
		}
		for j := range g.Rows[i].Cells {
			if g.Rows[i].Cells[j].DayOfWeek == day {
				return &g.Rows[i].Cells[j]
			}
		}
	}
	return nil
}

// ClassSubject pairs a subject with the teacher covering it in a class.
type ClassSubject struct {
	SubjectName string `db:"subject_name" json:"subject_name"`
	TeacherID   string `db:"teacher_id" json:"teacher_id"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}

// TeacherAssignment is one taught slot from a teacher's point of view.
type TeacherAssignment struct {
	ClassGroup   string  `db:"class_group" json:"class_group"`
	DayOfWeek    Weekday `db:"day_of_week" json:"day_of_week"`
	PeriodNumber int     `db:"period_number" json:"period_number"`
	SubjectName  string  `db:"subject_name" json:"subject_name"`
}
