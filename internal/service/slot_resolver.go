package service

import (
	"strings"
	"time"

	"github.com/schoolworks/campus-api/internal/models"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

// ResolvedPeriod is the outcome of a successful slot resolution: everything a
// live-marking flow needs.
type ResolvedPeriod struct {
	ClassGroup   string    `json:"class_group"`
	SubjectName  string    `json:"subject_name"`
	PeriodNumber int       `json:"period_number"`
	Date         time.Time `json:"date"`
	TeacherID    string    `json:"teacher_id"`
}

// ResolveMyPeriod decides whether a teacher may mark attendance for the grid
// cell the UI is pointing at. Marking is gated to today's column: a tapped day
// that differs from the reference date's weekday fails with WrongDay even when
// the teacher owns that slot in some other week. The function is pure over its
// inputs; callers supply the reference date from an injected Clock.
func ResolveMyPeriod(teacherID string, tappedDay models.Weekday, periodNumber int, referenceDate time.Time, grid *models.TimetableGrid) (*ResolvedPeriod, error) {
	if teacherID == "" || grid == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher id and grid are required")
	}
	tapped := models.Weekday(strings.ToUpper(string(tappedDay)))
	if !tapped.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid weekday")
	}

	actual := models.WeekdayOf(referenceDate)
	if tapped != actual {
		return nil, appErrors.ErrWrongDay
	}

	cell := grid.SlotAt(actual, periodNumber)
	if cell == nil || cell.TeacherID == nil || cell.SubjectName == nil {
		return nil, appErrors.ErrNotMyPeriod
	}
	if *cell.TeacherID != teacherID {
		return nil, appErrors.ErrNotMyPeriod
	}

	// Normalized to UTC midnight, matching how the ledger keys its dates.
	date := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(), 0, 0, 0, 0, time.UTC)
	return &ResolvedPeriod{
		ClassGroup:   grid.ClassGroup,
		SubjectName:  *cell.SubjectName,
		PeriodNumber: periodNumber,
		Date:         date,
		TeacherID:    teacherID,
	}, nil
}
