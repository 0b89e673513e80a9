package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolworks/campus-api/internal/models"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func gridWithSlot(classGroup string, day models.Weekday, period int, teacherID, subject string) *models.TimetableGrid {
	cells := make([]models.GridCell, 0, len(models.SchoolWeek))
	for _, d := range models.SchoolWeek {
		cell := models.GridCell{DayOfWeek: d}
		if d == day {
			cell.SubjectName = strPtr(subject)
			cell.TeacherID = strPtr(teacherID)
		}
		cells = append(cells, cell)
	}
	return &models.TimetableGrid{
		ClassGroup: classGroup,
		Days:       models.SchoolWeek,
		Rows: []models.GridRow{
			{Period: models.PeriodDefinition{PeriodNumber: period, StartTime: "08:00", EndTime: "08:45"}, Cells: cells},
		},
	}
}

func TestResolveMyPeriodWrongDayEvenWhenSlotIsOwned(t *testing.T) {
	// Teacher 5 owns Tuesday period 1, but the reference date is a Wednesday.
	grid := gridWithSlot("Class 10A", models.WeekdayTuesday, 1, "t5", "Math")
	wednesday := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	require.Equal(t, models.WeekdayWednesday, models.WeekdayOf(wednesday))

	_, err := ResolveMyPeriod("t5", models.WeekdayTuesday, 1, wednesday, grid)
	assert.True(t, errors.Is(err, appErrors.ErrWrongDay) || appErrors.FromError(err).Code == appErrors.ErrWrongDay.Code)
}

func TestResolveMyPeriodNotMyPeriod(t *testing.T) {
	grid := gridWithSlot("Class 10A", models.WeekdayTuesday, 1, "t5", "Math")
	tuesday := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	_, err := ResolveMyPeriod("t9", models.WeekdayTuesday, 1, tuesday, grid)
	assert.Equal(t, appErrors.ErrNotMyPeriod.Code, appErrors.FromError(err).Code)
}

func TestResolveMyPeriodEmptyCellIsNotMine(t *testing.T) {
	grid := gridWithSlot("Class 10A", models.WeekdayMonday, 1, "t5", "Math")
	tuesday := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	_, err := ResolveMyPeriod("t5", models.WeekdayTuesday, 1, tuesday, grid)
	assert.Equal(t, appErrors.ErrNotMyPeriod.Code, appErrors.FromError(err).Code)
}

func TestResolveMyPeriodSuccess(t *testing.T) {
	grid := gridWithSlot("Class 10A", models.WeekdayTuesday, 1, "t5", "Math")
	tuesday := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	resolved, err := ResolveMyPeriod("t5", models.WeekdayTuesday, 1, tuesday, grid)
	require.NoError(t, err)
	assert.Equal(t, "Class 10A", resolved.ClassGroup)
	assert.Equal(t, "Math", resolved.SubjectName)
	assert.Equal(t, 1, resolved.PeriodNumber)
	assert.Equal(t, "t5", resolved.TeacherID)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), resolved.Date)
}

func TestResolveMyPeriodNormalizesDateToUTC(t *testing.T) {
	grid := gridWithSlot("Class 10A", models.WeekdayTuesday, 1, "t5", "Math")
	jakarta := time.FixedZone("WIB", 7*60*60)
	localTuesday := time.Date(2024, 3, 5, 10, 0, 0, 0, jakarta)

	resolved, err := ResolveMyPeriod("t5", models.WeekdayTuesday, 1, localTuesday, grid)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), resolved.Date)
}

func TestResolveMyPeriodLowercaseDay(t *testing.T) {
	grid := gridWithSlot("Class 10A", models.WeekdayTuesday, 1, "t5", "Math")
	tuesday := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	resolved, err := ResolveMyPeriod("t5", models.Weekday("tuesday"), 1, tuesday, grid)
	require.NoError(t, err)
	assert.Equal(t, "Math", resolved.SubjectName)
}
