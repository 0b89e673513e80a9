package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolworks/campus-api/internal/models"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

type ledgerStub struct {
	records map[string]models.AttendanceRecord
	calls   int
	failAll bool
}

func newLedgerStub() *ledgerStub {
	return &ledgerStub{records: make(map[string]models.AttendanceRecord)}
}

func recordKey(r models.AttendanceRecord) string {
	return fmt.Sprintf("%s|%d|%s|%s", r.ClassGroup, r.PeriodNumber, r.Date.Format("2006-01-02"), r.StudentID)
}

func (s *ledgerStub) Sheet(_ context.Context, classGroup string, date time.Time, periodNumber int) ([]models.SheetEntry, error) {
	// Mimics the roster query: every student listed, stored marks override the
	// Present default.
	roster := []models.SheetEntry{
		{StudentID: "s1", StudentName: "Student One", RollNumber: 1, Status: models.AttendanceStatusPresent},
		{StudentID: "s2", StudentName: "Student Two", RollNumber: 2, Status: models.AttendanceStatusPresent},
		{StudentID: "s3", StudentName: "Student Three", RollNumber: 3, Status: models.AttendanceStatusPresent},
	}
	for i, entry := range roster {
		key := fmt.Sprintf("%s|%d|%s|%s", classGroup, periodNumber, date.Format("2006-01-02"), entry.StudentID)
		if stored, ok := s.records[key]; ok {
			roster[i].Status = stored.Status
		}
	}
	return roster, nil
}

func (s *ledgerStub) BulkUpsert(_ context.Context, records []models.AttendanceRecord) error {
	s.calls++
	if s.failAll {
		return fmt.Errorf("deadlock detected")
	}
	for _, r := range records {
		s.records[recordKey(r)] = r
	}
	return nil
}

type gridReaderStub struct {
	grid *models.TimetableGrid
}

func (s gridReaderStub) BuildGrid(context.Context, string) (*models.TimetableGrid, error) {
	return s.grid, nil
}

// tuesday is the fixed reference instant used throughout: 2024-03-05.
var tuesday = time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

func newTestAttendanceService(ledger *ledgerStub) *AttendanceService {
	grid := gridWithSlot("Class 10A", models.WeekdayTuesday, 1, "t5", "Math")
	return NewAttendanceService(ledger, gridReaderStub{grid: grid}, nil, FixedClock{Instant: tuesday}, nil, nil)
}

func validSubmitRequest() SubmitAttendanceRequest {
	return SubmitAttendanceRequest{
		ClassGroup:   "Class 10A",
		SubjectName:  "Math",
		PeriodNumber: 1,
		Date:         "2024-03-05",
		DayOfWeek:    "Tuesday",
		TeacherID:    "t5",
		Entries: []SubmitEntry{
			{StudentID: "s1", Status: "PRESENT"},
			{StudentID: "s2", Status: "ABSENT"},
			{StudentID: "s3", Status: "present"},
		},
	}
}

func TestSubmitWritesBatchAndIsIdempotent(t *testing.T) {
	ledger := newLedgerStub()
	svc := newTestAttendanceService(ledger)

	result, err := svc.Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Written)
	assert.Len(t, ledger.records, 3)

	// Resubmitting the same batch rewrites the same keys, never adds rows.
	result, err = svc.Submit(context.Background(), validSubmitRequest())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Written)
	assert.Len(t, ledger.records, 3)
	assert.Equal(t, 2, ledger.calls)
}

func TestSubmitDerivesDayFromDate(t *testing.T) {
	ledger := newLedgerStub()
	svc := newTestAttendanceService(ledger)

	// The wire shape does not require day_of_week; the date alone is enough.
	req := validSubmitRequest()
	req.DayOfWeek = ""
	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Written)
	assert.Len(t, ledger.records, 3)
}

func TestSubmitRejectsMismatchedDate(t *testing.T) {
	svc := newTestAttendanceService(newLedgerStub())

	req := validSubmitRequest()
	req.Date = "2024-03-12" // also a Tuesday, but not today
	_, err := svc.Submit(context.Background(), req)
	assert.Equal(t, appErrors.ErrWrongDay.Code, appErrors.FromError(err).Code)
}

func TestSubmitRejectsForeignPeriod(t *testing.T) {
	svc := newTestAttendanceService(newLedgerStub())

	req := validSubmitRequest()
	req.TeacherID = "t9"
	_, err := svc.Submit(context.Background(), req)
	assert.Equal(t, appErrors.ErrNotMyPeriod.Code, appErrors.FromError(err).Code)
}

func TestSubmitRejectsSubjectMismatch(t *testing.T) {
	svc := newTestAttendanceService(newLedgerStub())

	req := validSubmitRequest()
	req.SubjectName = "Science"
	_, err := svc.Submit(context.Background(), req)
	assert.Equal(t, appErrors.ErrInvalidAssignment.Code, appErrors.FromError(err).Code)
}

func TestSubmitRejectsDuplicateStudents(t *testing.T) {
	svc := newTestAttendanceService(newLedgerStub())

	req := validSubmitRequest()
	req.Entries = append(req.Entries, SubmitEntry{StudentID: "s1", Status: "ABSENT"})
	_, err := svc.Submit(context.Background(), req)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubmitFailedBatchWritesNothing(t *testing.T) {
	ledger := newLedgerStub()
	ledger.failAll = true
	svc := newTestAttendanceService(ledger)

	_, err := svc.Submit(context.Background(), validSubmitRequest())
	assert.Equal(t, appErrors.ErrBatchFailed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, ledger.records)
}

func TestSubmitRejectsInvalidStatus(t *testing.T) {
	svc := newTestAttendanceService(newLedgerStub())

	req := validSubmitRequest()
	req.Entries[0].Status = "LATE"
	_, err := svc.Submit(context.Background(), req)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestFetchSheetDefaultsToPresent(t *testing.T) {
	ledger := newLedgerStub()
	svc := newTestAttendanceService(ledger)

	sheet, err := svc.FetchSheet(context.Background(), "Class 10A", tuesday, 1)
	require.NoError(t, err)
	require.Len(t, sheet, 3)
	for _, entry := range sheet {
		assert.Equal(t, models.AttendanceStatusPresent, entry.Status)
	}

	// Stored marks override the default on the next fetch.
	req := validSubmitRequest()
	_, err = svc.Submit(context.Background(), req)
	require.NoError(t, err)

	sheet, err = svc.FetchSheet(context.Background(), "Class 10A", tuesday, 1)
	require.NoError(t, err)
	byStudent := make(map[string]models.AttendanceStatus, len(sheet))
	for _, entry := range sheet {
		byStudent[entry.StudentID] = entry.Status
	}
	assert.Equal(t, models.AttendanceStatusPresent, byStudent["s1"])
	assert.Equal(t, models.AttendanceStatusAbsent, byStudent["s2"])
	assert.Equal(t, models.AttendanceStatusPresent, byStudent["s3"])
}
