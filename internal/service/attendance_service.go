package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schoolworks/campus-api/internal/models"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

type attendanceLedger interface {
	Sheet(ctx context.Context, classGroup string, date time.Time, periodNumber int) ([]models.SheetEntry, error)
	BulkUpsert(ctx context.Context, records []models.AttendanceRecord) error
}

type gridReader interface {
	BuildGrid(ctx context.Context, classGroup string) (*models.TimetableGrid, error)
}

// AttendanceService coordinates sheet fetches and batch submissions against
// the ledger. Ownership of the slot is verified through the grid before any
// write.
type AttendanceService struct {
	ledger    attendanceLedger
	grids     gridReader
	cache     *CacheService
	clock     Clock
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(ledger attendanceLedger, grids gridReader, cache *CacheService, clock Clock, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock()
	}
	svc := &AttendanceService{ledger: ledger, grids: grids, cache: cache, clock: clock, validator: validate, logger: logger}
	svc.validator.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(strings.ToUpper(fl.Field().String())).Valid()
	})
	return svc
}

// FetchSheet returns the marking sheet for a class/date/period key. Students
// without a stored record default to Present; this is a convenience default,
// not a confirmed mark.
func (s *AttendanceService) FetchSheet(ctx context.Context, classGroup string, date time.Time, periodNumber int) ([]models.SheetEntry, error) {
	if classGroup == "" || periodNumber <= 0 || date.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class group, date and period are required")
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return s.ledger.Sheet(ctx, classGroup, day, periodNumber)
}

// SubmitEntry is one student's mark inside a batch.
type SubmitEntry struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,attendance_status"`
}

// SubmitAttendanceRequest is the teacher's batch submission.
type SubmitAttendanceRequest struct {
	ClassGroup   string        `json:"class_group" validate:"required"`
	SubjectName  string        `json:"subject_name" validate:"required"`
	PeriodNumber int           `json:"period_number" validate:"required,gt=0"`
	Date         string        `json:"date" validate:"required"`
	DayOfWeek    string        `json:"day_of_week,omitempty"`
	TeacherID    string        `json:"teacher_id" validate:"required"`
	Entries      []SubmitEntry `json:"entries" validate:"required,min=1,dive"`
}

// SubmitResult acknowledges a written batch.
type SubmitResult struct {
	Written int       `json:"written"`
	Date    time.Time `json:"date"`
}

// Submit resolves slot ownership for today's column, then writes the batch as
// one transaction. The write is idempotent: resubmitting identical entries
// leaves the ledger unchanged.
func (s *AttendanceService) Submit(ctx context.Context, req SubmitAttendanceRequest) (*SubmitResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be YYYY-MM-DD")
	}

	// day_of_week is optional on the wire; absent, it follows from the date.
	day := models.Weekday(strings.ToUpper(req.DayOfWeek))
	if req.DayOfWeek == "" {
		day = models.WeekdayOf(date)
	}

	grid, err := s.grids.BuildGrid(ctx, req.ClassGroup)
	if err != nil {
		return nil, err
	}
	resolved, err := ResolveMyPeriod(req.TeacherID, day, req.PeriodNumber, s.clock.Now(), grid)
	if err != nil {
		return nil, err
	}
	if resolved.SubjectName != req.SubjectName {
		return nil, appErrors.Clone(appErrors.ErrInvalidAssignment, "subject does not match the resolved slot")
	}
	// The resolver pins marking to today; the submitted date must agree.
	if !sameDay(resolved.Date, date) {
		return nil, appErrors.ErrWrongDay
	}

	records := make([]models.AttendanceRecord, 0, len(req.Entries))
	seen := make(map[string]struct{}, len(req.Entries))
	for _, entry := range req.Entries {
		if _, dup := seen[entry.StudentID]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, "duplicate student in batch")
		}
		seen[entry.StudentID] = struct{}{}
		records = append(records, models.AttendanceRecord{
			ClassGroup:   req.ClassGroup,
			SubjectName:  req.SubjectName,
			PeriodNumber: req.PeriodNumber,
			Date:         resolved.Date,
			StudentID:    entry.StudentID,
			Status:       models.AttendanceStatus(strings.ToUpper(entry.Status)),
			MarkedBy:     req.TeacherID,
		})
	}

	if err := s.ledger.BulkUpsert(ctx, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrBatchFailed.Code, appErrors.ErrBatchFailed.Status, appErrors.ErrBatchFailed.Message)
	}

	if s.cache.Enabled() {
		if err := s.cache.Invalidate(ctx, summaryCachePrefix+"*"); err != nil {
			s.logger.Warn("summary cache invalidation failed", zap.Error(err))
		}
	}

	s.logger.Info("attendance batch written",
		zap.String("class_group", req.ClassGroup),
		zap.String("subject", req.SubjectName),
		zap.Int("period", req.PeriodNumber),
		zap.Int("entries", len(records)),
	)
	return &SubmitResult{Written: len(records), Date: resolved.Date}, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
