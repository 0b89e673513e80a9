package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/schoolworks/campus-api/internal/models"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

type timetableRepository interface {
	ListByClass(ctx context.Context, classGroup string) ([]models.TimetableSlot, error)
	GetSlot(ctx context.Context, classGroup string, day models.Weekday, periodNumber int) (*models.TimetableSlot, error)
	UpsertSlot(ctx context.Context, slot *models.TimetableSlot) (*models.TimetableSlot, error)
	ListSubjectsByClass(ctx context.Context, classGroup string) ([]models.ClassSubject, error)
	ListAssignmentsByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignment, error)
}

type teacherDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

// TimetableService maintains the per-class weekly grid.
type TimetableService struct {
	repo      timetableRepository
	teachers  teacherDirectory
	calendar  *models.PeriodCalendar
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs the timetable service.
func NewTimetableService(repo timetableRepository, teachers teacherDirectory, calendar *models.PeriodCalendar, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &TimetableService{repo: repo, teachers: teachers, calendar: calendar, validator: validate, logger: logger}
	svc.validator.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return models.Weekday(strings.ToUpper(fl.Field().String())).Valid()
	})
	return svc
}

// Calendar exposes the immutable bell schedule.
func (s *TimetableService) Calendar() *models.PeriodCalendar {
	return s.calendar
}

// ListSlots returns the stored slot rows for a class.
func (s *TimetableService) ListSlots(ctx context.Context, classGroup string) ([]models.TimetableSlot, error) {
	if classGroup == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class group is required")
	}
	return s.repo.ListByClass(ctx, classGroup)
}

// BuildGrid renders the full period-by-weekday matrix for a class. Break rows
// are present but carry no cells; every other row has one cell per teaching
// day, populated from stored slots or left empty.
func (s *TimetableService) BuildGrid(ctx context.Context, classGroup string) (*models.TimetableGrid, error) {
	if classGroup == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class group is required")
	}
	slots, err := s.repo.ListByClass(ctx, classGroup)
	if err != nil {
		return nil, err
	}

	type cellKey struct {
		day    models.Weekday
		period int
	}
	byCell := make(map[cellKey]models.TimetableSlot, len(slots))
	for _, slot := range slots {
		byCell[cellKey{slot.DayOfWeek, slot.PeriodNumber}] = slot
	}

	teacherNames := make(map[string]string)
	grid := &models.TimetableGrid{ClassGroup: classGroup, Days: models.SchoolWeek}
	for _, period := range s.calendar.Periods() {
		row := models.GridRow{Period: period}
		if !period.IsBreak {
			row.Cells = make([]models.GridCell, 0, len(models.SchoolWeek))
			for _, day := range models.SchoolWeek {
				cell := models.GridCell{DayOfWeek: day}
				if slot, ok := byCell[cellKey{day, period.PeriodNumber}]; ok && slot.Assigned() {
					cell.SubjectName = slot.SubjectName
					cell.TeacherID = slot.TeacherID
					if name, err := s.teacherName(ctx, teacherNames, *slot.TeacherID); err == nil && name != "" {
						cell.TeacherName = &name
					}
				}
				row.Cells = append(row.Cells, cell)
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

func (s *TimetableService) teacherName(ctx context.Context, cache map[string]string, teacherID string) (string, error) {
	if name, ok := cache[teacherID]; ok {
		return name, nil
	}
	teacher, err := s.teachers.FindByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			cache[teacherID] = ""
			return "", nil
		}
		return "", err
	}
	cache[teacherID] = teacher.FullName
	return teacher.FullName, nil
}

// AssignSlotRequest describes an admin slot edit.
type AssignSlotRequest struct {
	ClassGroup   string  `json:"class_group" validate:"required"`
	DayOfWeek    string  `json:"day_of_week" validate:"required,weekday"`
	PeriodNumber int     `json:"period_number" validate:"required,gt=0"`
	SubjectName  *string `json:"subject_name"`
	TeacherID    *string `json:"teacher_id"`
}

// AssignSlot upserts an assignment into a grid cell. A slot is either fully
// assigned (both subject and teacher) or fully empty; the subject must belong
// to the teacher's taught set. Repeated identical writes converge on the same
// stored slot.
func (s *TimetableService) AssignSlot(ctx context.Context, req AssignSlotRequest) (*models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	day := models.Weekday(strings.ToUpper(req.DayOfWeek))

	period, ok := s.calendar.Lookup(req.PeriodNumber)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown period number")
	}
	if period.IsBreak {
		return nil, appErrors.ErrBreakPeriodImmutable
	}

	hasSubject := req.SubjectName != nil && *req.SubjectName != ""
	hasTeacher := req.TeacherID != nil && *req.TeacherID != ""
	if hasSubject != hasTeacher {
		return nil, appErrors.Clone(appErrors.ErrInvalidAssignment, "subject and teacher must be provided together")
	}
	if !hasSubject {
		return s.ClearSlot(ctx, req.ClassGroup, day, req.PeriodNumber)
	}

	teacher, err := s.teachers.FindByID(ctx, *req.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, err
	}
	if !teacher.Teaches(*req.SubjectName) {
		return nil, appErrors.ErrInvalidAssignment
	}

	slot := &models.TimetableSlot{
		ClassGroup:   req.ClassGroup,
		DayOfWeek:    day,
		PeriodNumber: req.PeriodNumber,
		SubjectName:  req.SubjectName,
		TeacherID:    req.TeacherID,
	}
	stored, err := s.repo.UpsertSlot(ctx, slot)
	if err != nil {
		return nil, err
	}
	s.logger.Info("slot assigned",
		zap.String("class_group", req.ClassGroup),
		zap.String("day", string(day)),
		zap.Int("period", req.PeriodNumber),
		zap.String("teacher_id", *req.TeacherID),
	)
	return stored, nil
}

// ClearSlot sets both fields of a grid cell to absent. Clearing an already
// empty cell is a no-op with the same result.
func (s *TimetableService) ClearSlot(ctx context.Context, classGroup string, day models.Weekday, periodNumber int) (*models.TimetableSlot, error) {
	if classGroup == "" || !day.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class group and weekday are required")
	}
	period, ok := s.calendar.Lookup(periodNumber)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown period number")
	}
	if period.IsBreak {
		return nil, appErrors.ErrBreakPeriodImmutable
	}

	slot := &models.TimetableSlot{
		ClassGroup:   classGroup,
		DayOfWeek:    day,
		PeriodNumber: periodNumber,
	}
	return s.repo.UpsertSlot(ctx, slot)
}

// ListSubjects returns the subjects currently assigned in a class.
func (s *TimetableService) ListSubjects(ctx context.Context, classGroup string) ([]models.ClassSubject, error) {
	if classGroup == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class group is required")
	}
	return s.repo.ListSubjectsByClass(ctx, classGroup)
}

// ListAssignments returns every slot a teacher owns across classes.
func (s *TimetableService) ListAssignments(ctx context.Context, teacherID string) ([]models.TeacherAssignment, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher id is required")
	}
	return s.repo.ListAssignmentsByTeacher(ctx, teacherID)
}
