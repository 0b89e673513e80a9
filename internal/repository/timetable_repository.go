package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/schoolworks/campus-api/internal/models"
)

// TimetableRepository persists the weekly slot matrix.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository creates a new timetable repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

const slotColumns = "id, class_group, day_of_week, period_number, subject_name, teacher_id, created_at, updated_at"

// ListByClass returns all stored slots for a class ordered by day and period.
func (r *TimetableRepository) ListByClass(ctx context.Context, classGroup string) ([]models.TimetableSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM timetable_slots WHERE class_group = $1 ORDER BY day_of_week ASC, period_number ASC`, slotColumns)
	var slots []models.TimetableSlot
	if err := r.db.SelectContext(ctx, &slots, query, classGroup); err != nil {
		return nil, fmt.Errorf("list timetable slots: %w", err)
	}
	return slots, nil
}

// GetSlot loads one grid cell; returns nil when no row exists for the key.
func (r *TimetableRepository) GetSlot(ctx context.Context, classGroup string, day models.Weekday, periodNumber int) (*models.TimetableSlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM timetable_slots WHERE class_group = $1 AND day_of_week = $2 AND period_number = $3`, slotColumns)
	var slot models.TimetableSlot
	if err := r.db.GetContext(ctx, &slot, query, classGroup, day, periodNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get timetable slot: %w", err)
	}
	return &slot, nil
}

// UpsertSlot stores an assignment for a grid cell. The unique key on
// (class_group, day_of_week, period_number) makes repeated writes converge on
// a single row.
func (r *TimetableRepository) UpsertSlot(ctx context.Context, slot *models.TimetableSlot) (*models.TimetableSlot, error) {
	now := time.Now().UTC()
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO timetable_slots (id, class_group, day_of_week, period_number, subject_name, teacher_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (class_group, day_of_week, period_number)
DO UPDATE SET subject_name = EXCLUDED.subject_name, teacher_id = EXCLUDED.teacher_id, updated_at = EXCLUDED.updated_at
RETURNING %s`, slotColumns)
	var stored models.TimetableSlot
	if err := r.db.GetContext(ctx, &stored, query, slot.ID, slot.ClassGroup, slot.DayOfWeek, slot.PeriodNumber, slot.SubjectName, slot.TeacherID, slot.CreatedAt, slot.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert timetable slot: %w", err)
	}
	return &stored, nil
}

// ListSubjectsByClass returns the distinct assigned subjects in a class with
// the covering teacher.
func (r *TimetableRepository) ListSubjectsByClass(ctx context.Context, classGroup string) ([]models.ClassSubject, error) {
	const query = `SELECT DISTINCT ts.subject_name, ts.teacher_id, t.full_name AS teacher_name
FROM timetable_slots ts
JOIN teachers t ON t.id = ts.teacher_id
WHERE ts.class_group = $1 AND ts.subject_name IS NOT NULL
ORDER BY ts.subject_name ASC`
	var subjects []models.ClassSubject
	if err := r.db.SelectContext(ctx, &subjects, query, classGroup); err != nil {
		return nil, fmt.Errorf("list class subjects: %w", err)
	}
	return subjects, nil
}

// ListAssignmentsByTeacher returns every assigned slot a teacher owns.
func (r *TimetableRepository) ListAssignmentsByTeacher(ctx context.Context, teacherID string) ([]models.TeacherAssignment, error) {
	const query = `SELECT class_group, day_of_week, period_number, subject_name
FROM timetable_slots
WHERE teacher_id = $1 AND subject_name IS NOT NULL
ORDER BY class_group ASC, day_of_week ASC, period_number ASC`
	var assignments []models.TeacherAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	return assignments, nil
}
