package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/schoolworks/campus-api/internal/models"
)

// AttendanceRepository persists the per-student per-period ledger.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Sheet joins the class roster with any stored records for the key. Students
// without a stored row come back as Present; the LEFT JOIN keeps the roster
// complete.
func (r *AttendanceRepository) Sheet(ctx context.Context, classGroup string, date time.Time, periodNumber int) ([]models.SheetEntry, error) {
	const query = `SELECT s.id AS student_id, s.full_name AS student_name, s.roll_number,
COALESCE(ar.status, 'PRESENT') AS status
FROM students s
LEFT JOIN attendance_records ar
  ON ar.student_id = s.id AND ar.class_group = s.class_group
  AND ar.date = $2 AND ar.period_number = $3
WHERE s.class_group = $1 AND s.active = TRUE
ORDER BY s.roll_number ASC`
	var entries []models.SheetEntry
	if err := r.db.SelectContext(ctx, &entries, query, classGroup, date, periodNumber); err != nil {
		return nil, fmt.Errorf("fetch attendance sheet: %w", err)
	}
	return entries, nil
}

// BulkUpsert writes a batch of ledger rows in one transaction. Either every
// row lands or the transaction rolls back; a conflicting key overwrites the
// prior row.
func (r *AttendanceRepository) BulkUpsert(ctx context.Context, records []models.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attendance batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO attendance_records (id, class_group, subject_name, period_number, date, student_id, status, marked_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (class_group, period_number, date, student_id)
DO UPDATE SET subject_name = EXCLUDED.subject_name, status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	for i := range records {
		rec := records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		if _, err = tx.ExecContext(ctx, query, rec.ID, rec.ClassGroup, rec.SubjectName, rec.PeriodNumber, rec.Date, rec.StudentID, rec.Status, rec.MarkedBy, rec.CreatedAt, rec.UpdatedAt); err != nil {
			err = fmt.Errorf("upsert attendance record: %w", err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit attendance batch: %w", err)
	}
	return nil
}

func attendanceWhere(filter models.AttendanceFilter) (string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ClassGroup != "" {
		where = append(where, fmt.Sprintf("class_group = $%d", len(args)+1))
		args = append(args, filter.ClassGroup)
	}
	if filter.SubjectName != "" {
		where = append(where, fmt.Sprintf("subject_name = $%d", len(args)+1))
		args = append(args, filter.SubjectName)
	}
	if filter.StudentID != "" {
		where = append(where, fmt.Sprintf("student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.TeacherID != "" {
		where = append(where, fmt.Sprintf("marked_by = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	return strings.Join(where, " AND "), args
}

// Counts tallies present/absent rows in the filtered scope.
func (r *AttendanceRepository) Counts(ctx context.Context, filter models.AttendanceFilter) (models.StatusCounts, error) {
	whereClause, args := attendanceWhere(filter)
	query := fmt.Sprintf(`SELECT
COUNT(*) FILTER (WHERE status = 'PRESENT') AS present,
COUNT(*) FILTER (WHERE status = 'ABSENT') AS absent
FROM attendance_records WHERE %s`, whereClause)
	var counts models.StatusCounts
	if err := r.db.GetContext(ctx, &counts, query, args...); err != nil {
		return models.StatusCounts{}, fmt.Errorf("count attendance: %w", err)
	}
	return counts, nil
}

// ListRows returns raw ledger rows for the filtered scope, newest date first
// with periods ascending inside a day.
func (r *AttendanceRepository) ListRows(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	whereClause, args := attendanceWhere(filter)
	query := fmt.Sprintf(`SELECT id, class_group, subject_name, period_number, date, student_id, status, marked_by, created_at, updated_at
FROM attendance_records WHERE %s ORDER BY date DESC, period_number ASC`, whereClause)
	var rows []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance rows: %w", err)
	}
	return rows, nil
}
