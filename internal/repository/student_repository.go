package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/schoolworks/campus-api/internal/models"
)

// StudentRepository reads the class rosters.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new student repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListByClass returns the active roster for a class ordered by roll number.
func (r *StudentRepository) ListByClass(ctx context.Context, classGroup string) ([]models.Student, error) {
	const query = `SELECT id, full_name, class_group, roll_number, active, created_at, updated_at
FROM students WHERE class_group = $1 AND active = TRUE ORDER BY roll_number ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, classGroup); err != nil {
		return nil, fmt.Errorf("list students by class: %w", err)
	}
	return students, nil
}

// FindByID loads one student record.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, full_name, class_group, roll_number, active, created_at, updated_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}
