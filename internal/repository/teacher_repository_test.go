package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/schoolworks/campus-api/internal/models"
)

func teacherRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "active", "created_at", "updated_at"})
	for _, id := range ids {
		rows.AddRow(id, id+"@school.test", "Teacher "+id, true, time.Now(), time.Now())
	}
	return rows
}

func TestTeacherRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeacherRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("full_name ILIKE $1 OR email ILIKE $1")).
		WithArgs("%five%").
		WillReturnRows(teacherRows("t5"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers")).
		WithArgs("%five%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT subject_name FROM teacher_subjects WHERE teacher_id = $1")).
		WithArgs("t5").
		WillReturnRows(sqlmock.NewRows([]string{"subject_name"}).AddRow("Math").AddRow("Science"))

	teachers, total, err := repo.List(context.Background(), models.TeacherFilter{Search: "five"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, teachers, 1)
	require.Equal(t, []string{"Math", "Science"}, teachers[0].SubjectsTaught)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListRejectsUnknownSortColumn(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeacherRepository(db)
	// An unlisted sort column falls back to full_name.
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY full_name ASC")).
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.List(context.Background(), models.TeacherFilter{SortBy: "password; DROP TABLE teachers"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTeacherRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE id = $1")).
		WithArgs("t5").
		WillReturnRows(teacherRows("t5"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT subject_name FROM teacher_subjects WHERE teacher_id = $1")).
		WithArgs("t5").
		WillReturnRows(sqlmock.NewRows([]string{"subject_name"}).AddRow("Math"))

	teacher, err := repo.FindByID(context.Background(), "t5")
	require.NoError(t, err)
	require.True(t, teacher.Teaches("Math"))
	require.False(t, teacher.Teaches("English"))
	require.NoError(t, mock.ExpectationsWereMet())
}
