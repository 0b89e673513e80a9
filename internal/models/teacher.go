package models

import "time"

// Teacher represents an instructor record.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// SubjectsTaught is loaded from the teacher_subjects join table.
	SubjectsTaught []string `db:"-" json:"subjects_taught"`
}

// Teaches reports whether the teacher covers the named subject.
func (t *Teacher) Teaches(subject string) bool {
	for _, s := range t.SubjectsTaught {
		if s == subject {
			return true
		}
	}
	return false
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search    string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
