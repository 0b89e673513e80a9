package models

import "time"

// Student represents a pupil enrolled in a class group.
type Student struct {
	ID         string    `db:"id" json:"id"`
	FullName   string    `db:"full_name" json:"full_name"`
	ClassGroup string    `db:"class_group" json:"class_group"`
	RollNumber int       `db:"roll_number" json:"roll_number"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
