package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "PRESENT"
	AttendanceStatusAbsent  AttendanceStatus = "ABSENT"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusAbsent
}

// AttendanceRecord is one per-student per-period ledger row. Rows are unique
// per (class_group, period_number, date, student_id); a resubmission
// overwrites the prior row for that key.
type AttendanceRecord struct {
	ID           string           `db:"id" json:"id"`
	ClassGroup   string           `db:"class_group" json:"class_group"`
	SubjectName  string           `db:"subject_name" json:"subject_name"`
	PeriodNumber int              `db:"period_number" json:"period_number"`
	Date         time.Time        `db:"date" json:"date"`
	StudentID    string           `db:"student_id" json:"student_id"`
	Status       AttendanceStatus `db:"status" json:"status"`
	MarkedBy     string           `db:"marked_by" json:"marked_by"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// SheetEntry is one row of a marking sheet: a student and their status for the
// sheet's class/date/period key. Students without a stored record default to
// Present on fetch; only a submit makes the row authoritative.
type SheetEntry struct {
	StudentID   string           `db:"student_id" json:"student_id"`
	StudentName string           `db:"student_name" json:"student_name"`
	RollNumber  int              `db:"roll_number" json:"roll_number"`
	Status      AttendanceStatus `db:"status" json:"status"`
}

// AttendanceFilter scopes ledger reads for aggregation.
type AttendanceFilter struct {
	ClassGroup  string
	SubjectName string
	StudentID   string
	TeacherID   string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// StatusCounts holds raw present/absent tallies from the ledger.
type StatusCounts struct {
	Present int `db:"present" json:"present"`
	Absent  int `db:"absent" json:"absent"`
}

// AttendanceSummary is the derived aggregate for a scope and date range. It is
// computed on demand and never persisted.
type AttendanceSummary struct {
	Present            int     `json:"present"`
	Absent             int     `json:"absent"`
	TotalMarkedPeriods int     `json:"total_marked_periods"`
	Percentage         float64 `json:"percentage"`
}

// DayComposite labels a day bucket by its overall shape.
type DayComposite string

const (
	DayFullPresent DayComposite = "Full Day Present"
	DayFullAbsent  DayComposite = "Full Day Absent"
	DayMixed       DayComposite = "Mixed Attendance"
	DayNoRecords   DayComposite = "No Records"
)

// PeriodMark is a single period entry inside a day bucket.
type PeriodMark struct {
	PeriodNumber int              `json:"period_number"`
	SubjectName  string           `json:"subject_name"`
	Status       AttendanceStatus `json:"status"`
}

// DayBucket groups one calendar day's marked periods with a composite label.
type DayBucket struct {
	Date      time.Time    `json:"date"`
	Periods   []PeriodMark `json:"periods"`
	Composite DayComposite `json:"composite"`
}
