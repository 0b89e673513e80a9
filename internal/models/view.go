package models

import "time"

// ViewKind is the closed set of role-facing attendance views.
type ViewKind string

const (
	ViewAdminOverview      ViewKind = "ADMIN_OVERVIEW"
	ViewAdminStudentDetail ViewKind = "ADMIN_STUDENT_DETAIL"
	ViewTeacherSummary     ViewKind = "TEACHER_SUMMARY"
	ViewTeacherLiveMarking ViewKind = "TEACHER_LIVE_MARKING"
	ViewStudentHistory     ViewKind = "STUDENT_HISTORY"
)

// MarkingContext carries everything a live-marking view needs. It is complete
// only when produced by a successful slot resolution.
type MarkingContext struct {
	ClassGroup   string    `json:"class_group"`
	SubjectName  string    `json:"subject_name"`
	PeriodNumber int       `json:"period_number"`
	Date         time.Time `json:"date"`
}

// Complete reports whether every field required for live marking is present.
func (m *MarkingContext) Complete() bool {
	return m != nil && m.ClassGroup != "" && m.SubjectName != "" && m.PeriodNumber > 0 && !m.Date.IsZero()
}

// NavigationContext is the input to the view decision function.
type NavigationContext struct {
	SelectedStudentID string          `json:"selected_student_id,omitempty"`
	Marking           *MarkingContext `json:"marking,omitempty"`
}

// ViewState is the resolved view plus the context it needs to render.
type ViewState struct {
	Kind      ViewKind        `json:"kind"`
	StudentID string          `json:"student_id,omitempty"`
	Marking   *MarkingContext `json:"marking,omitempty"`
}
