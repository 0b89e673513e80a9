package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/pkg/export"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

type attendanceReader interface {
	Counts(ctx context.Context, filter models.AttendanceFilter) (models.StatusCounts, error)
	ListRows(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

type rosterReader interface {
	ListByClass(ctx context.Context, classGroup string) ([]models.Student, error)
}

// SummaryService is the read side of the ledger: aggregate counts, percentage
// arithmetic and per-day composite views.
type SummaryService struct {
	ledger attendanceReader
	roster rosterReader
	cache  *CacheService
	clock  Clock
	logger *zap.Logger
}

// NewSummaryService constructs the summary service.
func NewSummaryService(ledger attendanceReader, roster rosterReader, cache *CacheService, clock Clock, logger *zap.Logger) *SummaryService {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{ledger: ledger, roster: roster, cache: cache, clock: clock, logger: logger}
}

// BuildSummary derives counts and a percentage from raw tallies. An empty
// scope yields 0.0, never a division by zero.
func BuildSummary(counts models.StatusCounts) models.AttendanceSummary {
	total := counts.Present + counts.Absent
	var pct float64
	if total > 0 {
		pct = math.Round(float64(counts.Present)/float64(total)*1000) / 10
	}
	return models.AttendanceSummary{
		Present:            counts.Present,
		Absent:             counts.Absent,
		TotalMarkedPeriods: total,
		Percentage:         pct,
	}
}

// GroupByDate buckets ledger rows by calendar date, newest day first, periods
// ascending inside a day, and labels each day by its overall shape.
func GroupByDate(rows []models.AttendanceRecord) []models.DayBucket {
	byDay := make(map[string][]models.PeriodMark)
	dates := make(map[string]time.Time)
	for _, row := range rows {
		key := row.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], models.PeriodMark{
			PeriodNumber: row.PeriodNumber,
			SubjectName:  row.SubjectName,
			Status:       row.Status,
		})
		dates[key] = row.Date
	}

	keys := make([]string, 0, len(byDay))
	for key := range byDay {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	buckets := make([]models.DayBucket, 0, len(keys))
	for _, key := range keys {
		periods := byDay[key]
		sort.Slice(periods, func(i, j int) bool { return periods[i].PeriodNumber < periods[j].PeriodNumber })
		buckets = append(buckets, models.DayBucket{
			Date:      dates[key],
			Periods:   periods,
			Composite: compositeLabel(periods),
		})
	}
	return buckets
}

func compositeLabel(periods []models.PeriodMark) models.DayComposite {
	if len(periods) == 0 {
		return models.DayNoRecords
	}
	present := 0
	for _, p := range periods {
		if p.Status == models.AttendanceStatusPresent {
			present++
		}
	}
	switch present {
	case len(periods):
		return models.DayFullPresent
	case 0:
		return models.DayFullAbsent
	default:
		return models.DayMixed
	}
}

// StudentHistory is the per-student aggregate plus the day-by-day breakdown.
type StudentHistory struct {
	StudentID string                   `json:"student_id"`
	ViewMode  models.ViewMode          `json:"view_mode"`
	Summary   models.AttendanceSummary `json:"summary"`
	Days      []models.DayBucket       `json:"days"`
}

// History returns a student's aggregate and day buckets for the view mode.
func (s *SummaryService) History(ctx context.Context, studentID string, mode models.ViewMode) (*StudentHistory, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	if !mode.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "view mode must be daily, monthly or overall")
	}

	cacheKey := fmt.Sprintf("%shistory:%s:%s", summaryCachePrefix, studentID, mode)
	var cached StudentHistory
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	from, to := mode.DateRange(s.clock.Now())
	filter := models.AttendanceFilter{StudentID: studentID, DateFrom: from, DateTo: to}
	rows, err := s.ledger.ListRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	counts := models.StatusCounts{}
	for _, row := range rows {
		if row.Status == models.AttendanceStatusPresent {
			counts.Present++
		} else {
			counts.Absent++
		}
	}

	history := &StudentHistory{
		StudentID: studentID,
		ViewMode:  mode,
		Summary:   BuildSummary(counts),
		Days:      GroupByDate(rows),
	}
	_ = s.cache.Set(ctx, cacheKey, history, 0)
	return history, nil
}

// ScopeSummary is the aggregate for a class/subject scope.
type ScopeSummary struct {
	ClassGroup  string                   `json:"class_group"`
	SubjectName string                   `json:"subject_name,omitempty"`
	ViewMode    models.ViewMode          `json:"view_mode"`
	Summary     models.AttendanceSummary `json:"summary"`
}

// ClassSummary aggregates a class (optionally narrowed to a subject and/or the
// marking teacher) for the view mode. Admin passes an empty teacherID.
func (s *SummaryService) ClassSummary(ctx context.Context, classGroup, subjectName, teacherID string, mode models.ViewMode) (*ScopeSummary, error) {
	if classGroup == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class group is required")
	}
	if !mode.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "view mode must be daily, monthly or overall")
	}

	cacheKey := fmt.Sprintf("%sclass:%s:%s:%s:%s", summaryCachePrefix, classGroup, subjectName, teacherID, mode)
	var cached ScopeSummary
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	from, to := mode.DateRange(s.clock.Now())
	counts, err := s.ledger.Counts(ctx, models.AttendanceFilter{
		ClassGroup:  classGroup,
		SubjectName: subjectName,
		TeacherID:   teacherID,
		DateFrom:    from,
		DateTo:      to,
	})
	if err != nil {
		return nil, err
	}

	summary := &ScopeSummary{
		ClassGroup:  classGroup,
		SubjectName: subjectName,
		ViewMode:    mode,
		Summary:     BuildSummary(counts),
	}
	_ = s.cache.Set(ctx, cacheKey, summary, 0)
	return summary, nil
}

// ExportClassSummary renders a per-student breakdown of a class scope as a
// downloadable document.
func (s *SummaryService) ExportClassSummary(ctx context.Context, classGroup, subjectName string, mode models.ViewMode, exporter export.Exporter) ([]byte, string, error) {
	if classGroup == "" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "class group is required")
	}
	if !mode.Valid() {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "view mode must be daily, monthly or overall")
	}

	students, err := s.roster.ListByClass(ctx, classGroup)
	if err != nil {
		return nil, "", err
	}
	from, to := mode.DateRange(s.clock.Now())
	rows, err := s.ledger.ListRows(ctx, models.AttendanceFilter{
		ClassGroup:  classGroup,
		SubjectName: subjectName,
		DateFrom:    from,
		DateTo:      to,
	})
	if err != nil {
		return nil, "", err
	}

	perStudent := make(map[string]models.StatusCounts)
	for _, row := range rows {
		counts := perStudent[row.StudentID]
		if row.Status == models.AttendanceStatusPresent {
			counts.Present++
		} else {
			counts.Absent++
		}
		perStudent[row.StudentID] = counts
	}

	dataset := export.Dataset{Headers: []string{"Roll", "Student", "Present", "Absent", "Marked", "Percentage"}}
	for _, student := range students {
		summary := BuildSummary(perStudent[student.ID])
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Roll":       strconv.Itoa(student.RollNumber),
			"Student":    student.FullName,
			"Present":    strconv.Itoa(summary.Present),
			"Absent":     strconv.Itoa(summary.Absent),
			"Marked":     strconv.Itoa(summary.TotalMarkedPeriods),
			"Percentage": fmt.Sprintf("%.1f", summary.Percentage),
		})
	}

	title := fmt.Sprintf("Attendance %s %s", classGroup, mode)
	payload, err := exporter.Render(dataset, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render summary export")
	}
	filename := fmt.Sprintf("attendance-%s-%s.%s", classGroup, mode, exporter.Extension())
	return payload, filename, nil
}
