package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/schoolworks/campus-api/internal/middleware"
	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/service"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
)

type attendanceProviderStub struct {
	sheet      []models.SheetEntry
	sheetErr   error
	submitted  *service.SubmitAttendanceRequest
	submitErr  error
	submitDate time.Time
}

func (s *attendanceProviderStub) FetchSheet(context.Context, string, time.Time, int) ([]models.SheetEntry, error) {
	return s.sheet, s.sheetErr
}

func (s *attendanceProviderStub) Submit(_ context.Context, req service.SubmitAttendanceRequest) (*service.SubmitResult, error) {
	s.submitted = &req
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return &service.SubmitResult{Written: len(req.Entries), Date: s.submitDate}, nil
}

type gridProviderStub struct {
	grid *models.TimetableGrid
}

func (s gridProviderStub) BuildGrid(context.Context, string) (*models.TimetableGrid, error) {
	return s.grid, nil
}

func withClaims(claims *models.JWTClaims) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextUserKey, claims)
		}
		c.Next()
	}
}

func teacherClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u1", Role: models.RoleTeacher, PersonID: "t5"}
}

// tuesday 2024-03-05 anchors the fixed clock used by the resolve tests.
var handlerClock = service.FixedClock{Instant: time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)}

func newAttendanceRouter(provider *attendanceProviderStub, grid *models.TimetableGrid, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAttendanceHandler(provider, gridProviderStub{grid: grid}, handlerClock, nil)
	r := gin.New()
	r.Use(withClaims(claims))
	r.GET("/attendance/sheet", h.Sheet)
	r.GET("/attendance/resolve", h.Resolve)
	r.POST("/attendance", h.Submit)
	return r
}

func ownedGrid() *models.TimetableGrid {
	subject := "Math"
	teacherID := "t5"
	cells := make([]models.GridCell, 0, len(models.SchoolWeek))
	for _, day := range models.SchoolWeek {
		cell := models.GridCell{DayOfWeek: day}
		if day == models.WeekdayTuesday {
			cell.SubjectName = &subject
			cell.TeacherID = &teacherID
		}
		cells = append(cells, cell)
	}
	return &models.TimetableGrid{
		ClassGroup: "Class 10A",
		Days:       models.SchoolWeek,
		Rows: []models.GridRow{
			{Period: models.PeriodDefinition{PeriodNumber: 1, StartTime: "08:00", EndTime: "08:45"}, Cells: cells},
		},
	}
}

func TestAttendanceHandlerSheet(t *testing.T) {
	provider := &attendanceProviderStub{sheet: []models.SheetEntry{
		{StudentID: "s1", StudentName: "Student One", RollNumber: 1, Status: models.AttendanceStatusPresent},
	}}
	router := newAttendanceRouter(provider, ownedGrid(), teacherClaims())

	req, _ := http.NewRequest(http.MethodGet, "/attendance/sheet?classGroup=Class+10A&date=2024-03-05&periodNumber=1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"student_id":"s1"`)
	require.Contains(t, resp.Body.String(), `"status":"PRESENT"`)
}

func TestAttendanceHandlerSheetRejectsBadDate(t *testing.T) {
	router := newAttendanceRouter(&attendanceProviderStub{}, ownedGrid(), teacherClaims())

	req, _ := http.NewRequest(http.MethodGet, "/attendance/sheet?classGroup=Class+10A&date=05-03-2024&periodNumber=1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAttendanceHandlerResolveOwnedSlot(t *testing.T) {
	router := newAttendanceRouter(&attendanceProviderStub{}, ownedGrid(), teacherClaims())

	req, _ := http.NewRequest(http.MethodGet, "/attendance/resolve?classGroup=Class+10A&day=Tuesday&periodNumber=1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"subject_name":"Math"`)
}

func TestAttendanceHandlerResolveWrongDay(t *testing.T) {
	router := newAttendanceRouter(&attendanceProviderStub{}, ownedGrid(), teacherClaims())

	// The clock says Tuesday; tapping the Monday column conflicts.
	req, _ := http.NewRequest(http.MethodGet, "/attendance/resolve?classGroup=Class+10A&day=Monday&periodNumber=1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusConflict, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrWrongDay.Code)
}

func TestAttendanceHandlerResolveForeignSlot(t *testing.T) {
	claims := teacherClaims()
	claims.PersonID = "t9"
	router := newAttendanceRouter(&attendanceProviderStub{}, ownedGrid(), claims)

	req, _ := http.NewRequest(http.MethodGet, "/attendance/resolve?classGroup=Class+10A&day=Tuesday&periodNumber=1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusForbidden, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrNotMyPeriod.Code)
}

func TestAttendanceHandlerSubmitForcesCallerIdentity(t *testing.T) {
	provider := &attendanceProviderStub{submitDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}
	router := newAttendanceRouter(provider, ownedGrid(), teacherClaims())

	payload := `{"class_group":"Class 10A","subject_name":"Math","period_number":1,"date":"2024-03-05","day_of_week":"Tuesday","teacher_id":"someone-else","entries":[{"student_id":"s1","status":"PRESENT"}]}`
	req, _ := http.NewRequest(http.MethodPost, "/attendance", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	require.NotNil(t, provider.submitted)
	require.Equal(t, "t5", provider.submitted.TeacherID)
}

func TestAttendanceHandlerSubmitBatchFailure(t *testing.T) {
	provider := &attendanceProviderStub{submitErr: appErrors.ErrBatchFailed}
	router := newAttendanceRouter(provider, ownedGrid(), teacherClaims())

	payload := `{"class_group":"Class 10A","subject_name":"Math","period_number":1,"date":"2024-03-05","day_of_week":"Tuesday","teacher_id":"t5","entries":[{"student_id":"s1","status":"PRESENT"}]}`
	req, _ := http.NewRequest(http.MethodPost, "/attendance", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusConflict, resp.Code)
	require.Contains(t, resp.Body.String(), appErrors.ErrBatchFailed.Code)
}

func TestAttendanceHandlerSubmitWithoutIdentity(t *testing.T) {
	router := newAttendanceRouter(&attendanceProviderStub{}, ownedGrid(), nil)

	req, _ := http.NewRequest(http.MethodPost, "/attendance", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
