package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/service"
	"github.com/schoolworks/campus-api/pkg/response"
)

type timetableRepoStub struct {
	slots []models.TimetableSlot
}

func (s timetableRepoStub) ListByClass(context.Context, string) ([]models.TimetableSlot, error) {
	return s.slots, nil
}

func (s timetableRepoStub) GetSlot(context.Context, string, models.Weekday, int) (*models.TimetableSlot, error) {
	return nil, nil
}

func (s timetableRepoStub) UpsertSlot(_ context.Context, slot *models.TimetableSlot) (*models.TimetableSlot, error) {
	return slot, nil
}

func (s timetableRepoStub) ListSubjectsByClass(context.Context, string) ([]models.ClassSubject, error) {
	return nil, nil
}

func (s timetableRepoStub) ListAssignmentsByTeacher(context.Context, string) ([]models.TeacherAssignment, error) {
	return nil, nil
}

type teacherDirectoryStub struct{}

func (teacherDirectoryStub) FindByID(_ context.Context, id string) (*models.Teacher, error) {
	return &models.Teacher{ID: id, FullName: "Teacher Five", SubjectsTaught: []string{"Math"}}, nil
}

func newTimetableRouter(t *testing.T, slots []models.TimetableSlot) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	calendar, err := models.NewPeriodCalendar(models.DefaultPeriods())
	require.NoError(t, err)
	svc := service.NewTimetableService(timetableRepoStub{slots: slots}, teacherDirectoryStub{}, calendar, nil, nil)
	h := NewTimetableHandler(svc)
	r := gin.New()
	r.GET("/timetable/:classGroup", h.Slots)
	r.GET("/timetable/:classGroup/grid", h.Grid)
	return r
}

func storedSlot() models.TimetableSlot {
	subject := "Math"
	teacherID := "t5"
	return models.TimetableSlot{
		ID:           "slot-1",
		ClassGroup:   "Class 10A",
		DayOfWeek:    models.WeekdayMonday,
		PeriodNumber: 1,
		SubjectName:  &subject,
		TeacherID:    &teacherID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestTimetableHandlerSlotsReturnsRowList(t *testing.T) {
	router := newTimetableRouter(t, []models.TimetableSlot{storedSlot()})

	req, _ := http.NewRequest(http.MethodGet, "/timetable/Class%2010A", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var envelope struct {
		Data []models.TimetableSlot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, "slot-1", envelope.Data[0].ID)
	require.Equal(t, models.WeekdayMonday, envelope.Data[0].DayOfWeek)
}

func TestTimetableHandlerGridReturnsComposite(t *testing.T) {
	router := newTimetableRouter(t, []models.TimetableSlot{storedSlot()})

	req, _ := http.NewRequest(http.MethodGet, "/timetable/Class%2010A/grid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	grid, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	require.Contains(t, grid, "rows")
	require.Contains(t, grid, "days")
}
