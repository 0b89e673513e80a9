package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/service"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
	"github.com/schoolworks/campus-api/pkg/response"
)

type attendanceProvider interface {
	FetchSheet(ctx context.Context, classGroup string, date time.Time, periodNumber int) ([]models.SheetEntry, error)
	Submit(ctx context.Context, req service.SubmitAttendanceRequest) (*service.SubmitResult, error)
}

type gridProvider interface {
	BuildGrid(ctx context.Context, classGroup string) (*models.TimetableGrid, error)
}

// AttendanceHandler manages the marking sheet and batch submission endpoints.
type AttendanceHandler struct {
	attendance attendanceProvider
	timetable  gridProvider
	clock      service.Clock
	metrics    *service.MetricsService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance attendanceProvider, timetable gridProvider, clock service.Clock, metrics *service.MetricsService) *AttendanceHandler {
	if clock == nil {
		clock = service.SystemClock()
	}
	return &AttendanceHandler{attendance: attendance, timetable: timetable, clock: clock, metrics: metrics}
}

// Sheet godoc
// @Summary Marking sheet for a class, date and period
// @Tags Attendance
// @Produce json
// @Param classGroup query string true "Class group"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param periodNumber query int true "Period number"
// @Success 200 {object} response.Envelope
// @Router /attendance/sheet [get]
func (h *AttendanceHandler) Sheet(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
		return
	}
	period, err := strconv.Atoi(c.Query("periodNumber"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "periodNumber must be a number"))
		return
	}
	entries, err := h.attendance.FetchSheet(c.Request.Context(), c.Query("classGroup"), date, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Resolve godoc
// @Summary Resolve whether the caller owns a grid cell right now
// @Tags Attendance
// @Produce json
// @Param classGroup query string true "Class group"
// @Param day query string true "Tapped weekday"
// @Param periodNumber query int true "Period number"
// @Success 200 {object} response.Envelope
// @Router /attendance/resolve [get]
func (h *AttendanceHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil || claims.PersonID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	period, err := strconv.Atoi(c.Query("periodNumber"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "periodNumber must be a number"))
		return
	}
	grid, err := h.timetable.BuildGrid(c.Request.Context(), c.Query("classGroup"))
	if err != nil {
		response.Error(c, err)
		return
	}
	day := models.Weekday(strings.ToUpper(c.Query("day")))
	resolved, err := service.ResolveMyPeriod(claims.PersonID, day, period, h.clock.Now(), grid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resolved, nil)
}

// Submit godoc
// @Summary Submit an attendance batch
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.SubmitAttendanceRequest true "Batch payload"
// @Success 200 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil || claims.PersonID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	// The wire shape carries teacherId, but the authenticated identity wins.
	req.TeacherID = claims.PersonID

	result, err := h.attendance.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveBatchSize(result.Written)
	}
	response.JSON(c, http.StatusOK, result, nil)
}
