package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/service"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
	"github.com/schoolworks/campus-api/pkg/response"
)

// TimetableHandler manages weekly grid endpoints.
type TimetableHandler struct {
	service *service.TimetableService
}

// NewTimetableHandler constructs handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Slots godoc
// @Summary Stored timetable slots for a class
// @Tags Timetable
// @Produce json
// @Param classGroup path string true "Class group"
// @Success 200 {object} response.Envelope
// @Router /timetable/{classGroup} [get]
func (h *TimetableHandler) Slots(c *gin.Context) {
	slots, err := h.service.ListSlots(c.Request.Context(), c.Param("classGroup"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Grid godoc
// @Summary Weekly timetable grid for a class
// @Tags Timetable
// @Produce json
// @Param classGroup path string true "Class group"
// @Success 200 {object} response.Envelope
// @Router /timetable/{classGroup}/grid [get]
func (h *TimetableHandler) Grid(c *gin.Context) {
	grid, err := h.service.BuildGrid(c.Request.Context(), c.Param("classGroup"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// Assign godoc
// @Summary Upsert a timetable slot
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body service.AssignSlotRequest true "Slot payload"
// @Success 200 {object} response.Envelope
// @Router /timetable [post]
func (h *TimetableHandler) Assign(c *gin.Context) {
	var req service.AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.AssignSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Clear godoc
// @Summary Clear a timetable slot
// @Tags Timetable
// @Produce json
// @Param classGroup path string true "Class group"
// @Param day path string true "Weekday"
// @Param period path int true "Period number"
// @Success 200 {object} response.Envelope
// @Router /timetable/{classGroup}/{day}/{period} [delete]
func (h *TimetableHandler) Clear(c *gin.Context) {
	period, err := strconv.Atoi(c.Param("period"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "period must be a number"))
		return
	}
	day := models.Weekday(strings.ToUpper(c.Param("day")))
	slot, err := h.service.ClearSlot(c.Request.Context(), c.Param("classGroup"), day, period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// Subjects godoc
// @Summary Subjects taught in a class
// @Tags Timetable
// @Produce json
// @Param classGroup path string true "Class group"
// @Success 200 {object} response.Envelope
// @Router /subjects/{classGroup} [get]
func (h *TimetableHandler) Subjects(c *gin.Context) {
	subjects, err := h.service.ListSubjects(c.Request.Context(), c.Param("classGroup"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// Assignments godoc
// @Summary A teacher's assigned slots
// @Tags Timetable
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teacher-assignments/{teacherId} [get]
func (h *TimetableHandler) Assignments(c *gin.Context) {
	assignments, err := h.service.ListAssignments(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Periods godoc
// @Summary The school's bell schedule
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /periods [get]
func (h *TimetableHandler) Periods(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Calendar().Periods(), nil)
}
