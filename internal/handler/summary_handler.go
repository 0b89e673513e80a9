package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/service"
	appErrors "github.com/schoolworks/campus-api/pkg/errors"
	"github.com/schoolworks/campus-api/pkg/export"
	"github.com/schoolworks/campus-api/pkg/response"
)

type summaryProvider interface {
	History(ctx context.Context, studentID string, mode models.ViewMode) (*service.StudentHistory, error)
	ClassSummary(ctx context.Context, classGroup, subjectName, teacherID string, mode models.ViewMode) (*service.ScopeSummary, error)
	ExportClassSummary(ctx context.Context, classGroup, subjectName string, mode models.ViewMode, exporter export.Exporter) ([]byte, string, error)
}

// SummaryHandler serves aggregated attendance views for all three roles.
type SummaryHandler struct {
	service       summaryProvider
	csvExporter   *export.CSVExporter
	pdfExporter   *export.PDFExporter
	exportEnabled bool
}

// NewSummaryHandler constructs handler.
func NewSummaryHandler(svc summaryProvider, exportEnabled bool) *SummaryHandler {
	return &SummaryHandler{
		service:       svc,
		csvExporter:   export.NewCSVExporter(),
		pdfExporter:   export.NewPDFExporter(),
		exportEnabled: exportEnabled,
	}
}

func viewModeFromQuery(c *gin.Context) models.ViewMode {
	return models.ViewMode(c.DefaultQuery("viewMode", string(models.ViewModeOverall)))
}

// MyHistory godoc
// @Summary A student's own attendance history
// @Tags Attendance Summaries
// @Produce json
// @Param studentId path string true "Student ID"
// @Param viewMode query string false "daily|monthly|overall"
// @Success 200 {object} response.Envelope
// @Router /attendance/my-history/{studentId} [get]
func (h *SummaryHandler) MyHistory(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), c.Param("studentId"), viewModeFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// StudentHistoryAdmin godoc
// @Summary Admin view of a student's attendance history
// @Tags Attendance Summaries
// @Produce json
// @Param studentId path string true "Student ID"
// @Param viewMode query string false "daily|monthly|overall"
// @Success 200 {object} response.Envelope
// @Router /attendance/student-history-admin/{studentId} [get]
func (h *SummaryHandler) StudentHistoryAdmin(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), c.Param("studentId"), viewModeFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, history, nil)
}

// TeacherSummary godoc
// @Summary Per-class/subject summary scoped to the marking teacher
// @Tags Attendance Summaries
// @Produce json
// @Param classGroup query string true "Class group"
// @Param subjectName query string false "Subject"
// @Param viewMode query string false "daily|monthly|overall"
// @Success 200 {object} response.Envelope
// @Router /attendance/teacher-summary [get]
func (h *SummaryHandler) TeacherSummary(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil || claims.PersonID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	summary, err := h.service.ClassSummary(c.Request.Context(), c.Query("classGroup"), c.Query("subjectName"), claims.PersonID, viewModeFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// AdminSummary godoc
// @Summary Per-class/subject summary across all teachers
// @Tags Attendance Summaries
// @Produce json
// @Param classGroup query string true "Class group"
// @Param subjectName query string false "Subject"
// @Param viewMode query string false "daily|monthly|overall"
// @Success 200 {object} response.Envelope
// @Router /attendance/admin-summary [get]
func (h *SummaryHandler) AdminSummary(c *gin.Context) {
	summary, err := h.service.ClassSummary(c.Request.Context(), c.Query("classGroup"), c.Query("subjectName"), "", viewModeFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ExportAdminSummary godoc
// @Summary Download a per-student class summary as CSV or PDF
// @Tags Attendance Summaries
// @Produce octet-stream
// @Param classGroup query string true "Class group"
// @Param subjectName query string false "Subject"
// @Param viewMode query string false "daily|monthly|overall"
// @Param format query string false "csv|pdf"
// @Success 200 {file} byte
// @Router /attendance/admin-summary/export [get]
func (h *SummaryHandler) ExportAdminSummary(c *gin.Context) {
	if !h.exportEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export is disabled"))
		return
	}
	var exporter export.Exporter
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		exporter = h.csvExporter
	case "pdf":
		exporter = h.pdfExporter
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
		return
	}
	payload, filename, err := h.service.ExportClassSummary(c.Request.Context(), c.Query("classGroup"), c.Query("subjectName"), viewModeFromQuery(c), exporter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, exporter.ContentType(), payload)
}
