package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/schoolworks/campus-api/internal/middleware"
	"github.com/schoolworks/campus-api/internal/models"
	"github.com/schoolworks/campus-api/internal/service"
)

// Handlers groups every route handler plus the services route guards need.
type Handlers struct {
	Auth       *AuthHandler
	Timetable  *TimetableHandler
	Teachers   *TeacherHandler
	Attendance *AttendanceHandler
	Summaries  *SummaryHandler
	Views      *ViewHandler

	AuthService *service.AuthService
	Metrics     *service.MetricsService
}

// RegisterRoutes mounts the API under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(h.AuthService))

	authed.GET("/auth/me", h.Auth.Me)
	authed.POST("/views/resolve", h.Views.Resolve)

	// Grid reads are open to every authenticated role.
	authed.GET("/periods", h.Timetable.Periods)
	authed.GET("/timetable/:classGroup", h.Timetable.Slots)
	authed.GET("/timetable/:classGroup/grid", h.Timetable.Grid)
	authed.GET("/subjects/:classGroup", h.Timetable.Subjects)

	admin := authed.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/timetable", h.Timetable.Assign)
	admin.DELETE("/timetable/:classGroup/:day/:period", h.Timetable.Clear)
	admin.GET("/teachers", h.Teachers.List)
	admin.GET("/attendance/student-history-admin/:studentId", h.Summaries.StudentHistoryAdmin)
	admin.GET("/attendance/admin-summary", h.Summaries.AdminSummary)
	admin.GET("/attendance/admin-summary/export", h.Summaries.ExportAdminSummary)

	teacher := authed.Group("")
	teacher.Use(middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
	teacher.GET("/teacher-assignments/:teacherId", h.Timetable.Assignments)

	marking := authed.Group("")
	marking.Use(middleware.RequireRoles(models.RoleTeacher))
	marking.GET("/attendance/sheet", h.Attendance.Sheet)
	marking.GET("/attendance/resolve", h.Attendance.Resolve)
	marking.POST("/attendance", h.Attendance.Submit)
	marking.GET("/attendance/teacher-summary", h.Summaries.TeacherSummary)

	student := authed.Group("")
	student.Use(middleware.RBAC(string(models.RoleAdmin), "SELF"))
	student.GET("/attendance/my-history/:studentId", h.Summaries.MyHistory)
}
