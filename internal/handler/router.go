package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/middleware"
)

// Handlers bundles every route handler for registration.
type Handlers struct {
	Students      *StudentHandler
	Teachers      *TeacherHandler
	Grades        *GradeHandler
	Events        *EventHandler
	Notifications *NotificationHandler
	Reports       *ReportHandler
	Settings      *SettingsHandler
	Dashboard     *DashboardHandler
	Exports       *ExportHandler
	Metrics       *MetricsHandler
}

// RegisterRoutes mounts the API under the given prefix. Everything except
// the guardian portal surface sits behind the admin-only gate.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)
	api.Use(middleware.PortalMode())

	// Guardian portal: read-only, open to guardian-mode callers.
	api.GET("/guardian/students/:id", h.Students.Guardian)

	admin := api.Group("", middleware.AdminOnly())

	students := admin.Group("/students")
	{
		students.GET("", h.Students.List)
		students.POST("", h.Students.Create)
		students.POST("/bulk-delete", h.Students.BulkDelete)
		students.PUT("/attendance", h.Students.BulkAttendance)
		students.GET("/:id", h.Students.Get)
		students.PUT("/:id", h.Students.Update)
		students.DELETE("/:id", h.Students.Delete)
		students.PUT("/:id/attendance", h.Students.MarkAttendance)
		students.PUT("/:id/grades", h.Grades.Upsert)
		students.GET("/:id/report", h.Reports.Card)
		students.GET("/:id/report.pdf", h.Reports.PDF)
		students.POST("/:id/report/draft-comment", h.Reports.DraftComment)
	}

	teachers := admin.Group("/teachers")
	{
		teachers.GET("", h.Teachers.List)
		teachers.POST("", h.Teachers.Create)
		teachers.POST("/bulk-delete", h.Teachers.BulkDelete)
		teachers.GET("/:id", h.Teachers.Get)
		teachers.PUT("/:id", h.Teachers.Update)
		teachers.DELETE("/:id", h.Teachers.Delete)
		teachers.PUT("/:id/attendance", h.Teachers.MarkAttendance)
	}

	grades := admin.Group("/grades")
	{
		grades.GET("/subjects", h.Grades.Subjects)
		grades.GET("/table", h.Grades.Table)
	}

	events := admin.Group("/events")
	{
		events.GET("", h.Events.List)
		events.POST("", h.Events.Create)
		events.GET("/:id", h.Events.Get)
		events.PUT("/:id", h.Events.Update)
		events.DELETE("/:id", h.Events.Delete)
		events.POST("/:id/draft-email", h.Events.DraftEmail)
	}

	notifications := admin.Group("/notifications")
	{
		notifications.GET("/logs", h.Notifications.Logs)
		notifications.GET("/templates", h.Notifications.Templates)
		notifications.PUT("/templates", h.Notifications.ReplaceTemplates)
		notifications.POST("/send", h.Notifications.Send)
		notifications.POST("/bulk-send", h.Notifications.BulkSend)
	}

	settings := admin.Group("/settings")
	{
		settings.GET("/report", h.Settings.Get)
		settings.PUT("/report", h.Settings.Update)
		settings.GET("/logo", h.Settings.Logo)
		settings.PUT("/logo", h.Settings.SetLogo)
	}

	exports := admin.Group("/exports")
	{
		exports.GET("/students.xlsx", h.Exports.Students)
		exports.GET("/teachers.xlsx", h.Exports.Teachers)
		exports.GET("/attendance.xlsx", h.Exports.Attendance)
		exports.GET("/attendance.pdf", h.Exports.AttendancePDF)
		exports.GET("/grades.csv", h.Exports.Grades)
		exports.GET("/logs.csv", h.Exports.Logs)
	}

	admin.GET("/dashboard", h.Dashboard.Summary)
	admin.GET("/status", h.Metrics.Status)
}
