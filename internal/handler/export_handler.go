package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	"github.com/cedarcrest/ccis-admin-api/internal/service"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet and CSV downloads.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Students godoc
// @Summary Download the student roster as a workbook
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param search query string false "Search by name, id or guardian"
// @Param gradeLevel query string false "Filter by grade level"
// @Param section query string false "Filter by section"
// @Success 200 {file} binary
// @Router /exports/students.xlsx [get]
func (h *ExportHandler) Students(c *gin.Context) {
	filter := models.StudentFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		GradeLevel: c.Query("gradeLevel"),
		Section:    c.Query("section"),
	}
	out, err := h.exports.StudentsXLSX(filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, out)
}

// Teachers godoc
// @Summary Download the faculty roster as a workbook
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /exports/teachers.xlsx [get]
func (h *ExportHandler) Teachers(c *gin.Context) {
	out, err := h.exports.TeachersXLSX()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="teachers.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, out)
}

// Attendance godoc
// @Summary Download one day's student attendance as a workbook
// @Tags Exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {file} binary
// @Router /exports/attendance.xlsx [get]
func (h *ExportHandler) Attendance(c *gin.Context) {
	out, err := h.exports.AttendanceXLSX(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="attendance.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, out)
}

// AttendancePDF godoc
// @Summary Download one day's student attendance as a printable PDF
// @Tags Exports
// @Produce application/pdf
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {file} binary
// @Router /exports/attendance.pdf [get]
func (h *ExportHandler) AttendancePDF(c *gin.Context) {
	out, err := h.exports.AttendancePDF(c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="attendance.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

// Grades godoc
// @Summary Download one term's scores as CSV
// @Tags Exports
// @Produce text/csv
// @Param term query int true "Term (1-3)"
// @Success 200 {file} binary
// @Router /exports/grades.csv [get]
func (h *ExportHandler) Grades(c *gin.Context) {
	term, err := strconv.Atoi(c.DefaultQuery("term", "1"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term must be a number"))
		return
	}
	out, renderErr := h.exports.GradesCSV(term)
	if renderErr != nil {
		response.Error(c, renderErr)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="grades.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}

// Logs godoc
// @Summary Download the notification audit log as CSV
// @Tags Exports
// @Produce text/csv
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by delivery status"
// @Param search query string false "Search recipient, student or subject"
// @Success 200 {file} binary
// @Router /exports/logs.csv [get]
func (h *ExportHandler) Logs(c *gin.Context) {
	filter := models.LogFilter{
		Category: models.NotificationCategory(c.Query("category")),
		Status:   models.DeliveryStatus(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	out, err := h.exports.LogsCSV(filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="notification-logs.csv"`)
	c.Data(http.StatusOK, "text/csv", out)
}
