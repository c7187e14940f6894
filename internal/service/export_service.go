package service

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/export"
)

type exportStore interface {
	Students() []models.Student
	Teachers() []models.Teacher
	NotificationLogs() []models.NotificationLog
}

// ExportService renders roster, attendance, grade and audit data into
// downloadable spreadsheet and CSV files.
type ExportService struct {
	store  exportStore
	csv    *export.CSVExporter
	xlsx   *export.XLSXExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs the export service.
func NewExportService(store exportStore, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		store:  store,
		csv:    export.NewCSVExporter(),
		xlsx:   export.NewXLSXExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
		now:    time.Now,
	}
}

// StudentsXLSX renders the filtered student roster as a workbook.
func (s *ExportService) StudentsXLSX(filter models.StudentFilter) ([]byte, error) {
	headers := []string{"ID", "Name", "Grade Level", "Section", "Guardian", "Guardian Email", "Guardian Phone", "Attendance Rate"}
	data := export.Dataset{Headers: headers}
	for _, student := range s.store.Students() {
		if !filter.Matches(student) {
			continue
		}
		data.Rows = append(data.Rows, map[string]string{
			"ID":              student.ID,
			"Name":            student.Name,
			"Grade Level":     student.GradeLevel,
			"Section":         student.Section,
			"Guardian":        student.GuardianName,
			"Guardian Email":  student.GuardianEmail,
			"Guardian Phone":  student.GuardianPhone,
			"Attendance Rate": fmt.Sprintf("%d%%", models.AttendanceRate(student.Attendance)),
		})
	}
	out, err := s.xlsx.Render(data, "Students")
	if err != nil {
		return nil, s.renderErr("students", err)
	}
	return out, nil
}

// TeachersXLSX renders the faculty roster as a workbook.
func (s *ExportService) TeachersXLSX() ([]byte, error) {
	headers := []string{"ID", "Name", "Department", "Email"}
	data := export.Dataset{Headers: headers}
	for _, teacher := range s.store.Teachers() {
		data.Rows = append(data.Rows, map[string]string{
			"ID":         teacher.ID,
			"Name":       teacher.Name,
			"Department": teacher.Department,
			"Email":      teacher.Email,
		})
	}
	out, err := s.xlsx.Render(data, "Teachers")
	if err != nil {
		return nil, s.renderErr("teachers", err)
	}
	return out, nil
}

// AttendanceXLSX renders one day's student attendance. Students with no
// record for the date appear as UNMARKED.
func (s *ExportService) AttendanceXLSX(date string) ([]byte, error) {
	if date == "" {
		date = s.now().UTC().Format(models.AttendanceDateLayout)
	} else if _, err := time.Parse(models.AttendanceDateLayout, date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}

	headers := []string{"ID", "Name", "Grade Level", "Section", "Date", "Status"}
	data := export.Dataset{Headers: headers}
	for _, student := range s.store.Students() {
		status := "UNMARKED"
		if recorded, ok := student.Attendance[date]; ok {
			status = string(recorded)
		}
		data.Rows = append(data.Rows, map[string]string{
			"ID":          student.ID,
			"Name":        student.Name,
			"Grade Level": student.GradeLevel,
			"Section":     student.Section,
			"Date":        date,
			"Status":      status,
		})
	}
	out, err := s.xlsx.Render(data, "Attendance")
	if err != nil {
		return nil, s.renderErr("attendance", err)
	}
	return out, nil
}

// AttendancePDF renders one day's student attendance as a printable sheet
// for classrooms without a terminal.
func (s *ExportService) AttendancePDF(date string) ([]byte, error) {
	if date == "" {
		date = s.now().UTC().Format(models.AttendanceDateLayout)
	} else if _, err := time.Parse(models.AttendanceDateLayout, date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be formatted YYYY-MM-DD")
	}

	headers := []string{"ID", "Name", "Grade Level", "Section", "Status"}
	data := export.Dataset{Headers: headers}
	for _, student := range s.store.Students() {
		status := "UNMARKED"
		if recorded, ok := student.Attendance[date]; ok {
			status = string(recorded)
		}
		data.Rows = append(data.Rows, map[string]string{
			"ID":          student.ID,
			"Name":        student.Name,
			"Grade Level": student.GradeLevel,
			"Section":     student.Section,
			"Status":      status,
		})
	}
	out, err := s.pdf.Render(data, fmt.Sprintf("Attendance %s", date))
	if err != nil {
		return nil, s.renderErr("attendance-pdf", err)
	}
	return out, nil
}

// GradesCSV renders every recorded score for one term, one row per
// (student, subject) pair.
func (s *ExportService) GradesCSV(term int) ([]byte, error) {
	if term < 1 || term > 3 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term must be between 1 and 3")
	}
	headers := []string{"Student ID", "Student Name", "Grade Level", "Subject", "Score", "Max Score"}
	data := export.Dataset{Headers: headers}
	for _, student := range s.store.Students() {
		for _, g := range student.Grades {
			if g.Term != term {
				continue
			}
			data.Rows = append(data.Rows, map[string]string{
				"Student ID":   student.ID,
				"Student Name": student.Name,
				"Grade Level":  student.GradeLevel,
				"Subject":      g.Subject,
				"Score":        strconv.FormatFloat(g.Score, 'f', -1, 64),
				"Max Score":    strconv.FormatFloat(g.MaxScore, 'f', -1, 64),
			})
		}
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, s.renderErr("grades", err)
	}
	return out, nil
}

// LogsCSV renders the filtered notification audit trail.
func (s *ExportService) LogsCSV(filter models.LogFilter) ([]byte, error) {
	headers := []string{"Timestamp", "Recipient", "Student", "Subject", "Category", "Status"}
	data := export.Dataset{Headers: headers}
	for _, entry := range s.store.NotificationLogs() {
		if !filter.Matches(entry) {
			continue
		}
		data.Rows = append(data.Rows, map[string]string{
			"Timestamp": entry.Timestamp,
			"Recipient": entry.RecipientEmail,
			"Student":   entry.StudentName,
			"Subject":   entry.Subject,
			"Category":  string(entry.Category),
			"Status":    string(entry.Status),
		})
	}
	out, err := s.csv.Render(data)
	if err != nil {
		return nil, s.renderErr("logs", err)
	}
	return out, nil
}

func (s *ExportService) renderErr(kind string, err error) error {
	s.logger.Error("export render failed", zap.String("kind", kind), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
}
