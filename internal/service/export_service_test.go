package service

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

func TestExportServiceStudentsXLSX(t *testing.T) {
	svc := NewExportService(rosterFixture(), zap.NewNop())

	out, err := svc.StudentsXLSX(models.StudentFilter{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "S001", rows[1][0])
	assert.Equal(t, "50%", rows[1][7])
}

func TestExportServiceStudentsXLSX_AppliesFilter(t *testing.T) {
	svc := NewExportService(rosterFixture(), zap.NewNop())

	out, err := svc.StudentsXLSX(models.StudentFilter{GradeLevel: "Grade 11"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "S002", rows[1][0])
}

func TestExportServiceAttendanceXLSX(t *testing.T) {
	svc := NewExportService(rosterFixture(), zap.NewNop())

	out, err := svc.AttendanceXLSX("2026-03-04")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	byID := map[string]string{}
	for _, row := range rows[1:] {
		byID[row[0]] = row[5]
	}
	assert.Equal(t, "ABSENT", byID["S001"])
	assert.Equal(t, "UNMARKED", byID["S002"])

	_, err = svc.AttendanceXLSX("04-03-2026")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceAttendanceXLSX_DefaultsToToday(t *testing.T) {
	svc := NewExportService(rosterFixture(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }

	out, err := svc.AttendanceXLSX("")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2026-03-02", rows[1][4])
}

func TestExportServiceAttendancePDF(t *testing.T) {
	svc := NewExportService(rosterFixture(), zap.NewNop())

	out, err := svc.AttendancePDF("2026-03-04")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))

	_, err = svc.AttendancePDF("bad-date")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceGradesCSV(t *testing.T) {
	svc := NewExportService(rosterFixture(), zap.NewNop())

	out, err := svc.GradesCSV(1)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	// Header plus three term-1 scores; the term-2 grade is excluded.
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Student ID", "Student Name", "Grade Level", "Subject", "Score", "Max Score"}, records[0])

	_, err = svc.GradesCSV(7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceLogsCSV(t *testing.T) {
	store := rosterFixture()
	store.logs = []models.NotificationLog{
		{Timestamp: "2026-03-06T10:00:00Z", RecipientEmail: "a@example.com", StudentName: "Alex Johnson", Subject: "S1", Category: models.CategoryAcademic, Status: models.DeliverySent},
		{Timestamp: "2026-03-05T10:00:00Z", RecipientEmail: "b@example.com", StudentName: "Sarah Williams", Subject: "S2", Category: models.CategoryFee, Status: models.DeliveryFailed},
	}
	svc := NewExportService(store, zap.NewNop())

	out, err := svc.LogsCSV(models.LogFilter{Status: models.DeliveryFailed})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b@example.com", records[1][1])
	assert.Equal(t, "FAILED", records[1][5])
}

func TestExportServiceTeachersXLSX(t *testing.T) {
	svc := NewExportService(rosterFixture(), zap.NewNop())

	out, err := svc.TeachersXLSX()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Teachers")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "T001", rows[1][0])
}
