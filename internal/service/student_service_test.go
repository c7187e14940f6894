package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

func TestStudentServiceList_FiltersAndPaginates(t *testing.T) {
	store := rosterFixture()
	svc := NewStudentService(store, nil, zap.NewNop())

	students, pagination, err := svc.List(models.StudentFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.Equal(t, 2, pagination.TotalCount)

	students, pagination, err = svc.List(models.StudentFilter{GradeLevel: "Grade 10"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "S001", students[0].ID)
	assert.Equal(t, 1, pagination.TotalCount)

	students, _, err = svc.List(models.StudentFilter{Search: "sarah"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "S002", students[0].ID)

	students, pagination, err = svc.List(models.StudentFilter{}, 2, 1)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, 2, pagination.TotalCount)

	students, _, err = svc.List(models.StudentFilter{}, 9, 20)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestStudentServiceRegister_GeneratesID(t *testing.T) {
	store := &stubStore{}
	svc := NewStudentService(store, nil, zap.NewNop())

	student, err := svc.Register(RegisterStudentRequest{
		Name:          "New Student",
		GradeLevel:    "Grade 9",
		GuardianName:  "A Guardian",
		GuardianEmail: "guardian@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID)
	assert.NotNil(t, student.Attendance)
	assert.NotNil(t, student.Grades)
	require.Len(t, store.students, 1)
}

func TestStudentServiceRegister_PrependsToRoster(t *testing.T) {
	store := rosterFixture()
	svc := NewStudentService(store, nil, zap.NewNop())

	_, err := svc.Register(RegisterStudentRequest{
		ID:            "S003",
		Name:          "Third Student",
		GradeLevel:    "Grade 9",
		GuardianName:  "G Three",
		GuardianEmail: "g3@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "S003", store.students[0].ID)
}

func TestStudentServiceRegister_Validation(t *testing.T) {
	svc := NewStudentService(&stubStore{}, nil, zap.NewNop())

	_, err := svc.Register(RegisterStudentRequest{Name: "No Guardian", GradeLevel: "Grade 9"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Register(RegisterStudentRequest{
		Name: "Bad Email", GradeLevel: "Grade 9",
		GuardianName: "G", GuardianEmail: "not-an-email",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceUpdate_KeepsGradesAndAttendance(t *testing.T) {
	store := rosterFixture()
	svc := NewStudentService(store, nil, zap.NewNop())

	updated, err := svc.Update("S001", RegisterStudentRequest{
		Name:          "Alex J. Updated",
		GradeLevel:    "Grade 11",
		Section:       "A",
		GuardianName:  "Maria Johnson",
		GuardianEmail: "maria.j@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex J. Updated", updated.Name)
	assert.Len(t, updated.Grades, 3)
	assert.Len(t, updated.Attendance, 4)
}

func TestStudentServiceUpdate_UnknownStudent(t *testing.T) {
	svc := NewStudentService(&stubStore{}, nil, zap.NewNop())

	_, err := svc.Update("ghost", RegisterStudentRequest{
		Name: "Ghost", GradeLevel: "Grade 9",
		GuardianName: "G", GuardianEmail: "g@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceMarkAttendance(t *testing.T) {
	store := rosterFixture()
	svc := NewStudentService(store, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC) }

	require.NoError(t, svc.MarkAttendance("S002", AttendanceRequest{Status: models.AttendancePresent}))
	student, _ := store.StudentByID("S002")
	assert.Equal(t, models.AttendancePresent, student.Attendance["2026-03-06"])

	require.NoError(t, svc.MarkAttendance("S002", AttendanceRequest{Date: "2026-03-06", Status: models.AttendanceLate}))
	student, _ = store.StudentByID("S002")
	assert.Equal(t, models.AttendanceLate, student.Attendance["2026-03-06"])
	assert.Len(t, student.Attendance, 1)
}

func TestStudentServiceMarkAttendance_Validation(t *testing.T) {
	svc := NewStudentService(rosterFixture(), nil, zap.NewNop())

	err := svc.MarkAttendance("S001", AttendanceRequest{Status: "SLEEPING"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.MarkAttendance("S001", AttendanceRequest{Date: "06/03/2026", Status: models.AttendancePresent})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceBulkMarkAttendance(t *testing.T) {
	store := rosterFixture()
	svc := NewStudentService(store, nil, zap.NewNop())

	err := svc.BulkMarkAttendance(BulkAttendanceRequest{
		IDs:    []string{"S001", "S002", "ghost"},
		Date:   "2026-03-09",
		Status: models.AttendancePresent,
	})
	require.NoError(t, err)
	for _, id := range []string{"S001", "S002"} {
		student, _ := store.StudentByID(id)
		assert.Equal(t, models.AttendancePresent, student.Attendance["2026-03-09"])
	}

	err = svc.BulkMarkAttendance(BulkAttendanceRequest{Status: models.AttendancePresent})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentServiceBulkDelete_IgnoresMissing(t *testing.T) {
	store := rosterFixture()
	svc := NewStudentService(store, nil, zap.NewNop())

	require.NoError(t, svc.BulkDelete(BulkDeleteRequest{IDs: []string{"S001", "ghost"}}))
	assert.Len(t, store.students, 1)
	assert.Equal(t, "S002", store.students[0].ID)
}

func TestStudentServiceGuardian(t *testing.T) {
	svc := NewStudentService(rosterFixture(), nil, zap.NewNop())

	view, err := svc.Guardian("S001")
	require.NoError(t, err)
	// 2 PRESENT out of 4 recorded days; LATE does not count as present.
	assert.Equal(t, 50, view.AttendanceRate)
	assert.Equal(t, 4, view.RecordedDays)

	view, err = svc.Guardian("S002")
	require.NoError(t, err)
	assert.Equal(t, 100, view.AttendanceRate)
	assert.Equal(t, 0, view.RecordedDays)

	_, err = svc.Guardian("ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
