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

func TestTeacherServiceRegister(t *testing.T) {
	store := rosterFixture()
	svc := NewTeacherService(store, nil, zap.NewNop())

	teacher, err := svc.Register(RegisterTeacherRequest{
		Name:       "Emily Parker",
		Department: "Mathematics",
		Email:      "e.parker@school.edu",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, teacher.ID)
	assert.Equal(t, teacher.ID, store.teachers[0].ID)

	_, err = svc.Register(RegisterTeacherRequest{Name: "No Department"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceUpdate(t *testing.T) {
	store := rosterFixture()
	svc := NewTeacherService(store, nil, zap.NewNop())

	updated, err := svc.Update("T001", RegisterTeacherRequest{
		Name:       "David Chen",
		Department: "Physics",
		Email:      "d.chen@school.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Physics", updated.Department)
	assert.Equal(t, "Physics", store.teachers[0].Department)

	_, err = svc.Update("ghost", RegisterTeacherRequest{
		Name: "Ghost", Department: "None", Email: "g@school.edu",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceMarkAttendance_DefaultsToToday(t *testing.T) {
	store := rosterFixture()
	svc := NewTeacherService(store, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 6, 8, 30, 0, 0, time.UTC) }

	require.NoError(t, svc.MarkAttendance("T001", AttendanceRequest{Status: models.AttendanceLate}))
	teacher, _ := store.TeacherByID("T001")
	assert.Equal(t, models.AttendanceLate, teacher.Attendance["2026-03-06"])

	err := svc.MarkAttendance("T001", AttendanceRequest{Status: "AWOL"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceBulkDelete(t *testing.T) {
	store := rosterFixture()
	svc := NewTeacherService(store, nil, zap.NewNop())

	require.NoError(t, svc.BulkDelete(BulkDeleteRequest{IDs: []string{"T001", "ghost"}}))
	assert.Empty(t, store.teachers)

	err := svc.BulkDelete(BulkDeleteRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
