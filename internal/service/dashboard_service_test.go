package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
)

func TestDashboardServiceSummary(t *testing.T) {
	store := rosterFixture()
	store.students[0].Attendance["2026-03-06"] = models.AttendancePresent
	store.students[1].Attendance["2026-03-06"] = models.AttendanceAbsent
	store.logs = []models.NotificationLog{
		{ID: "l1"}, {ID: "l2"}, {ID: "l3"}, {ID: "l4"}, {ID: "l5"}, {ID: "l6"},
	}
	store.syncing = true

	svc := NewDashboardService(store, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC) }

	summary := svc.Summary()
	assert.Equal(t, 2, summary.StudentCount)
	assert.Equal(t, 1, summary.TeacherCount)
	assert.Equal(t, 2, summary.EventCount)
	assert.Equal(t, 2, summary.AttendanceToday)
	assert.Equal(t, 1, summary.PresentToday)
	// (88+92+91+85)/4 recorded scores.
	assert.InDelta(t, 89.0, summary.AverageScore, 0.001)
	assert.True(t, summary.Syncing)

	// Soonest first, capped at the recent-log limit.
	require.Len(t, summary.UpcomingEvents, 2)
	assert.Equal(t, "evt-2", summary.UpcomingEvents[0].ID)
	assert.Len(t, summary.RecentLogs, 5)
}

func TestDashboardServiceSummary_PastEventsExcluded(t *testing.T) {
	store := rosterFixture()
	svc := NewDashboardService(store, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }

	summary := svc.Summary()
	assert.Equal(t, 2, summary.EventCount)
	require.Len(t, summary.UpcomingEvents, 1)
	assert.Equal(t, "evt-1", summary.UpcomingEvents[0].ID)
}

func TestDashboardServiceSummary_Empty(t *testing.T) {
	svc := NewDashboardService(&stubStore{}, zap.NewNop())

	summary := svc.Summary()
	assert.Zero(t, summary.StudentCount)
	assert.Zero(t, summary.AttendanceToday)
	assert.Zero(t, summary.AverageScore)
	assert.Empty(t, summary.UpcomingEvents)
	assert.False(t, summary.Syncing)
}
