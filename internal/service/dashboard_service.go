package service

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
)

type dashboardStore interface {
	Students() []models.Student
	Teachers() []models.Teacher
	Events() []models.SchoolEvent
	NotificationLogs() []models.NotificationLog
	Syncing() bool
}

// DashboardSummary is the landing-page projection, recomputed from the
// store on every request.
type DashboardSummary struct {
	StudentCount    int                      `json:"studentCount"`
	TeacherCount    int                      `json:"teacherCount"`
	EventCount      int                      `json:"eventCount"`
	AttendanceToday int                      `json:"attendanceToday"`
	PresentToday    int                      `json:"presentToday"`
	AverageScore    float64                  `json:"averageScore"`
	UpcomingEvents  []models.SchoolEvent     `json:"upcomingEvents"`
	RecentLogs      []models.NotificationLog `json:"recentLogs"`
	Syncing         bool                     `json:"syncing"`
}

const (
	upcomingEventLimit = 3
	recentLogLimit     = 5
)

// DashboardService computes headline numbers for the admin landing page.
type DashboardService struct {
	store  dashboardStore
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(store dashboardStore, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: store, logger: logger, now: time.Now}
}

// Summary assembles the dashboard projection.
func (s *DashboardService) Summary() DashboardSummary {
	students := s.store.Students()
	today := s.now().UTC().Format(models.AttendanceDateLayout)

	summary := DashboardSummary{
		StudentCount: len(students),
		TeacherCount: len(s.store.Teachers()),
		Syncing:      s.store.Syncing(),
	}

	var total float64
	var graded int
	for _, student := range students {
		if status, ok := student.Attendance[today]; ok {
			summary.AttendanceToday++
			if status == models.AttendancePresent {
				summary.PresentToday++
			}
		}
		for _, g := range student.Grades {
			total += g.Score
			graded++
		}
	}
	if graded > 0 {
		summary.AverageScore = total / float64(graded)
	}

	events := s.store.Events()
	summary.EventCount = len(events)
	summary.UpcomingEvents = upcomingEvents(events, today, upcomingEventLimit)

	logs := s.store.NotificationLogs()
	if len(logs) > recentLogLimit {
		logs = logs[:recentLogLimit]
	}
	summary.RecentLogs = logs

	return summary
}

// upcomingEvents keeps events on or after today, soonest first.
func upcomingEvents(events []models.SchoolEvent, today string, limit int) []models.SchoolEvent {
	upcoming := make([]models.SchoolEvent, 0, len(events))
	for _, event := range events {
		if event.Date >= today {
			upcoming = append(upcoming, event)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		if upcoming[i].Date != upcoming[j].Date {
			return upcoming[i].Date < upcoming[j].Date
		}
		return upcoming[i].Time < upcoming[j].Time
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}
