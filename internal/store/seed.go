package store

import "github.com/cedarcrest/ccis-admin-api/internal/models"

// Subjects is the taught subject catalogue used by grading views.
var Subjects = []string{
	"Mathematics",
	"Science",
	"English",
	"History",
	"Geography",
	"Art",
	"COMPUTING",
	"LANGUAGE & LITERACY",
	"CREATIVE ARTS",
	"GHANAIAN LANG.",
	"WRITING",
	"RME",
	"CAREER TECHNOLOGY",
}

// Seed values used when a durable key is absent or unparseable.

func seedStudents() []models.Student {
	return []models.Student{
		{
			ID:            "S001",
			Name:          "Alex Johnson",
			GradeLevel:    "Grade 10",
			Section:       "A",
			Avatar:        "https://picsum.photos/seed/alex/100/100",
			GuardianName:  "Mark Johnson",
			GuardianEmail: "johnson.parent@example.com",
			GuardianPhone: "+1-555-0101",
			Grades: []models.Grade{
				{Subject: "Mathematics", Score: 88, MaxScore: 100, Term: 1},
				{Subject: "Science", Score: 92, MaxScore: 100, Term: 1},
				{Subject: "English", Score: 85, MaxScore: 100, Term: 1},
			},
			Attendance: map[string]models.AttendanceStatus{
				"2023-10-01": models.AttendancePresent,
				"2023-10-02": models.AttendancePresent,
			},
		},
		{
			ID:            "S002",
			Name:          "Sarah Williams",
			GradeLevel:    "Grade 10",
			Section:       "B",
			Avatar:        "https://picsum.photos/seed/sarah/100/100",
			GuardianName:  "Linda Williams",
			GuardianEmail: "williams.parent@example.com",
			GuardianPhone: "+1-555-0102",
			Grades: []models.Grade{
				{Subject: "Mathematics", Score: 75, MaxScore: 100, Term: 1},
				{Subject: "English", Score: 92, MaxScore: 100, Term: 1},
			},
			Attendance: map[string]models.AttendanceStatus{
				"2023-10-01": models.AttendancePresent,
				"2023-10-02": models.AttendanceAbsent,
			},
		},
	}
}

func seedTeachers() []models.Teacher {
	return []models.Teacher{
		{
			ID:         "T001",
			Name:       "Dr. Robert Smith",
			Department: "Mathematics",
			Email:      "robert.smith@edu.com",
			Avatar:     "https://picsum.photos/seed/robert/100/100",
			Attendance: map[string]models.AttendanceStatus{
				"2026-02-01": models.AttendancePresent,
			},
		},
	}
}

func seedEvents() []models.SchoolEvent {
	return []models.SchoolEvent{
		{
			ID:          "1",
			Date:        "2024-10-24",
			Time:        "09:00",
			Title:       "Mid-Term Examinations",
			Location:    "CCIS Hall",
			Description: "Mandatory exams for all grades.",
			Color:       "text-indigo-600",
			Bg:          "bg-indigo-50",
		},
		{
			ID:          "2",
			Date:        "2024-11-02",
			Time:        "14:00",
			Title:       "Parent-Teacher Meeting",
			Location:    "Main Auditorium",
			Description: "Review student performance with faculty.",
			Color:       "text-purple-600",
			Bg:          "bg-purple-50",
		},
		{
			ID:          "3",
			Date:        "2024-11-15",
			Time:        "10:00",
			Title:       "Science Exhibition",
			Location:    "Lab Block B",
			Description: "Showcasing student scientific projects.",
			Color:       "text-emerald-600",
			Bg:          "bg-emerald-50",
		},
	}
}

func seedTemplates() []models.CommunicationTemplate {
	return []models.CommunicationTemplate{
		{
			ID:       "temp-1",
			Name:     "General Announcement",
			Subject:  "Important School Update - CCIS",
			Category: models.CategoryGeneral,
			Content:  "Dear Parents/Guardians, we have a scheduled update regarding...",
		},
		{
			ID:       "temp-2",
			Name:     "Fee Notice",
			Subject:  "Outstanding Balance Notification",
			Category: models.CategoryFee,
			Content:  "Dear [GuardianName], this is a reminder regarding the outstanding fees for [StudentName]...",
		},
		{
			ID:       "temp-3",
			Name:     "Emergency Alert",
			Subject:  "URGENT: School Closure Notice",
			Category: models.CategoryEmergency,
			Content:  "Please be advised that Cedar Crest International School will be closed tomorrow due to...",
		},
	}
}

func seedSettings() models.ReportSettings {
	return models.ReportSettings{
		HeadOfSchool: "S. Thompson",
		Signature:    "",
		AuthPrefix:   "ES-2024-TR",
	}
}
