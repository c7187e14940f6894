package service

import (
	"github.com/cedarcrest/ccis-admin-api/internal/models"
)

// stubStore is an in-memory double for the store interfaces the services
// consume. Mutation semantics mirror the real store: prepend on add,
// replace-in-place on update, silent no-op on absent ids.
type stubStore struct {
	students  []models.Student
	teachers  []models.Teacher
	events    []models.SchoolEvent
	logs      []models.NotificationLog
	templates []models.CommunicationTemplate
	settings  models.ReportSettings
	logo      string
	syncing   bool
}

func (s *stubStore) Students() []models.Student {
	out := make([]models.Student, len(s.students))
	for i, st := range s.students {
		out[i] = st.Clone()
	}
	return out
}

func (s *stubStore) StudentByID(id string) (models.Student, bool) {
	for _, st := range s.students {
		if st.ID == id {
			return st.Clone(), true
		}
	}
	return models.Student{}, false
}

func (s *stubStore) AddStudent(student models.Student) {
	s.students = append([]models.Student{student}, s.students...)
}

func (s *stubStore) UpdateStudent(student models.Student) bool {
	for i, st := range s.students {
		if st.ID == student.ID {
			s.students[i] = student
			return true
		}
	}
	return false
}

func (s *stubStore) DeleteStudent(id string) {
	for i, st := range s.students {
		if st.ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return
		}
	}
}

func (s *stubStore) BulkDeleteStudents(ids []string) {
	for _, id := range ids {
		s.DeleteStudent(id)
	}
}

func (s *stubStore) SetStudentAttendance(id, date string, status models.AttendanceStatus) {
	for i := range s.students {
		if s.students[i].ID == id {
			if s.students[i].Attendance == nil {
				s.students[i].Attendance = map[string]models.AttendanceStatus{}
			}
			s.students[i].Attendance[date] = status
			return
		}
	}
}

func (s *stubStore) BulkSetStudentAttendance(ids []string, date string, status models.AttendanceStatus) {
	for _, id := range ids {
		s.SetStudentAttendance(id, date, status)
	}
}

func (s *stubStore) UpsertGrade(studentID, subject string, term int, score float64) {
	for i := range s.students {
		if s.students[i].ID != studentID {
			continue
		}
		for j, g := range s.students[i].Grades {
			if g.Subject == subject && g.Term == term {
				s.students[i].Grades[j].Score = score
				return
			}
		}
		s.students[i].Grades = append(s.students[i].Grades, models.Grade{
			Subject: subject, Score: score, MaxScore: 100, Term: term,
		})
		return
	}
}

func (s *stubStore) Teachers() []models.Teacher {
	out := make([]models.Teacher, len(s.teachers))
	for i, t := range s.teachers {
		out[i] = t.Clone()
	}
	return out
}

func (s *stubStore) TeacherByID(id string) (models.Teacher, bool) {
	for _, t := range s.teachers {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return models.Teacher{}, false
}

func (s *stubStore) AddTeacher(teacher models.Teacher) {
	s.teachers = append([]models.Teacher{teacher}, s.teachers...)
}

func (s *stubStore) UpdateTeacher(teacher models.Teacher) bool {
	for i, t := range s.teachers {
		if t.ID == teacher.ID {
			s.teachers[i] = teacher
			return true
		}
	}
	return false
}

func (s *stubStore) DeleteTeacher(id string) {
	for i, t := range s.teachers {
		if t.ID == id {
			s.teachers = append(s.teachers[:i], s.teachers[i+1:]...)
			return
		}
	}
}

func (s *stubStore) BulkDeleteTeachers(ids []string) {
	for _, id := range ids {
		s.DeleteTeacher(id)
	}
}

func (s *stubStore) SetTeacherAttendance(id, date string, status models.AttendanceStatus) {
	for i := range s.teachers {
		if s.teachers[i].ID == id {
			if s.teachers[i].Attendance == nil {
				s.teachers[i].Attendance = map[string]models.AttendanceStatus{}
			}
			s.teachers[i].Attendance[date] = status
			return
		}
	}
}

func (s *stubStore) Events() []models.SchoolEvent {
	out := make([]models.SchoolEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *stubStore) EventByID(id string) (models.SchoolEvent, bool) {
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.SchoolEvent{}, false
}

func (s *stubStore) AddEvent(event models.SchoolEvent) {
	s.events = append(s.events, event)
}

func (s *stubStore) UpdateEvent(event models.SchoolEvent) bool {
	for i, e := range s.events {
		if e.ID == event.ID {
			s.events[i] = event
			return true
		}
	}
	return false
}

func (s *stubStore) DeleteEvent(id string) {
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return
		}
	}
}

func (s *stubStore) NotificationLogs() []models.NotificationLog {
	out := make([]models.NotificationLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *stubStore) AppendNotificationLog(entry models.NotificationLog) {
	s.logs = append([]models.NotificationLog{entry}, s.logs...)
}

func (s *stubStore) Templates() []models.CommunicationTemplate {
	out := make([]models.CommunicationTemplate, len(s.templates))
	copy(out, s.templates)
	return out
}

func (s *stubStore) ReplaceTemplates(templates []models.CommunicationTemplate) {
	s.templates = templates
}

func (s *stubStore) ReportSettings() models.ReportSettings {
	return s.settings
}

func (s *stubStore) SetReportSettings(settings models.ReportSettings) {
	s.settings = settings
}

func (s *stubStore) SchoolLogo() string {
	return s.logo
}

func (s *stubStore) SetSchoolLogo(logo string) {
	s.logo = logo
}

func (s *stubStore) Syncing() bool {
	return s.syncing
}

func rosterFixture() *stubStore {
	return &stubStore{
		students: []models.Student{
			{
				ID:            "S001",
				Name:          "Alex Johnson",
				GradeLevel:    "Grade 10",
				Section:       "A",
				GuardianName:  "Maria Johnson",
				GuardianEmail: "maria.j@example.com",
				Grades: []models.Grade{
					{Subject: "Mathematics", Score: 88, MaxScore: 100, Term: 1},
					{Subject: "Science", Score: 92, MaxScore: 100, Term: 1},
					{Subject: "Mathematics", Score: 91, MaxScore: 100, Term: 2},
				},
				Attendance: map[string]models.AttendanceStatus{
					"2026-03-02": models.AttendancePresent,
					"2026-03-03": models.AttendancePresent,
					"2026-03-04": models.AttendanceAbsent,
					"2026-03-05": models.AttendanceLate,
				},
			},
			{
				ID:            "S002",
				Name:          "Sarah Williams",
				GradeLevel:    "Grade 11",
				Section:       "B",
				GuardianName:  "James Williams",
				GuardianEmail: "j.williams@example.com",
				Grades: []models.Grade{
					{Subject: "English", Score: 85, MaxScore: 100, Term: 1},
				},
				Attendance: map[string]models.AttendanceStatus{},
			},
		},
		teachers: []models.Teacher{
			{ID: "T001", Name: "David Chen", Department: "Science", Email: "d.chen@school.edu", Attendance: map[string]models.AttendanceStatus{}},
		},
		events: []models.SchoolEvent{
			{ID: "evt-1", Title: "Sports Day", Date: "2026-04-10", Time: "09:00", Location: "Main Field"},
			{ID: "evt-2", Title: "PTA Meeting", Date: "2026-03-20", Time: "17:00", Location: "Hall"},
		},
		settings: models.ReportSettings{HeadOfSchool: "S. Thompson", Signature: "S. Thompson", AuthPrefix: "ES-2024-TR"},
	}
}
