package models

// Grade is a single scored subject for one term. At most one Grade exists
// per (subject, term) pair on a student; writes replace, never append.
type Grade struct {
	Subject  string  `json:"subject"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
	Term     int     `json:"term"`
}

// Student is a learner registered at the school together with the guardian
// contact used for all outbound communication.
type Student struct {
	ID            string                      `json:"id"`
	Name          string                      `json:"name"`
	GradeLevel    string                      `json:"gradeLevel"`
	Section       string                      `json:"section"`
	Avatar        string                      `json:"avatar"`
	GuardianName  string                      `json:"guardianName"`
	GuardianEmail string                      `json:"guardianEmail"`
	GuardianPhone string                      `json:"guardianPhone"`
	Grades        []Grade                     `json:"grades"`
	Attendance    map[string]AttendanceStatus `json:"attendance"`
}

// Clone returns a deep copy so callers can never alias store-owned state.
func (s Student) Clone() Student {
	out := s
	out.Grades = make([]Grade, len(s.Grades))
	copy(out.Grades, s.Grades)
	out.Attendance = make(map[string]AttendanceStatus, len(s.Attendance))
	for date, status := range s.Attendance {
		out.Attendance[date] = status
	}
	return out
}

// GradeFor looks up the grade for a (subject, term) pair.
func (s Student) GradeFor(subject string, term int) (Grade, bool) {
	for _, g := range s.Grades {
		if g.Subject == subject && g.Term == term {
			return g, true
		}
	}
	return Grade{}, false
}

// StudentFilter captures the transient search parameters for roster listings.
type StudentFilter struct {
	Search     string
	GradeLevel string
	Section    string
}

// Matches applies the filter against a student record.
func (f StudentFilter) Matches(s Student) bool {
	if f.GradeLevel != "" && s.GradeLevel != f.GradeLevel {
		return false
	}
	if f.Section != "" && s.Section != f.Section {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(s.Name, f.Search) ||
		containsFold(s.ID, f.Search) ||
		containsFold(s.GuardianName, f.Search)
}
