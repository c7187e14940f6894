package models

// Teacher is a staff member on the faculty roster.
type Teacher struct {
	ID         string                      `json:"id"`
	Name       string                      `json:"name"`
	Department string                      `json:"department"`
	Email      string                      `json:"email"`
	Avatar     string                      `json:"avatar"`
	Attendance map[string]AttendanceStatus `json:"attendance"`
}

// Clone returns a deep copy of the teacher record.
func (t Teacher) Clone() Teacher {
	out := t
	out.Attendance = make(map[string]AttendanceStatus, len(t.Attendance))
	for date, status := range t.Attendance {
		out.Attendance[date] = status
	}
	return out
}

// TeacherFilter captures the transient search parameters for faculty listings.
type TeacherFilter struct {
	Search     string
	Department string
}

// Matches applies the filter against a teacher record.
func (f TeacherFilter) Matches(t Teacher) bool {
	if f.Department != "" && t.Department != f.Department {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(t.Name, f.Search) ||
		containsFold(t.ID, f.Search) ||
		containsFold(t.Department, f.Search)
}
