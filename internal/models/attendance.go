package models

// AttendanceStatus enumerates the per-day attendance states.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

// IsValid reports whether the status is one of the known values.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	}
	return false
}

// AttendanceDateLayout is the calendar-date key format used in attendance maps.
const AttendanceDateLayout = "2006-01-02"

// AttendanceRate returns present-days over total recorded days as a whole
// percentage. An empty record counts as 100%.
func AttendanceRate(attendance map[string]AttendanceStatus) int {
	if len(attendance) == 0 {
		return 100
	}
	present := 0
	for _, status := range attendance {
		if status == AttendancePresent {
			present++
		}
	}
	return int(float64(present)/float64(len(attendance))*100 + 0.5)
}
