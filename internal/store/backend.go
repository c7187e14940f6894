package store

import "context"

// Durable storage keys. Every collection snapshot is JSON except the
// school logo, which is stored as a raw string.
const (
	KeyStudents       = "cc_students"
	KeyTeachers       = "cc_teachers"
	KeyEvents         = "cc_events"
	KeyLogs           = "cc_notif_logs"
	KeyTemplates      = "cc_templates"
	KeyReportSettings = "cc_report_settings"
	KeySchoolLogo     = "cc_school_logo"
)

// Keys lists every durable key in snapshot order.
func Keys() []string {
	return []string{
		KeyStudents,
		KeyTeachers,
		KeyEvents,
		KeyLogs,
		KeyTemplates,
		KeyReportSettings,
		KeySchoolLogo,
	}
}

// Backend is the durable key-value medium behind the store. Save receives
// a whole snapshot of all keys; partial writes are never issued.
type Backend interface {
	// Load returns the stored value for key and whether it was present.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save persists the complete snapshot as a unit.
	Save(ctx context.Context, snapshot map[string][]byte) error
}
