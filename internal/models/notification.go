package models

// NotificationCategory classifies outbound guardian communications.
type NotificationCategory string

const (
	CategoryAcademic  NotificationCategory = "ACADEMIC"
	CategoryEvent     NotificationCategory = "EVENT"
	CategoryEmergency NotificationCategory = "EMERGENCY"
	CategoryFee       NotificationCategory = "FEE"
	CategoryGeneral   NotificationCategory = "GENERAL"
)

// IsValid reports whether the category is one of the known values.
func (c NotificationCategory) IsValid() bool {
	switch c {
	case CategoryAcademic, CategoryEvent, CategoryEmergency, CategoryFee, CategoryGeneral:
		return true
	}
	return false
}

// DeliveryStatus is the resolved outcome of a relay dispatch.
type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "SENT"
	DeliveryFailed DeliveryStatus = "FAILED"
	DeliveryQueued DeliveryStatus = "QUEUED"
)

// NotificationLog is one entry in the append-only communications audit
// trail. Entries are prepended and never edited.
type NotificationLog struct {
	ID             string               `json:"id"`
	Timestamp      string               `json:"timestamp"`
	RecipientEmail string               `json:"recipientEmail"`
	StudentName    string               `json:"studentName"`
	Subject        string               `json:"subject"`
	Category       NotificationCategory `json:"type"`
	Status         DeliveryStatus       `json:"status"`
}

// CommunicationTemplate is a reusable message body. Content may contain
// [StudentName] and [GuardianName] placeholders substituted at send time.
type CommunicationTemplate struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Subject  string               `json:"subject"`
	Content  string               `json:"content"`
	Category NotificationCategory `json:"category"`
}

// LogFilter captures transient filters over the notification log.
type LogFilter struct {
	Category NotificationCategory
	Status   DeliveryStatus
	Search   string
}

// Matches applies the filter against a log entry.
func (f LogFilter) Matches(l NotificationLog) bool {
	if f.Category != "" && l.Category != f.Category {
		return false
	}
	if f.Status != "" && l.Status != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}
	return containsFold(l.RecipientEmail, f.Search) ||
		containsFold(l.StudentName, f.Search) ||
		containsFold(l.Subject, f.Search)
}
