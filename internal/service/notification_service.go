package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/mailer"
)

type notificationStore interface {
	StudentByID(id string) (models.Student, bool)
	NotificationLogs() []models.NotificationLog
	Templates() []models.CommunicationTemplate
	ReplaceTemplates(templates []models.CommunicationTemplate)
	AppendNotificationLog(entry models.NotificationLog)
}

// SendMessageRequest dispatches one guardian message. Subject and body may
// carry [StudentName] and [GuardianName] placeholders.
type SendMessageRequest struct {
	StudentID string                      `json:"studentId" validate:"required"`
	Subject   string                      `json:"subject" validate:"required"`
	Body      string                      `json:"body" validate:"required"`
	Category  models.NotificationCategory `json:"category" validate:"required"`
}

// BulkSendRequest dispatches the same message to many guardians.
type BulkSendRequest struct {
	StudentIDs []string                    `json:"studentIds" validate:"required,min=1"`
	Subject    string                      `json:"subject" validate:"required"`
	Body       string                      `json:"body" validate:"required"`
	Category   models.NotificationCategory `json:"category" validate:"required"`
}

// TemplateRequest is one template in a whole-collection replacement.
type TemplateRequest struct {
	ID       string                      `json:"id"`
	Name     string                      `json:"name" validate:"required"`
	Subject  string                      `json:"subject" validate:"required"`
	Content  string                      `json:"content" validate:"required"`
	Category models.NotificationCategory `json:"category" validate:"required"`
}

// SendResult reports one resolved dispatch and its audit entry.
type SendResult struct {
	Delivered bool                   `json:"delivered"`
	Log       models.NotificationLog `json:"log"`
}

// BulkSendResult summarises a sequential bulk dispatch.
type BulkSendResult struct {
	Sent   int                      `json:"sent"`
	Failed int                      `json:"failed"`
	Logs   []models.NotificationLog `json:"logs"`
}

// NotificationService owns the communication hub: templates, sends and the
// append-only audit log. Every relay outcome, success or failure, becomes
// exactly one log entry; failures are logged, never retried.
type NotificationService struct {
	store     notificationStore
	relay     mailer.Relay
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewNotificationService constructs the notification service.
func NewNotificationService(store notificationStore, relay mailer.Relay, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		store:     store,
		relay:     relay,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Logs returns audit entries matching the filter, newest first.
func (s *NotificationService) Logs(filter models.LogFilter) []models.NotificationLog {
	all := s.store.NotificationLogs()
	matched := make([]models.NotificationLog, 0, len(all))
	for _, entry := range all {
		if filter.Matches(entry) {
			matched = append(matched, entry)
		}
	}
	return matched
}

// Templates returns the current template collection.
func (s *NotificationService) Templates() []models.CommunicationTemplate {
	return s.store.Templates()
}

// ReplaceTemplates swaps the whole template collection. Add, edit and
// remove all route through this one operation.
func (s *NotificationService) ReplaceTemplates(reqs []TemplateRequest) ([]models.CommunicationTemplate, error) {
	templates := make([]models.CommunicationTemplate, 0, len(reqs))
	for _, req := range reqs {
		if err := s.validator.Struct(req); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
		}
		if !req.Category.IsValid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "invalid template category")
		}
		id := req.ID
		if id == "" {
			id = uuid.NewString()
		}
		templates = append(templates, models.CommunicationTemplate{
			ID:       id,
			Name:     req.Name,
			Subject:  req.Subject,
			Content:  req.Content,
			Category: req.Category,
		})
	}
	s.store.ReplaceTemplates(templates)
	return templates, nil
}

// Send dispatches one message to a student's guardian and logs the outcome.
func (s *NotificationService) Send(ctx context.Context, req SendMessageRequest) (*SendResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid send payload")
	}
	if !req.Category.IsValid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid message category")
	}
	student, ok := s.store.StudentByID(req.StudentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	result := s.dispatch(ctx, student, req.Subject, req.Body, req.Category)
	return &result, nil
}

// BulkSend dispatches the same message to every listed student's guardian,
// strictly in order: each dispatch is resolved and logged before the next
// begins, so log order equals send order. The loop never aborts early;
// unknown students are skipped.
func (s *NotificationService) BulkSend(ctx context.Context, req BulkSendRequest) (*BulkSendResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk send payload")
	}
	if !req.Category.IsValid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid message category")
	}

	summary := &BulkSendResult{Logs: []models.NotificationLog{}}
	for _, id := range req.StudentIDs {
		student, ok := s.store.StudentByID(id)
		if !ok {
			continue
		}
		result := s.dispatch(ctx, student, req.Subject, req.Body, req.Category)
		if result.Delivered {
			summary.Sent++
		} else {
			summary.Failed++
		}
		summary.Logs = append(summary.Logs, result.Log)
	}
	return summary, nil
}

func (s *NotificationService) dispatch(ctx context.Context, student models.Student, subject, body string, category models.NotificationCategory) SendResult {
	subject = substitutePlaceholders(subject, student)
	body = substitutePlaceholders(body, student)

	start := s.now()
	outcome := s.relay.Send(ctx, mailer.Request{
		Recipient: student.GuardianEmail,
		Subject:   subject,
		Body:      body,
		Category:  category,
	})
	s.metrics.RecordMessage(string(outcome.Status), s.now().Sub(start))

	entry := models.NotificationLog{
		ID:             uuid.NewString(),
		Timestamp:      s.now().UTC().Format(time.RFC3339),
		RecipientEmail: outcome.Recipient,
		StudentName:    student.Name,
		Subject:        outcome.Subject,
		Category:       outcome.Category,
		Status:         outcome.Status,
	}
	s.store.AppendNotificationLog(entry)
	s.metrics.RecordMutation("appendNotificationLog")

	if outcome.Status != models.DeliverySent {
		s.logger.Warn("message delivery failed",
			zap.String("student_id", student.ID),
			zap.String("recipient", student.GuardianEmail),
		)
	}

	return SendResult{Delivered: outcome.Status == models.DeliverySent, Log: entry}
}

func substitutePlaceholders(text string, student models.Student) string {
	text = strings.ReplaceAll(text, "[StudentName]", student.Name)
	text = strings.ReplaceAll(text, "[GuardianName]", student.GuardianName)
	return text
}
