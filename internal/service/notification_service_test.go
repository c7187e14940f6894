package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
	"github.com/cedarcrest/ccis-admin-api/pkg/mailer"
)

// scriptedRelay resolves each dispatch from a fixed status sequence and
// records requests in arrival order.
type scriptedRelay struct {
	statuses []models.DeliveryStatus
	requests []mailer.Request
}

func (r *scriptedRelay) Send(_ context.Context, req mailer.Request) mailer.Dispatch {
	status := models.DeliverySent
	if len(r.requests) < len(r.statuses) {
		status = r.statuses[len(r.requests)]
	}
	r.requests = append(r.requests, req)
	return mailer.Dispatch{
		Status:    status,
		Recipient: req.Recipient,
		Category:  req.Category,
		Subject:   req.Subject,
	}
}

func TestNotificationServiceSend_LogsOutcomeAndSubstitutes(t *testing.T) {
	store := rosterFixture()
	relay := &scriptedRelay{}
	svc := NewNotificationService(store, relay, nil, nil, zap.NewNop())

	result, err := svc.Send(context.Background(), SendMessageRequest{
		StudentID: "S001",
		Subject:   "Report for [StudentName]",
		Body:      "Dear [GuardianName], the terminal report for [StudentName] is ready.",
		Category:  models.CategoryAcademic,
	})
	require.NoError(t, err)
	assert.True(t, result.Delivered)
	assert.Equal(t, models.DeliverySent, result.Log.Status)
	assert.Equal(t, "Report for Alex Johnson", result.Log.Subject)
	assert.Equal(t, "maria.j@example.com", result.Log.RecipientEmail)

	require.Len(t, relay.requests, 1)
	assert.Contains(t, relay.requests[0].Body, "Dear Maria Johnson")
	assert.Contains(t, relay.requests[0].Body, "report for Alex Johnson")

	require.Len(t, store.logs, 1)
	assert.Equal(t, models.CategoryAcademic, store.logs[0].Category)
}

func TestNotificationServiceSend_FailureStillLogsExactlyOnce(t *testing.T) {
	store := rosterFixture()
	relay := mailer.NewSimulatedRelay(0, 1.0, zap.NewNop())
	svc := NewNotificationService(store, relay, nil, nil, zap.NewNop())

	result, err := svc.Send(context.Background(), SendMessageRequest{
		StudentID: "S001",
		Subject:   "Fee reminder",
		Body:      "Outstanding balance.",
		Category:  models.CategoryFee,
	})
	require.NoError(t, err)
	assert.False(t, result.Delivered)
	require.Len(t, store.logs, 1)
	assert.Equal(t, models.DeliveryFailed, store.logs[0].Status)
}

func TestNotificationServiceSend_Validation(t *testing.T) {
	svc := NewNotificationService(rosterFixture(), &scriptedRelay{}, nil, nil, zap.NewNop())

	_, err := svc.Send(context.Background(), SendMessageRequest{StudentID: "S001", Subject: "x", Body: "y", Category: "SPAM"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Send(context.Background(), SendMessageRequest{StudentID: "ghost", Subject: "x", Body: "y", Category: models.CategoryGeneral})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceBulkSend_OrderAndSkips(t *testing.T) {
	store := rosterFixture()
	relay := &scriptedRelay{statuses: []models.DeliveryStatus{models.DeliverySent, models.DeliveryFailed}}
	svc := NewNotificationService(store, relay, nil, nil, zap.NewNop())

	summary, err := svc.BulkSend(context.Background(), BulkSendRequest{
		StudentIDs: []string{"S001", "ghost", "S002"},
		Subject:    "School closes early",
		Body:       "Please arrange pickup for [StudentName].",
		Category:   models.CategoryEmergency,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Logs, 2)

	// Dispatch order follows request order, unknown ids skipped.
	require.Len(t, relay.requests, 2)
	assert.Equal(t, "maria.j@example.com", relay.requests[0].Recipient)
	assert.Equal(t, "j.williams@example.com", relay.requests[1].Recipient)

	// The store prepends, so the newest entry is first: log order mirrors
	// send order when read oldest-to-newest.
	require.Len(t, store.logs, 2)
	assert.Equal(t, "Sarah Williams", store.logs[0].StudentName)
	assert.Equal(t, models.DeliveryFailed, store.logs[0].Status)
	assert.Equal(t, "Alex Johnson", store.logs[1].StudentName)
	assert.Equal(t, models.DeliverySent, store.logs[1].Status)
}

func TestNotificationServiceLogsFilter(t *testing.T) {
	store := rosterFixture()
	store.logs = []models.NotificationLog{
		{ID: "l1", StudentName: "Alex Johnson", Category: models.CategoryAcademic, Status: models.DeliverySent},
		{ID: "l2", StudentName: "Sarah Williams", Category: models.CategoryFee, Status: models.DeliveryFailed},
	}
	svc := NewNotificationService(store, &scriptedRelay{}, nil, nil, zap.NewNop())

	logs := svc.Logs(models.LogFilter{Category: models.CategoryFee})
	require.Len(t, logs, 1)
	assert.Equal(t, "l2", logs[0].ID)

	logs = svc.Logs(models.LogFilter{Status: models.DeliverySent})
	require.Len(t, logs, 1)
	assert.Equal(t, "l1", logs[0].ID)

	logs = svc.Logs(models.LogFilter{Search: "alex"})
	require.Len(t, logs, 1)
	assert.Equal(t, "l1", logs[0].ID)
}

func TestNotificationServiceReplaceTemplates(t *testing.T) {
	store := rosterFixture()
	svc := NewNotificationService(store, &scriptedRelay{}, nil, nil, zap.NewNop())

	templates, err := svc.ReplaceTemplates([]TemplateRequest{
		{ID: "temp-1", Name: "Fee Reminder", Subject: "Fees due", Content: "Dear [GuardianName]...", Category: models.CategoryFee},
		{Name: "New Template", Subject: "Hello", Content: "Body", Category: models.CategoryGeneral},
	})
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "temp-1", templates[0].ID)
	assert.NotEmpty(t, templates[1].ID)
	assert.Len(t, store.templates, 2)

	_, err = svc.ReplaceTemplates([]TemplateRequest{{Name: "Missing Fields"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
