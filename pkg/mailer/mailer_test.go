package mailer

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
)

func TestSimulatedRelaySendSuccess(t *testing.T) {
	relay := NewSimulatedRelay(0, 0, nil)

	dispatch := relay.Send(context.Background(), Request{
		Recipient: "guardian@example.com",
		Subject:   "Term Report",
		Category:  models.CategoryAcademic,
	})

	assert.Equal(t, models.DeliverySent, dispatch.Status)
	assert.Equal(t, "guardian@example.com", dispatch.Recipient)
	assert.Equal(t, models.CategoryAcademic, dispatch.Category)
	assert.Equal(t, "Term Report", dispatch.Subject)
}

func TestSimulatedRelaySendAlwaysFails(t *testing.T) {
	relay := NewSimulatedRelay(0, 1.0, nil, WithRand(rand.New(rand.NewSource(1))))

	dispatch := relay.Send(context.Background(), Request{Recipient: "guardian@example.com"})

	assert.Equal(t, models.DeliveryFailed, dispatch.Status)
}

func TestSimulatedRelayCancelledContext(t *testing.T) {
	relay := NewSimulatedRelay(time.Second, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dispatch := relay.Send(ctx, Request{Recipient: "guardian@example.com"})
	assert.Equal(t, models.DeliveryFailed, dispatch.Status)
}
