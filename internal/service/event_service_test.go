package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/pkg/drafting"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

func TestEventServiceList_SortedByDateThenTime(t *testing.T) {
	store := rosterFixture()
	svc := NewEventService(store, nil, nil, zap.NewNop())

	events := svc.List()
	require.Len(t, events, 2)
	assert.Equal(t, "evt-2", events[0].ID)
	assert.Equal(t, "evt-1", events[1].ID)
}

func TestEventServiceCreate(t *testing.T) {
	store := rosterFixture()
	svc := NewEventService(store, nil, nil, zap.NewNop())

	event, err := svc.Create(EventRequest{Title: "Science Fair", Date: "2026-05-01", Time: "10:00"})
	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Len(t, store.events, 3)

	_, err = svc.Create(EventRequest{Title: "Bad Date", Date: "01-05-2026", Time: "10:00"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceUpdate(t *testing.T) {
	store := rosterFixture()
	svc := NewEventService(store, nil, nil, zap.NewNop())

	updated, err := svc.Update("evt-1", EventRequest{Title: "Sports Day (Rescheduled)", Date: "2026-04-17", Time: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", updated.ID)
	got, _ := store.EventByID("evt-1")
	assert.Equal(t, "Sports Day (Rescheduled)", got.Title)

	_, err = svc.Update("ghost", EventRequest{Title: "Ghost", Date: "2026-04-17", Time: "09:00"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceDelete_AbsentIsNoOp(t *testing.T) {
	store := rosterFixture()
	svc := NewEventService(store, nil, nil, zap.NewNop())

	svc.Delete("ghost")
	assert.Len(t, store.events, 2)
	svc.Delete("evt-1")
	assert.Len(t, store.events, 1)
}

func TestEventServiceDraftEmail_FallbackWithoutGenerator(t *testing.T) {
	store := rosterFixture()
	drafter := drafting.NewService(nil, "Cedar Crest International School", zap.NewNop())
	svc := NewEventService(store, drafter, nil, zap.NewNop())

	text, err := svc.DraftEmail(context.Background(), "evt-1")
	require.NoError(t, err)
	assert.Contains(t, text, "Sports Day")
	assert.Contains(t, text, "2026-04-10")
	assert.Contains(t, text, "Main Field")

	_, err = svc.DraftEmail(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
