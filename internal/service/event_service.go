package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cedarcrest/ccis-admin-api/internal/models"
	"github.com/cedarcrest/ccis-admin-api/pkg/drafting"
	appErrors "github.com/cedarcrest/ccis-admin-api/pkg/errors"
)

type eventStore interface {
	Events() []models.SchoolEvent
	EventByID(id string) (models.SchoolEvent, bool)
	AddEvent(event models.SchoolEvent)
	UpdateEvent(event models.SchoolEvent) bool
	DeleteEvent(id string)
}

// EventRequest holds payload for creating or replacing a calendar event.
type EventRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Bg          string `json:"bg"`
}

// EventService handles the school calendar.
type EventService struct {
	store     eventStore
	drafter   *drafting.Service
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs the event service. A nil drafter disables
// email drafting.
func NewEventService(store eventStore, drafter *drafting.Service, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{store: store, drafter: drafter, validator: validate, logger: logger}
}

// List returns every event ordered by date then time.
func (s *EventService) List() []models.SchoolEvent {
	events := s.store.Events()
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
	return events
}

// Get returns one event.
func (s *EventService) Get(id string) (*models.SchoolEvent, error) {
	event, ok := s.store.EventByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return &event, nil
}

// Create adds a calendar event.
func (s *EventService) Create(req EventRequest) (*models.SchoolEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := req.toModel()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	s.store.AddEvent(event)
	return &event, nil
}

// Update replaces the event with the matching id.
func (s *EventService) Update(id string, req EventRequest) (*models.SchoolEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	event := req.toModel()
	event.ID = id
	if !s.store.UpdateEvent(event) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return &event, nil
}

// Delete removes an event. Absent ids degrade to a no-op.
func (s *EventService) Delete(id string) {
	s.store.DeleteEvent(id)
}

// DraftEmail stages a guardian announcement email for an event. The draft
// is text only; dispatch goes through the notification service.
func (s *EventService) DraftEmail(ctx context.Context, id string) (string, error) {
	event, ok := s.store.EventByID(id)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	if s.drafter == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "drafting is not configured")
	}
	return s.drafter.EventEmail(ctx, event), nil
}

func (r EventRequest) toModel() models.SchoolEvent {
	return models.SchoolEvent{
		ID:          r.ID,
		Title:       r.Title,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Description: r.Description,
		Color:       r.Color,
		Bg:          r.Bg,
	}
}
