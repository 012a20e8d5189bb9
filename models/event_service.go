package models

import (
	"context"

	"github.com/sirupsen/logrus"

	"eventmanager/logging"
)

// EventService implements the event operations on top of a repository.
type EventService struct {
	repo   EventRepository
	logger *logrus.Entry
}

func NewEventService(repo EventRepository, logger *logrus.Entry) *EventService {
	return &EventService{repo: repo, logger: logger}
}

// ListEvents returns all events, latest start first.
func (s *EventService) ListEvents(ctx context.Context) ([]Event, error) {
	return s.repo.GetAll(ctx)
}

// GetEvent returns the event with the given id or ErrEventNotFound.
func (s *EventService) GetEvent(ctx context.Context, id string) (Event, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateEvent validates the input and persists a new event. Nothing is
// written when validation fails.
func (s *EventService) CreateEvent(ctx context.Context, in EventInput) (Event, error) {
	if err := in.Validate(); err != nil {
		return Event{}, err
	}
	var e Event
	if err := in.applyTo(&e); err != nil {
		return Event{}, err
	}
	if err := s.repo.Create(ctx, &e); err != nil {
		return Event{}, err
	}
	s.logger.WithField(logging.FldID, e.ID).Info("Event created")
	return e, nil
}

// UpdateEvent overwrites all four fields of an existing event. Empty values
// are stored as they are.
func (s *EventService) UpdateEvent(ctx context.Context, id string, in EventInput) (Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err := in.applyTo(&e); err != nil {
		return Event{}, err
	}
	if err := s.repo.Update(ctx, &e); err != nil {
		return Event{}, err
	}
	s.logger.WithField(logging.FldID, id).Info("Event updated")
	return e, nil
}

// DeleteEvent removes the event if it exists.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField(logging.FldID, id).Info("Event removed")
	return nil
}
