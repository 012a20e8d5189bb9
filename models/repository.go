package models

import (
	"context"
	"errors"
	"time"
)

// ErrEventNotFound is returned when no event matches the requested id.
var ErrEventNotFound = errors.New("event not found")

// Event is the only persisted entity.
type Event struct {
	ID               string    `json:"id" bson:"_id" db:"id"`
	Name             string    `json:"name" bson:"name" db:"name"`
	Location         string    `json:"location" bson:"location" db:"location"`
	StartDateAndTime time.Time `json:"startDateAndTime" bson:"startDateAndTime" db:"start_date_and_time"`
	EndDateAndTime   time.Time `json:"endDateAndTime" bson:"endDateAndTime" db:"end_date_and_time"`
}

// EventRepository is implemented by every event store backend.
//
// GetAll returns events sorted by start time, latest first. Create assigns an
// id when the event has none. Update and GetByID report ErrEventNotFound for
// unknown ids, Delete does not.
type EventRepository interface {
	GetAll(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	Create(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}
