// Package mocks holds in-memory stand-ins for the repositories.
package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"eventmanager/models"
)

// MockEventRepo keeps events in a map. Err, when set, is returned by every
// call. Reads counts GetAll and GetByID calls.
type MockEventRepo struct {
	mu    sync.Mutex
	Items map[string]models.Event
	Err   error
	Reads int
}

func NewMockEventRepo() *MockEventRepo {
	return &MockEventRepo{Items: map[string]models.Event{}}
}

func (m *MockEventRepo) GetAll(ctx context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Event, 0, len(m.Items))
	for _, e := range m.Items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartDateAndTime.After(out[j].StartDateAndTime)
	})
	return out, nil
}

func (m *MockEventRepo) GetByID(ctx context.Context, id string) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Err != nil {
		return models.Event{}, m.Err
	}
	e, ok := m.Items[id]
	if !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	return e, nil
}

func (m *MockEventRepo) Create(ctx context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	m.Items[e.ID] = *e
	return nil
}

func (m *MockEventRepo) Update(ctx context.Context, e *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[e.ID]; !ok {
		return models.ErrEventNotFound
	}
	m.Items[e.ID] = *e
	return nil
}

func (m *MockEventRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Items, id)
	return nil
}

// Len returns the number of stored events.
func (m *MockEventRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Items)
}
