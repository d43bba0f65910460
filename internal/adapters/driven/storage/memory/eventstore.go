package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
)

// Ensure EventStore implements the interface.
var _ driven.EventStore = (*EventStore)(nil)

// EventStore is an in-memory implementation of driven.EventStore.
type EventStore struct {
	mu     sync.RWMutex
	events []domain.ConnectionEvent
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{}
}

// Record appends a connection event.
func (s *EventStore) Record(_ context.Context, event domain.ConnectionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByProject returns events for a project, newest first.
func (s *EventStore) ListByProject(_ context.Context, projectID string) ([]domain.ConnectionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ConnectionEvent, 0)
	for _, e := range s.events {
		if e.ProjectID == projectID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].At.After(result[j].At) })
	return result, nil
}
