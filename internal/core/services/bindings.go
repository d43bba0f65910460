package services

import (
	"context"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driving"
)

// Ensure BindingRecordService implements the interface.
var _ driving.BindingService = (*BindingRecordService)(nil)

// BindingRecordService exposes locally recorded bindings and connection
// history. Records are written by the persistence gateway; this service only
// reads and prunes them.
type BindingRecordService struct {
	bindings driven.BindingStore
	events   driven.EventStore
}

// NewBindingRecordService creates the service. Either store may be nil.
func NewBindingRecordService(bindings driven.BindingStore, events driven.EventStore) *BindingRecordService {
	return &BindingRecordService{
		bindings: bindings,
		events:   events,
	}
}

// List returns the bindings recorded for a project.
func (s *BindingRecordService) List(ctx context.Context, projectID string) ([]domain.ProjectBinding, error) {
	if s.bindings == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.bindings.List(ctx, projectID)
}

// Get returns the binding for (project, provider).
func (s *BindingRecordService) Get(ctx context.Context, projectID string, provider domain.ProviderID) (*domain.ProjectBinding, error) {
	if s.bindings == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.bindings.Get(ctx, projectID, provider)
}

// Remove deletes the local record for (project, provider).
func (s *BindingRecordService) Remove(ctx context.Context, projectID string, provider domain.ProviderID) error {
	if s.bindings == nil {
		return domain.ErrNotImplemented
	}
	return s.bindings.Delete(ctx, projectID, provider)
}

// History returns recorded connection events for a project, newest first.
func (s *BindingRecordService) History(ctx context.Context, projectID string) ([]domain.ConnectionEvent, error) {
	if s.events == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.events.ListByProject(ctx, projectID)
}
