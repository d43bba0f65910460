package driven

import (
	"context"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

// BindingStore persists local records of committed bindings so connection
// state can be inspected without the backend.
type BindingStore interface {
	// Save stores or replaces the binding for (project, provider).
	Save(ctx context.Context, binding domain.ProjectBinding) error

	// Get retrieves the binding for (project, provider).
	Get(ctx context.Context, projectID string, provider domain.ProviderID) (*domain.ProjectBinding, error)

	// List returns all bindings for a project.
	List(ctx context.Context, projectID string) ([]domain.ProjectBinding, error)

	// Delete removes the binding for (project, provider).
	Delete(ctx context.Context, projectID string, provider domain.ProviderID) error
}

// EventStore records connection session outcomes for diagnostics.
type EventStore interface {
	// Record appends a connection event.
	Record(ctx context.Context, event domain.ConnectionEvent) error

	// ListByProject returns events for a project, newest first.
	ListByProject(ctx context.Context, projectID string) ([]domain.ConnectionEvent, error)
}

// DescriptorStore loads provider descriptor overlays from configuration.
type DescriptorStore interface {
	// Load returns the configured descriptors. An empty slice is valid.
	Load() ([]domain.ProviderDescriptor, error)

	// Watch invokes fn whenever the underlying configuration changes.
	// Returns a stop function. Implementations without change detection
	// return a no-op stop.
	Watch(fn func([]domain.ProviderDescriptor)) (stop func(), err error)
}
