package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

// PersistenceGateway commits a chosen resource id to the project record via
// the backend collaborator. The backend is authoritative: when the echoed
// binding value differs from the requested one the flow still completes, but
// the mismatch is flagged as a non-fatal warning.
type PersistenceGateway struct {
	backend  driven.BackendGateway
	bindings driven.BindingStore // optional
	events   driven.EventStore   // optional
}

// NewPersistenceGateway creates a gateway. bindings and events may be nil;
// local records are then skipped.
func NewPersistenceGateway(
	backend driven.BackendGateway,
	bindings driven.BindingStore,
	events driven.EventStore,
) *PersistenceGateway {
	return &PersistenceGateway{
		backend:  backend,
		bindings: bindings,
		events:   events,
	}
}

// Commit persists the binding and verifies the echo. A transport or API
// failure returns domain.ErrCommitFailed and commits nothing locally; the
// caller stays in the selection phase and may retry.
func (g *PersistenceGateway) Commit(
	ctx context.Context,
	desc domain.ProviderDescriptor,
	projectID, resourceID string,
) (*domain.ProjectBinding, error) {
	if g.backend == nil {
		return nil, domain.ErrNotImplemented
	}
	if projectID == "" || resourceID == "" {
		return nil, domain.ErrInvalidInput
	}

	record, err := g.backend.CommitBinding(ctx, desc, projectID, resourceID)
	if err != nil {
		g.record(ctx, projectID, desc.ID, "commit_failed", err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrCommitFailed, err)
	}

	binding := domain.ProjectBinding{
		ProjectID:   projectID,
		ProviderID:  desc.ID,
		Field:       desc.ProjectBindingField,
		Value:       resourceID,
		CommittedAt: time.Now(),
	}

	echoed, ok := record.BindingValue(desc.ProjectBindingField)
	switch {
	case !ok:
		binding.Warning = fmt.Sprintf("backend did not echo %s", desc.ProjectBindingField)
	case echoed != resourceID:
		// Backend-side normalisation, not a client bug. The echoed value wins.
		binding.Value = echoed
		binding.Warning = fmt.Sprintf("backend stored %q where %q was requested", echoed, resourceID)
	}
	if binding.Warning != "" {
		logger.Warn("binding %s/%s: %s", projectID, desc.ID, binding.Warning)
	}

	if g.bindings != nil {
		if err := g.bindings.Save(ctx, binding); err != nil {
			logger.Warn("binding %s/%s: local record not saved: %v", projectID, desc.ID, err)
		}
	}
	g.record(ctx, projectID, desc.ID, "bound", binding.Value)

	return &binding, nil
}

// record appends an audit event, best effort.
func (g *PersistenceGateway) record(ctx context.Context, projectID string, provider domain.ProviderID, outcome, detail string) {
	if g.events == nil {
		return
	}
	event := domain.ConnectionEvent{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		ProviderID: provider,
		Outcome:    outcome,
		Detail:     detail,
		At:         time.Now(),
	}
	if err := g.events.Record(ctx, event); err != nil {
		logger.Debug("audit event not recorded: %v", err)
	}
}
