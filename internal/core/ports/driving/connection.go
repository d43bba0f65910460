package driving

import (
	"context"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

// ConnectionService drives the provider connection state machine:
// Init -> Authorizing -> Selecting -> Bound.
//
// At most one session may be active per (provider, project) pair; a second
// Start returns domain.ErrSessionActive.
type ConnectionService interface {
	// Start begins (or resumes) a connection session. It performs the
	// idempotent recheck first: when resources are already fetchable for the
	// project/provider, it skips authorization and lands in Selecting.
	// Otherwise it requests an auth URL, opens the authorization window and
	// waits for it to settle.
	//
	// Returns domain.ErrCancelled when the user closed the window (expected
	// interaction), domain.ErrPopupBlocked or domain.ErrAuthDenied on abort.
	Start(ctx context.Context, provider domain.ProviderID, projectID string) (*domain.ConnectionState, error)

	// Confirm commits the chosen resource. Only valid in Selecting.
	// On domain.ErrCommitFailed the session stays in Selecting with its
	// resource list intact and Confirm may be retried.
	Confirm(ctx context.Context, provider domain.ProviderID, projectID string, resource domain.CandidateResource) (*domain.ProjectBinding, error)

	// State returns the current user-visible state of the session, or a
	// PhaseInit state when none is active.
	State(provider domain.ProviderID, projectID string) domain.ConnectionState

	// Dismiss tears down the session for (provider, project), releasing its
	// listener and poll resources. Safe when no session is active.
	Dismiss(provider domain.ProviderID, projectID string)
}

// BindingService exposes locally recorded bindings and connection history.
type BindingService interface {
	// List returns the bindings recorded for a project.
	List(ctx context.Context, projectID string) ([]domain.ProjectBinding, error)

	// Get returns the binding for (project, provider).
	Get(ctx context.Context, projectID string, provider domain.ProviderID) (*domain.ProjectBinding, error)

	// Remove deletes the local record for (project, provider).
	Remove(ctx context.Context, projectID string, provider domain.ProviderID) error

	// History returns recorded connection events for a project, newest first.
	History(ctx context.Context, projectID string) ([]domain.ConnectionEvent, error)
}
