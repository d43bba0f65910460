package driven

import (
	"context"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

// BackendGateway is the dashboard backend collaborator. It owns everything
// the orchestrator does not: issuing provider authorization URLs, exchanging
// authorization codes for tokens, listing token-scoped resources, and
// persisting bindings on the project record.
//
// All paths come from the provider descriptor; the gateway only knows how to
// speak the backend's envelope.
type BackendGateway interface {
	// AuthURL requests an authorization URL scoped to the project.
	// GET {authUrlPath}?projectId=<id>
	AuthURL(ctx context.Context, desc domain.ProviderDescriptor, projectID string) (string, error)

	// ListResources fetches the candidate resources visible to the newly
	// granted token. GET {resourceListPath}/<projectId>
	ListResources(ctx context.Context, desc domain.ProviderDescriptor, projectID string) ([]domain.CandidateResource, error)

	// CommitBinding persists the chosen resource id on the project record
	// and returns the echoed record. POST {commitPath}
	CommitBinding(ctx context.Context, desc domain.ProviderDescriptor, projectID, resourceID string) (*domain.ProjectRecord, error)

	// ExchangeCode performs the one-time direct code exchange used by the
	// redirect fallback when no session is listening. POST {exchangePath}
	ExchangeCode(ctx context.Context, desc domain.ProviderDescriptor, projectID, code, state string) error
}
