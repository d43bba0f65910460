package driving

import "github.com/pulseboard/pulseboard-cli/internal/core/domain"

// ProviderRegistry exposes the registered provider descriptors.
type ProviderRegistry interface {
	// List returns all registered descriptors, ordered by id.
	List() []domain.ProviderDescriptor

	// Get returns the descriptor for a provider id.
	Get(id domain.ProviderID) (*domain.ProviderDescriptor, error)

	// ByMessageType returns the descriptor owning a success or error message
	// type, used by the callback receiver to route redirects.
	ByMessageType(messageType string) (*domain.ProviderDescriptor, error)
}
