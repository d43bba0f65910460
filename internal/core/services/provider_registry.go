package services

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driving"
)

// Ensure ProviderRegistry implements the interface.
var _ driving.ProviderRegistry = (*ProviderRegistry)(nil)

// ProviderRegistry holds the provider descriptors the orchestrator can drive.
// Descriptors are registered at startup (built-ins plus an optional TOML
// overlay) and may be replaced on configuration reload.
//
// Invariant: success and error message types are unique across all registered
// providers, so a message can never be attributed to the wrong provider.
type ProviderRegistry struct {
	mu          sync.RWMutex
	descriptors map[domain.ProviderID]domain.ProviderDescriptor
	byType      map[string]domain.ProviderID
}

// NewProviderRegistry creates a registry pre-populated with the built-in
// provider descriptors.
func NewProviderRegistry() *ProviderRegistry {
	r := &ProviderRegistry{
		descriptors: make(map[domain.ProviderID]domain.ProviderDescriptor),
		byType:      make(map[string]domain.ProviderID),
	}
	for _, d := range builtinDescriptors() {
		// Built-ins are validated by the package tests; a registration
		// failure here is a programming error.
		if err := r.Register(d); err != nil {
			panic(fmt.Sprintf("builtin provider %s: %v", d.ID, err))
		}
	}
	return r
}

// Register adds or replaces a descriptor. Replacing frees the previous
// message types before claiming the new ones.
func (r *ProviderRegistry) Register(desc domain.ProviderDescriptor) error {
	if err := desc.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range []string{desc.SuccessMessageType, desc.ErrorMessageType} {
		if owner, ok := r.byType[mt]; ok && owner != desc.ID {
			return fmt.Errorf("%w: message type %q already registered by provider %s",
				domain.ErrAlreadyExists, mt, owner)
		}
	}

	if prev, ok := r.descriptors[desc.ID]; ok {
		delete(r.byType, prev.SuccessMessageType)
		delete(r.byType, prev.ErrorMessageType)
	}

	r.descriptors[desc.ID] = desc
	r.byType[desc.SuccessMessageType] = desc.ID
	r.byType[desc.ErrorMessageType] = desc.ID
	return nil
}

// Apply overlays a set of descriptors on top of the current registry,
// used when the descriptor configuration file changes. Descriptors that
// fail to register are skipped; the first error is returned.
func (r *ProviderRegistry) Apply(descs []domain.ProviderDescriptor) error {
	var firstErr error
	for _, d := range descs {
		if err := r.Register(d); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// List returns all registered descriptors, ordered by id.
func (r *ProviderRegistry) List() []domain.ProviderDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.ProviderDescriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		result = append(result, d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Get returns the descriptor for a provider id.
func (r *ProviderRegistry) Get(id domain.ProviderID) (*domain.ProviderDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[id]
	if !ok {
		return nil, fmt.Errorf("%w: provider %s", domain.ErrNotFound, id)
	}
	return &d, nil
}

// ByMessageType returns the descriptor owning a success or error message type.
func (r *ProviderRegistry) ByMessageType(messageType string) (*domain.ProviderDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byType[messageType]
	if !ok {
		return nil, fmt.Errorf("%w: message type %s", domain.ErrNotFound, messageType)
	}
	d := r.descriptors[id]
	return &d, nil
}
