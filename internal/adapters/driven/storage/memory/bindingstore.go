package memory

import (
	"context"
	"sync"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
)

// Ensure BindingStore implements the interface.
var _ driven.BindingStore = (*BindingStore)(nil)

type bindingKey struct {
	project  string
	provider domain.ProviderID
}

// BindingStore is an in-memory implementation of driven.BindingStore.
type BindingStore struct {
	mu       sync.RWMutex
	bindings map[bindingKey]domain.ProjectBinding
}

// NewBindingStore creates a new in-memory binding store.
func NewBindingStore() *BindingStore {
	return &BindingStore{
		bindings: make(map[bindingKey]domain.ProjectBinding),
	}
}

// Save stores or replaces the binding for (project, provider).
func (s *BindingStore) Save(_ context.Context, binding domain.ProjectBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[bindingKey{binding.ProjectID, binding.ProviderID}] = binding
	return nil
}

// Get retrieves the binding for (project, provider).
func (s *BindingStore) Get(_ context.Context, projectID string, provider domain.ProviderID) (*domain.ProjectBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	binding, ok := s.bindings[bindingKey{projectID, provider}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &binding, nil
}

// List returns all bindings for a project.
func (s *BindingStore) List(_ context.Context, projectID string) ([]domain.ProjectBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ProjectBinding, 0)
	for key, binding := range s.bindings {
		if key.project == projectID {
			result = append(result, binding)
		}
	}
	return result, nil
}

// Delete removes the binding for (project, provider).
func (s *BindingStore) Delete(_ context.Context, projectID string, provider domain.ProviderID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bindings, bindingKey{projectID, provider})
	return nil
}
