package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

// ResourceSelector filters candidate resources and validates manual entries
// for one provider. It is pure logic; the interactive picker in the TUI and
// the --resource flag in the CLI both go through it.
type ResourceSelector struct {
	desc    domain.ProviderDescriptor
	pattern *regexp.Regexp
}

// NewResourceSelector creates a selector for the provider. The descriptor's
// resource id pattern, when present, gates manual entries.
func NewResourceSelector(desc domain.ProviderDescriptor) (*ResourceSelector, error) {
	s := &ResourceSelector{desc: desc}
	if desc.ResourceIDPattern != "" {
		p, err := regexp.Compile(desc.ResourceIDPattern)
		if err != nil {
			return nil, fmt.Errorf("%w: provider %s: bad resource id pattern: %v",
				domain.ErrInvalidInput, desc.ID, err)
		}
		s.pattern = p
	}
	return s, nil
}

// Filter returns the resources matching the free-text query, preserving
// order. An empty query returns the full list.
func (s *ResourceSelector) Filter(resources []domain.CandidateResource, query string) []domain.CandidateResource {
	result := make([]domain.CandidateResource, 0, len(resources))
	for _, r := range resources {
		if r.Matches(query) {
			result = append(result, r)
		}
	}
	return result
}

// ValidateManualID checks a manually entered resource id against the
// provider's pattern. Entries failing validation never reach commit.
func (s *ResourceSelector) ValidateManualID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: %s id must not be empty", domain.ErrInvalidInput, s.noun())
	}
	if s.pattern != nil && !s.pattern.MatchString(id) {
		return fmt.Errorf("%w: %q is not a valid %s id", domain.ErrInvalidInput, id, s.noun())
	}
	return nil
}

// Manual validates a manual entry and wraps it in the CandidateResource
// shape. Manual entries carry no metadata.
func (s *ResourceSelector) Manual(id string) (domain.CandidateResource, error) {
	id = strings.TrimSpace(id)
	if err := s.ValidateManualID(id); err != nil {
		return domain.CandidateResource{}, err
	}
	return domain.ManualResource(id), nil
}

func (s *ResourceSelector) noun() string {
	if s.desc.ResourceNoun != "" {
		return s.desc.ResourceNoun
	}
	return "resource"
}
