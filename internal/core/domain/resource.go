package domain

import (
	"strings"
	"time"
)

// CandidateResource is a provider-scoped object (property, ad account, page,
// folder) that a project can be bound to. Metadata is display/search-only and
// never participates in identity.
type CandidateResource struct {
	// ID is the provider-side identifier. The only field used for identity.
	ID string `json:"id"`

	// DisplayLabel is the human-readable name shown during selection.
	DisplayLabel string `json:"displayLabel"`

	// Metadata carries provider-specific display attributes
	// (category, currency, follower count, ...).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Matches reports whether the resource matches a free-text query.
// Case-insensitive substring match against the label, the raw id,
// and all metadata values. An empty query matches everything.
func (r CandidateResource) Matches(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.DisplayLabel), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.ID), query) {
		return true
	}
	for _, v := range r.Metadata {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// ManualResource wraps a manually entered identifier in the
// CandidateResource shape. Manual entries carry no metadata.
func ManualResource(id string) CandidateResource {
	return CandidateResource{ID: id, DisplayLabel: id}
}

// ProjectBinding is the persisted association between a project and a chosen
// resource id for one provider. The backend is authoritative for Value.
type ProjectBinding struct {
	// ProjectID is the dashboard project the binding belongs to.
	ProjectID string

	// ProviderID identifies the provider the binding is for.
	ProviderID ProviderID

	// Field is the project record field the binding occupies.
	Field string

	// Value is the committed resource id, as echoed by the backend.
	Value string

	// Warning is set when the echoed value differed from the requested one.
	// Non-fatal: indicates backend-side normalisation, not a client bug.
	Warning string

	// CommittedAt is when the binding was committed.
	CommittedAt time.Time
}

// ProjectRecord is the slice of the backend project entity the orchestrator
// reads: the id and the per-provider binding fields.
type ProjectRecord struct {
	ID       string            `json:"id"`
	Name     string            `json:"name,omitempty"`
	Bindings map[string]string `json:"bindings,omitempty"`
}

// BindingValue returns the value of a binding field, if present.
func (p ProjectRecord) BindingValue(field string) (string, bool) {
	v, ok := p.Bindings[field]
	return v, ok
}
