package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ProviderID identifies a third-party platform a project can be bound to.
type ProviderID string

// Built-in providers. Each one maps to a dashboard integration.
const (
	ProviderGoogleAnalytics ProviderID = "google_analytics"
	ProviderSearchConsole   ProviderID = "search_console"
	ProviderGoogleAds       ProviderID = "google_ads"
	ProviderMetaAds         ProviderID = "meta_ads"
	ProviderFacebookPages   ProviderID = "facebook_pages"
	ProviderInstagram       ProviderID = "instagram"
	ProviderLinkedIn        ProviderID = "linkedin"
	ProviderTikTok          ProviderID = "tiktok"
	ProviderYouTube         ProviderID = "youtube"
	ProviderMailchimp       ProviderID = "mailchimp"
	ProviderDropbox         ProviderID = "dropbox"
)

// ProviderDescriptor is the declarative, immutable configuration for one
// provider's connection flow. All provider variation lives here; the
// connection state machine itself is provider-agnostic.
type ProviderDescriptor struct {
	// ID is the unique provider identifier.
	ID ProviderID

	// Name is the human-readable provider name (e.g. "Google Analytics").
	Name string

	// ResourceNoun names what the user is choosing: "property", "ad account",
	// "page", "folder". Used only in UX text.
	ResourceNoun string

	// AuthURLPath is the backend path that issues an authorization URL.
	AuthURLPath string

	// ResourceListPath is the backend path that lists candidate resources.
	ResourceListPath string

	// CommitPath is the backend path that persists a chosen binding.
	CommitPath string

	// ExchangePath is the backend path for the direct code exchange used by
	// the redirect fallback when no session is listening.
	ExchangePath string

	// SuccessMessageType is the message type the callback emits on success.
	// Must be unique across all registered providers.
	SuccessMessageType string

	// ErrorMessageType is the message type the callback emits on failure.
	// Must be unique across all registered providers.
	ErrorMessageType string

	// ProjectBindingField is the field on the project record that the chosen
	// resource id occupies (e.g. "ga4PropertyId").
	ProjectBindingField string

	// ResourceIDPattern optionally constrains manually entered resource ids,
	// as a regexp source (e.g. `^\d{10}$` for a Google Ads customer id).
	// Empty means any non-empty entry is accepted.
	ResourceIDPattern string
}

// Validate checks the descriptor is complete enough to drive a flow.
func (d ProviderDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: provider id is required", ErrInvalidInput)
	}
	for field, val := range map[string]string{
		"authUrlPath":         d.AuthURLPath,
		"resourceListPath":    d.ResourceListPath,
		"commitPath":          d.CommitPath,
		"successMessageType":  d.SuccessMessageType,
		"errorMessageType":    d.ErrorMessageType,
		"projectBindingField": d.ProjectBindingField,
	} {
		if val == "" {
			return fmt.Errorf("%w: provider %s: %s is required", ErrInvalidInput, d.ID, field)
		}
	}
	if d.SuccessMessageType == d.ErrorMessageType {
		return fmt.Errorf("%w: provider %s: success and error message types must differ", ErrInvalidInput, d.ID)
	}
	if d.ResourceIDPattern != "" {
		if _, err := regexp.Compile(d.ResourceIDPattern); err != nil {
			return fmt.Errorf("%w: provider %s: bad resource id pattern: %v", ErrInvalidInput, d.ID, err)
		}
	}
	return nil
}

// DisplayName returns the provider name, falling back to the id.
func (d ProviderDescriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return strings.ReplaceAll(string(d.ID), "_", " ")
}
