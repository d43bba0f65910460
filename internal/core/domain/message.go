package domain

// AuthMessage is the structured signal posted from the callback context to
// the session that opened the authorization window.
//
// Receivers must validate BOTH the origin and the type before acting on a
// message. A message failing either check is ignored silently, never surfaced.
type AuthMessage struct {
	// Origin is the origin the message was posted from. Only messages from
	// the application's own origin are trusted.
	Origin string

	// Type is the provider-specific message type
	// (e.g. "GOOGLE_ANALYTICS_OAUTH_SUCCESS").
	Type string

	// ProjectID carries the project the authorization was performed for.
	// Set on success messages.
	ProjectID string

	// Error carries the provider's error text. Set on error messages.
	Error string
}
