package driven

// AuthWindow is a weak handle to an open authorization window. Sessions
// observe it but never own it beyond their own lifetime.
type AuthWindow interface {
	// Closed reports whether the window has been closed by the user.
	// Implementations that cannot observe closure return false forever;
	// the message path then remains the only completion signal.
	Closed() bool

	// Close asks the windowing system to close the window. Best effort.
	Close() error
}

// Windowing is the injectable windowing capability: it opens the provider's
// authorization page in a separate browsing context.
//
// A nil AuthWindow with a nil error means the window was refused (the popup
// blocker case): the caller must settle immediately without installing any
// listener or poll.
type Windowing interface {
	// Open opens the authorization URL in a new window of fixed size,
	// centred where the platform allows, with browser chrome disabled
	// where the platform allows.
	Open(url string) (AuthWindow, error)
}
