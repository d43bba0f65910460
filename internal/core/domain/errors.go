package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Connection Errors.

	// ErrPopupBlocked indicates the authorization window could not be opened.
	// The flow aborts; the user must allow the window and retry.
	ErrPopupBlocked = errors.New("authorization window blocked")

	// ErrAuthDenied indicates the provider reported an authorization failure,
	// either via redirect parameters or a posted error message.
	ErrAuthDenied = errors.New("authorization denied")

	// ErrCancelled indicates the user closed the authorization window before
	// completing the flow. Expected interaction, not a failure.
	ErrCancelled = errors.New("authorization cancelled")

	// ErrDiscoveryFailed indicates the candidate resource list could not be
	// fetched after a successful authorization. Recovered locally by falling
	// back to manual resource entry.
	ErrDiscoveryFailed = errors.New("resource discovery failed")

	// ErrCommitFailed indicates the binding commit call failed. Retryable:
	// the selection phase keeps its already-fetched resources.
	ErrCommitFailed = errors.New("binding commit failed")

	// ErrSessionActive indicates a connection session is already running for
	// the same provider and project.
	ErrSessionActive = errors.New("connection session already active")

	// ErrNoAuthURL indicates the backend did not issue an authorization URL.
	ErrNoAuthURL = errors.New("failed to initiate connection")
)
