package domain

import "time"

// Phase is the connection state machine's current state.
type Phase int

const (
	// PhaseInit is the resting state: no session, or a dismissed/failed one.
	PhaseInit Phase = iota

	// PhaseAuthorizing means the authorization window is open and the session
	// is waiting for it to settle.
	PhaseAuthorizing

	// PhaseSelecting means authorization succeeded and the user is choosing
	// a resource (or entering one manually).
	PhaseSelecting

	// PhaseBound is terminal: the binding has been committed.
	PhaseBound
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseAuthorizing:
		return "authorizing"
	case PhaseSelecting:
		return "selecting"
	case PhaseBound:
		return "bound"
	default:
		return "unknown"
	}
}

// SettleKind classifies how an authorization window session ended.
type SettleKind int

const (
	// SettleSuccess means a success message arrived from the callback.
	SettleSuccess SettleKind = iota

	// SettleError means the window could not open or the provider reported
	// an error. Inspect SettleResult.Err for the cause.
	SettleError

	// SettleCancelled means the window was closed with no message observed
	// within the grace window.
	SettleCancelled
)

// String returns the settle kind name.
func (k SettleKind) String() string {
	switch k {
	case SettleSuccess:
		return "success"
	case SettleError:
		return "error"
	case SettleCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// SettleResult is the single authoritative outcome of one authorization
// window session. Exactly one is produced per session.
type SettleResult struct {
	// Kind classifies the outcome.
	Kind SettleKind

	// ProjectID is set on success: the project the authorization was for.
	ProjectID string

	// Err is set on error: ErrPopupBlocked, or a provider failure wrapping
	// ErrAuthDenied.
	Err error
}

// ConnectionSession tracks one attempt to bind a project to a provider
// account. Created on a connect action, destroyed when dismissed or when a
// terminal phase is reached.
type ConnectionSession struct {
	// ID is a unique session identifier.
	ID string

	// ProviderID is the provider being connected.
	ProviderID ProviderID

	// ProjectID is the project being bound.
	ProjectID string

	// Phase is the current state machine phase.
	Phase Phase

	// StartedAt is when the session was created.
	StartedAt time.Time
}

// ConnectionState is the user-visible snapshot of a session, handed to the
// driving side after each transition.
type ConnectionState struct {
	// Phase is the state machine phase after the transition.
	Phase Phase

	// Resources is the candidate list fetched for selection. May be empty.
	Resources []CandidateResource

	// ManualOnly is true when discovery failed or returned nothing, so the
	// selector must offer manual entry instead of a list.
	ManualOnly bool

	// Notice is optional user-visible text (e.g. why manual entry is shown).
	Notice string
}

// ConnectionEvent is an audit record of a session transition or outcome,
// kept locally so connection history survives the process.
type ConnectionEvent struct {
	// ID is a unique event identifier.
	ID string

	// ProjectID and ProviderID scope the event.
	ProjectID  string
	ProviderID ProviderID

	// Outcome names what happened: "authorized", "cancelled", "bound",
	// "commit_failed", ...
	Outcome string

	// Detail carries optional free-form context (error text, resource id).
	Detail string

	// At is when the event occurred.
	At time.Time
}
