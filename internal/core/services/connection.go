package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driving"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

// Ensure ConnectionController implements the interface.
var _ driving.ConnectionService = (*ConnectionController)(nil)

type sessionKey struct {
	provider domain.ProviderID
	project  string
}

// liveSession is the controller's record of one running session.
type liveSession struct {
	session domain.ConnectionSession
	state   domain.ConnectionState
	cancel  context.CancelFunc
}

// ConnectionController sequences the provider connection flow:
// request auth URL -> open authorization window -> on settle, fetch
// resources -> selection -> commit -> bound. One parameterised state machine
// serves every provider; all variation comes from the descriptor.
type ConnectionController struct {
	registry  driving.ProviderRegistry
	backend   driven.BackendGateway
	windowing driven.Windowing
	bus       driven.MessageBus
	gateway   *PersistenceGateway
	events    driven.EventStore // optional
	appOrigin string
	timing    SessionTiming

	mu     sync.Mutex
	active map[sessionKey]*liveSession
}

// NewConnectionController creates the controller. events may be nil.
func NewConnectionController(
	registry driving.ProviderRegistry,
	backend driven.BackendGateway,
	windowing driven.Windowing,
	bus driven.MessageBus,
	gateway *PersistenceGateway,
	events driven.EventStore,
	appOrigin string,
	timing SessionTiming,
) *ConnectionController {
	return &ConnectionController{
		registry:  registry,
		backend:   backend,
		windowing: windowing,
		bus:       bus,
		gateway:   gateway,
		events:    events,
		appOrigin: appOrigin,
		timing:    timing.withDefaults(),
		active:    make(map[sessionKey]*liveSession),
	}
}

// Start begins or resumes a connection session.
//
// The idempotent recheck runs first: when the resource list is already
// fetchable (a prior session authorized but never chose a resource), the
// session lands in Selecting without re-running authorization.
func (c *ConnectionController) Start(
	ctx context.Context,
	provider domain.ProviderID,
	projectID string,
) (*domain.ConnectionState, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: project id is required", domain.ErrInvalidInput)
	}
	desc, err := c.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	key := sessionKey{provider: provider, project: projectID}
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	if existing, ok := c.active[key]; ok {
		switch existing.state.Phase {
		case domain.PhaseAuthorizing:
			c.mu.Unlock()
			cancel()
			return nil, domain.ErrSessionActive
		case domain.PhaseSelecting:
			// Resume the pending selection instead of re-authorizing.
			state := existing.state
			c.mu.Unlock()
			cancel()
			return &state, nil
		default:
			// Init or Bound: a fresh attempt replaces it.
			existing.cancel()
		}
	}
	live := &liveSession{
		session: domain.ConnectionSession{
			ID:         uuid.New().String(),
			ProviderID: provider,
			ProjectID:  projectID,
			Phase:      domain.PhaseInit,
			StartedAt:  time.Now(),
		},
		cancel: cancel,
	}
	c.active[key] = live
	c.mu.Unlock()

	// Idempotent recheck: resources already fetchable means a completed
	// authorization is on file and only the selection step is missing.
	if resources, listErr := c.backend.ListResources(ctx, *desc, projectID); listErr == nil {
		logger.Debug("connect %s/%s: resources already fetchable, skipping authorization", projectID, provider)
		return c.enterSelecting(key, *desc, resources, nil), nil
	}

	return c.authorize(ctx, key, *desc, projectID)
}

// authorize runs the Authorizing phase: fetch the auth URL, open the window,
// wait for it to settle, then fetch resources.
func (c *ConnectionController) authorize(
	ctx context.Context,
	key sessionKey,
	desc domain.ProviderDescriptor,
	projectID string,
) (*domain.ConnectionState, error) {
	authURL, err := c.backend.AuthURL(ctx, desc, projectID)
	if err != nil || authURL == "" {
		detail := ""
		if err != nil {
			detail = err.Error()
		}
		c.record(ctx, projectID, desc.ID, "auth_url_failed", detail)
		c.drop(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoAuthURL, err)
		}
		return nil, domain.ErrNoAuthURL
	}

	c.setPhase(key, domain.PhaseAuthorizing)
	popup := NewPopupSession(desc, c.windowing, c.bus, c.appOrigin, c.timing)
	result := popup.Open(ctx, authURL)

	switch result.Kind {
	case domain.SettleCancelled:
		// Expected interaction, not an error banner.
		c.record(ctx, projectID, desc.ID, "cancelled", "")
		c.drop(key)
		return nil, domain.ErrCancelled

	case domain.SettleError:
		c.record(ctx, projectID, desc.ID, "auth_failed", result.Err.Error())
		c.drop(key)
		return nil, result.Err

	case domain.SettleSuccess:
		c.record(ctx, projectID, desc.ID, "authorized", "")
	}

	// Always re-fetch after authorization: the newly granted scope may
	// expose a different resource set than any earlier fetch.
	resources, listErr := c.backend.ListResources(ctx, desc, projectID)
	return c.enterSelecting(key, desc, resources, listErr), nil
}

// enterSelecting transitions the session to Selecting. Discovery failure and
// empty discovery both degrade to manual entry rather than failing the flow.
func (c *ConnectionController) enterSelecting(
	key sessionKey,
	desc domain.ProviderDescriptor,
	resources []domain.CandidateResource,
	listErr error,
) *domain.ConnectionState {
	noun := desc.ResourceNoun
	if noun == "" {
		noun = "resource"
	}

	state := domain.ConnectionState{
		Phase:     domain.PhaseSelecting,
		Resources: resources,
	}
	switch {
	case listErr != nil:
		logger.Debug("connect %s/%s: discovery failed: %v", key.project, key.provider, listErr)
		state.Resources = nil
		state.ManualOnly = true
		state.Notice = fmt.Sprintf("could not load your %s list; enter the %s id manually", noun, noun)
	case len(resources) == 0:
		state.ManualOnly = true
		state.Notice = fmt.Sprintf("no %ss found for this account; enter the %s id manually", noun, noun)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if live, ok := c.active[key]; ok {
		live.session.Phase = domain.PhaseSelecting
		live.state = state
	}
	return &state
}

// Confirm commits the chosen resource. Resources not present in the fetched
// list are treated as manual entries and validated against the provider's
// id pattern before anything reaches the backend.
func (c *ConnectionController) Confirm(
	ctx context.Context,
	provider domain.ProviderID,
	projectID string,
	resource domain.CandidateResource,
) (*domain.ProjectBinding, error) {
	desc, err := c.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	key := sessionKey{provider: provider, project: projectID}
	c.mu.Lock()
	live, ok := c.active[key]
	if !ok || live.state.Phase != domain.PhaseSelecting {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: no selection in progress for %s", domain.ErrInvalidInput, provider)
	}
	discovered := false
	for _, r := range live.state.Resources {
		if r.ID == resource.ID {
			discovered = true
			break
		}
	}
	c.mu.Unlock()

	if !discovered {
		selector, selErr := NewResourceSelector(*desc)
		if selErr != nil {
			return nil, selErr
		}
		if resource, err = selector.Manual(resource.ID); err != nil {
			return nil, err
		}
	}

	binding, err := c.gateway.Commit(ctx, *desc, projectID, resource.ID)
	if err != nil {
		// Retryable: the session stays in Selecting with its resources intact.
		return nil, err
	}

	c.mu.Lock()
	if live, ok := c.active[key]; ok {
		live.session.Phase = domain.PhaseBound
		live.state.Phase = domain.PhaseBound
	}
	c.mu.Unlock()
	return binding, nil
}

// State returns the user-visible session state, or an Init state when no
// session is active.
func (c *ConnectionController) State(provider domain.ProviderID, projectID string) domain.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if live, ok := c.active[sessionKey{provider: provider, project: projectID}]; ok {
		return live.state
	}
	return domain.ConnectionState{Phase: domain.PhaseInit}
}

// Dismiss tears down the session, cancelling any in-flight authorization so
// its listener and poll are released immediately.
func (c *ConnectionController) Dismiss(provider domain.ProviderID, projectID string) {
	c.drop(sessionKey{provider: provider, project: projectID})
}

func (c *ConnectionController) drop(key sessionKey) {
	c.mu.Lock()
	live, ok := c.active[key]
	delete(c.active, key)
	c.mu.Unlock()
	if ok {
		live.cancel()
	}
}

func (c *ConnectionController) setPhase(key sessionKey, phase domain.Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if live, ok := c.active[key]; ok {
		live.session.Phase = phase
		live.state.Phase = phase
	}
}

// record appends an audit event, best effort.
func (c *ConnectionController) record(ctx context.Context, projectID string, provider domain.ProviderID, outcome, detail string) {
	if c.events == nil {
		return
	}
	event := domain.ConnectionEvent{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		ProviderID: provider,
		Outcome:    outcome,
		Detail:     detail,
		At:         time.Now(),
	}
	if err := c.events.Record(ctx, event); err != nil {
		logger.Debug("audit event not recorded: %v", err)
	}
}
