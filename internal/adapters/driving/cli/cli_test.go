package cli

import (
	"context"
	"sync"

	"github.com/pulseboard/pulseboard-cli/internal/adapters/driving/tui/picker"
	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	coreservices "github.com/pulseboard/pulseboard-cli/internal/core/services"
)

// --- Shared test fakes and wiring ---

// fakeConnectionService implements driving.ConnectionService.
type fakeConnectionService struct {
	mu sync.Mutex

	startState *domain.ConnectionState
	startErr   error

	binding    *domain.ProjectBinding
	confirmErr error
	confirmed  []domain.CandidateResource

	dismissed int
}

func (f *fakeConnectionService) Start(_ context.Context, _ domain.ProviderID, _ string) (*domain.ConnectionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startState, f.startErr
}

func (f *fakeConnectionService) Confirm(_ context.Context, _ domain.ProviderID, _ string, resource domain.CandidateResource) (*domain.ProjectBinding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmErr != nil {
		return nil, f.confirmErr
	}
	f.confirmed = append(f.confirmed, resource)
	if f.binding != nil {
		return f.binding, nil
	}
	return &domain.ProjectBinding{
		ProjectID:  "proj-1",
		ProviderID: "google_analytics",
		Field:      "gaPropertyId",
		Value:      resource.ID,
	}, nil
}

func (f *fakeConnectionService) State(domain.ProviderID, string) domain.ConnectionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startState != nil {
		return *f.startState
	}
	return domain.ConnectionState{Phase: domain.PhaseInit}
}

func (f *fakeConnectionService) Dismiss(domain.ProviderID, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dismissed++
}

// fakeBindingService implements driving.BindingService.
type fakeBindingService struct {
	bindings []domain.ProjectBinding
	events   []domain.ConnectionEvent
	err      error
	removed  []domain.ProviderID
}

func (f *fakeBindingService) List(context.Context, string) ([]domain.ProjectBinding, error) {
	return f.bindings, f.err
}

func (f *fakeBindingService) Get(_ context.Context, _ string, provider domain.ProviderID) (*domain.ProjectBinding, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.bindings {
		if f.bindings[i].ProviderID == provider {
			return &f.bindings[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBindingService) Remove(_ context.Context, _ string, provider domain.ProviderID) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, provider)
	return nil
}

func (f *fakeBindingService) History(context.Context, string) ([]domain.ConnectionEvent, error) {
	return f.events, f.err
}

// testWiring wires fakes into the package-level service vars and returns
// them with a restore func.
type testWiring struct {
	connection *fakeConnectionService
	bindings   *fakeBindingService
}

func setupTestServices() (*testWiring, func()) {
	prevServices := services
	prevReceiver := connectReceiver
	prevPicker := runPicker

	wiring := &testWiring{
		connection: &fakeConnectionService{},
		bindings:   &fakeBindingService{},
	}
	services = &Services{
		Connection:   wiring.connection,
		Bindings:     wiring.bindings,
		Registry:     coreservices.NewProviderRegistry(),
		CallbackAddr: "127.0.0.1:0",
	}
	connectReceiver = nil
	runPicker = func(picker.Options) (domain.CandidateResource, bool, error) {
		return domain.CandidateResource{}, false, nil
	}

	return wiring, func() {
		services = prevServices
		connectReceiver = prevReceiver
		runPicker = prevPicker
	}
}
