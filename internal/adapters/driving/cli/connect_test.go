package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

func runConnectCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		connectProjectFlag = ""
		connectResourceFlag = ""
		if f := connectCmd.Flags().Lookup("project"); f != nil {
			f.Changed = false
		}
		if f := connectCmd.Flags().Lookup("resource"); f != nil {
			f.Changed = false
		}
	}()
	err := rootCmd.Execute()
	return buf.String(), err
}

func selectingState(resources ...domain.CandidateResource) *domain.ConnectionState {
	return &domain.ConnectionState{
		Phase:     domain.PhaseSelecting,
		Resources: resources,
	}
}

func TestConnectCmd_Use(t *testing.T) {
	assert.Equal(t, "connect <provider>", connectCmd.Use)
}

func TestConnectCmd_RequiresProviderArg(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runConnectCommand(t, "connect", "--project", "proj-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestConnectCmd_RequiresProjectFlag(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runConnectCommand(t, "connect", "google_analytics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project")
}

func TestConnectCmd_UnknownProvider(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runConnectCommand(t, "connect", "definitely_not_a_provider", "--project", "proj-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestConnectCmd_BindsResourceFlag(t *testing.T) {
	wiring, cleanup := setupTestServices()
	defer cleanup()

	wiring.connection.startState = selectingState(
		domain.CandidateResource{ID: "GA-100", DisplayLabel: "Marketing Site"},
	)

	out, err := runConnectCommand(t, "connect", "google_analytics",
		"--project", "proj-1", "--resource", "GA-100")
	require.NoError(t, err)
	assert.Contains(t, out, "Connected Google Analytics to project proj-1")
	assert.Contains(t, out, "gaPropertyId = GA-100")

	require.Len(t, wiring.connection.confirmed, 1)
	assert.Equal(t, "Marketing Site", wiring.connection.confirmed[0].DisplayLabel)
	assert.Equal(t, 1, wiring.connection.dismissed)
}

func TestConnectCmd_ResourceFlagNotInList(t *testing.T) {
	wiring, cleanup := setupTestServices()
	defer cleanup()

	wiring.connection.startState = selectingState()

	// Unknown ids are passed through as manual entries; validation happens
	// in the service.
	out, err := runConnectCommand(t, "connect", "google_analytics",
		"--project", "proj-1", "--resource", "GA-999")
	require.NoError(t, err)
	assert.Contains(t, out, "GA-999")
	require.Len(t, wiring.connection.confirmed, 1)
	assert.Equal(t, "GA-999", wiring.connection.confirmed[0].ID)
}

func TestConnectCmd_Cancelled(t *testing.T) {
	wiring, cleanup := setupTestServices()
	defer cleanup()

	wiring.connection.startErr = domain.ErrCancelled

	out, err := runConnectCommand(t, "connect", "google_analytics",
		"--project", "proj-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Connection cancelled.")
}

func TestConnectCmd_PopupBlocked(t *testing.T) {
	wiring, cleanup := setupTestServices()
	defer cleanup()

	wiring.connection.startErr = domain.ErrPopupBlocked

	_, err := runConnectCommand(t, "connect", "google_analytics",
		"--project", "proj-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPopupBlocked)
}

func TestConnectCmd_AuthDenied(t *testing.T) {
	wiring, cleanup := setupTestServices()
	defer cleanup()

	wiring.connection.startErr = domain.ErrAuthDenied

	_, err := runConnectCommand(t, "connect", "google_analytics",
		"--project", "proj-1")
	assert.ErrorIs(t, err, domain.ErrAuthDenied)
}

func TestConnectCmd_CommitFailure(t *testing.T) {
	wiring, cleanup := setupTestServices()
	defer cleanup()

	wiring.connection.startState = selectingState(
		domain.CandidateResource{ID: "GA-100", DisplayLabel: "Marketing Site"},
	)
	wiring.connection.confirmErr = errors.New("backend down")

	_, err := runConnectCommand(t, "connect", "google_analytics",
		"--project", "proj-1", "--resource", "GA-100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind Google Analytics")
}

func TestConnectCmd_PickerAborted(t *testing.T) {
	wiring, cleanup := setupTestServices()
	defer cleanup()

	wiring.connection.startState = selectingState(
		domain.CandidateResource{ID: "GA-100", DisplayLabel: "Marketing Site"},
	)

	// The stubbed picker reports no selection; without an interactive
	// terminal the command errors instead, and both are acceptable here.
	out, err := runConnectCommand(t, "connect", "google_analytics",
		"--project", "proj-1")
	if err != nil {
		assert.Contains(t, err.Error(), "--resource")
		return
	}
	assert.Contains(t, out, "Connection cancelled.")
	assert.Empty(t, wiring.connection.confirmed)
}
