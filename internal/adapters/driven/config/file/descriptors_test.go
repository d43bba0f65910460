package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
)

const overlayTOML = `
[[provider]]
id = "custom_crm"
name = "Custom CRM"
resource_noun = "pipeline"
auth_url_path = "/api/connect/custom_crm/auth-url"
resource_list_path = "/api/connect/custom_crm/pipelines"
commit_path = "/api/connect/custom_crm/commit"
exchange_path = "/api/connect/custom_crm/exchange"
success_message_type = "CUSTOM_CRM_OAUTH_SUCCESS"
error_message_type = "CUSTOM_CRM_OAUTH_ERROR"
project_binding_field = "customCrmPipelineId"
resource_id_pattern = '^pl-\d+$'
`

func TestDescriptorStoreMissingFile(t *testing.T) {
	store := NewDescriptorStore(t.TempDir())
	descs, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, descs)
}

func TestDescriptorStoreLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "providers.toml"), []byte(overlayTOML), 0600))

	store := NewDescriptorStore(dir)
	descs, err := store.Load()
	require.NoError(t, err)
	require.Len(t, descs, 1)

	desc := descs[0]
	assert.Equal(t, domain.ProviderID("custom_crm"), desc.ID)
	assert.Equal(t, "Custom CRM", desc.Name)
	assert.Equal(t, "pipeline", desc.ResourceNoun)
	assert.Equal(t, "CUSTOM_CRM_OAUTH_SUCCESS", desc.SuccessMessageType)
	assert.Equal(t, "customCrmPipelineId", desc.ProjectBindingField)
	assert.Equal(t, `^pl-\d+$`, desc.ResourceIDPattern)
}

func TestDescriptorStoreRejectsInvalidEntry(t *testing.T) {
	dir := t.TempDir()
	broken := `
[[provider]]
id = "half_baked"
name = "Half Baked"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "providers.toml"), []byte(broken), 0600))

	store := NewDescriptorStore(dir)
	_, err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "half_baked")
}

func TestDescriptorStoreRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "providers.toml"),
		[]byte(`[[provider] broken`), 0600))

	store := NewDescriptorStore(dir)
	_, err := store.Load()
	assert.Error(t, err)
}

func TestDescriptorStoreWatchReloads(t *testing.T) {
	dir := t.TempDir()
	store := NewDescriptorStore(dir)

	reloads := make(chan []domain.ProviderDescriptor, 1)
	stop, err := store.Watch(func(descs []domain.ProviderDescriptor) {
		select {
		case reloads <- descs:
		default:
		}
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "providers.toml"), []byte(overlayTOML), 0600))

	select {
	case descs := <-reloads:
		require.Len(t, descs, 1)
		assert.Equal(t, domain.ProviderID("custom_crm"), descs[0].ID)
	case <-time.After(3 * time.Second):
		t.Fatal("watch callback never fired")
	}
}

func TestDescriptorStoreWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewDescriptorStore(dir)

	reloads := make(chan []domain.ProviderDescriptor, 1)
	stop, err := store.Watch(func(descs []domain.ProviderDescriptor) {
		reloads <- descs
	})
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`api_token = "x"`), 0600))

	select {
	case <-reloads:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
