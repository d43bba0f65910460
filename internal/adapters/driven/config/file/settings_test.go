package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultBackendURL, settings.BackendURL)
	assert.Equal(t, DefaultAppOrigin, settings.AppOrigin)
	assert.Equal(t, DefaultCallbackAddr, settings.CallbackAddr)
	assert.Empty(t, settings.APIToken)
}

func TestLoadSettingsFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
backend_url = "https://staging.pulseboard.test"
api_token = "tok-123"
app_origin = "https://staging.pulseboard.test"
callback_addr = "127.0.0.1:9999"
data_dir = "/tmp/pulseboard-test"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.pulseboard.test", settings.BackendURL)
	assert.Equal(t, "tok-123", settings.APIToken)
	assert.Equal(t, "https://staging.pulseboard.test", settings.AppOrigin)
	assert.Equal(t, "127.0.0.1:9999", settings.CallbackAddr)
	assert.Equal(t, "/tmp/pulseboard-test", settings.DataDir)
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte(`api_token = "tok-456"`), 0600))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "tok-456", settings.APIToken)
	assert.Equal(t, DefaultBackendURL, settings.BackendURL)
	assert.Equal(t, DefaultCallbackAddr, settings.CallbackAddr)
}

func TestLoadSettingsMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte(`backend_url = [not toml`), 0600))

	_, err := LoadSettings(dir)
	assert.Error(t, err)
}
