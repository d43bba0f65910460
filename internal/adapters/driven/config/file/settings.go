package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Defaults applied when config.toml omits a value.
const (
	DefaultBackendURL   = "https://app.pulseboard.io"
	DefaultAppOrigin    = "https://app.pulseboard.io"
	DefaultCallbackAddr = "127.0.0.1:8931"
)

// Settings holds the application configuration read from config.toml.
type Settings struct {
	// BackendURL is the base URL of the dashboard API.
	BackendURL string `toml:"backend_url"`

	// APIToken authenticates the CLI against the dashboard API.
	APIToken string `toml:"api_token"`

	// AppOrigin is the origin completion messages must carry to be accepted.
	AppOrigin string `toml:"app_origin"`

	// CallbackAddr is the listen address for the local callback receiver.
	CallbackAddr string `toml:"callback_addr"`

	// DataDir overrides the local record database location.
	DataDir string `toml:"data_dir"`
}

// ConfigDir returns the pulseboard config directory, creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	dir := filepath.Join(home, ".pulseboard")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}

// LoadSettings reads config.toml from configDir. A missing file yields
// defaults; a malformed file is an error.
func LoadSettings(configDir string) (Settings, error) {
	settings := Settings{
		BackendURL:   DefaultBackendURL,
		AppOrigin:    DefaultAppOrigin,
		CallbackAddr: DefaultCallbackAddr,
	}

	raw, err := os.ReadFile(filepath.Join(configDir, "config.toml"))
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(raw, &settings); err != nil {
		return settings, fmt.Errorf("parsing config: %w", err)
	}
	if settings.BackendURL == "" {
		settings.BackendURL = DefaultBackendURL
	}
	if settings.AppOrigin == "" {
		settings.AppOrigin = DefaultAppOrigin
	}
	if settings.CallbackAddr == "" {
		settings.CallbackAddr = DefaultCallbackAddr
	}
	return settings, nil
}
