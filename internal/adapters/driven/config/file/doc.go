// Package file implements file-based configuration using TOML. Application
// settings live in config.toml and provider descriptor overlays in
// providers.toml, both under the pulseboard config directory.
package file
