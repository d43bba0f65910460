package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

// Ensure DescriptorStore implements the interface.
var _ driven.DescriptorStore = (*DescriptorStore)(nil)

const descriptorsFile = "providers.toml"

// descriptorDoc is the TOML shape of providers.toml.
type descriptorDoc struct {
	Provider []descriptorEntry `toml:"provider"`
}

type descriptorEntry struct {
	ID                  string `toml:"id"`
	Name                string `toml:"name"`
	ResourceNoun        string `toml:"resource_noun"`
	AuthURLPath         string `toml:"auth_url_path"`
	ResourceListPath    string `toml:"resource_list_path"`
	CommitPath          string `toml:"commit_path"`
	ExchangePath        string `toml:"exchange_path"`
	SuccessMessageType  string `toml:"success_message_type"`
	ErrorMessageType    string `toml:"error_message_type"`
	ProjectBindingField string `toml:"project_binding_field"`
	ResourceIDPattern   string `toml:"resource_id_pattern"`
}

// DescriptorStore loads provider descriptor overlays from providers.toml.
// Entries extend or replace the builtin descriptors by id.
type DescriptorStore struct {
	path string
}

// NewDescriptorStore creates a descriptor store reading from configDir.
func NewDescriptorStore(configDir string) *DescriptorStore {
	return &DescriptorStore{path: filepath.Join(configDir, descriptorsFile)}
}

// Load reads and validates the configured descriptors. A missing file is
// not an error; it means no overlays are configured.
func (s *DescriptorStore) Load() ([]domain.ProviderDescriptor, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", descriptorsFile, err)
	}

	var doc descriptorDoc
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", descriptorsFile, err)
	}

	descs := make([]domain.ProviderDescriptor, 0, len(doc.Provider))
	for _, entry := range doc.Provider {
		desc := domain.ProviderDescriptor{
			ID:                  domain.ProviderID(entry.ID),
			Name:                entry.Name,
			ResourceNoun:        entry.ResourceNoun,
			AuthURLPath:         entry.AuthURLPath,
			ResourceListPath:    entry.ResourceListPath,
			CommitPath:          entry.CommitPath,
			ExchangePath:        entry.ExchangePath,
			SuccessMessageType:  entry.SuccessMessageType,
			ErrorMessageType:    entry.ErrorMessageType,
			ProjectBindingField: entry.ProjectBindingField,
			ResourceIDPattern:   entry.ResourceIDPattern,
		}
		if err := desc.Validate(); err != nil {
			return nil, fmt.Errorf("provider %q: %w", entry.ID, err)
		}
		descs = append(descs, desc)
	}
	return descs, nil
}

// Watch invokes fn with the reloaded descriptors whenever providers.toml
// changes. Reload errors are logged and the previous set stays in effect.
func (s *DescriptorStore) Watch(fn func([]domain.ProviderDescriptor)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	// Watch the directory: editors replace files rather than write in place.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching config directory: %w", err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != descriptorsFile {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				descs, err := s.Load()
				if err != nil {
					logger.Warn("provider overlay reload failed: %v", err)
					continue
				}
				logger.Debug("provider overlay reloaded: %s", summarise(descs))
				fn(descs)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config watcher: %v", err)
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return stop, nil
}

func summarise(descs []domain.ProviderDescriptor) string {
	if len(descs) == 0 {
		return "no overlays"
	}
	ids := make([]string, len(descs))
	for i, d := range descs {
		ids[i] = string(d.ID)
	}
	return strings.Join(ids, ", ")
}
