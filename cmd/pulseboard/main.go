// Command pulseboard is the Pulseboard CLI: it connects analytics and
// marketing data providers to dashboard projects.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulseboard/pulseboard-cli/internal/adapters/driven/backend"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driven/bus"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driven/config/file"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driven/storage/sqlite"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driven/window"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driving/callback"
	"github.com/pulseboard/pulseboard-cli/internal/adapters/driving/cli"
	"github.com/pulseboard/pulseboard-cli/internal/core/domain"
	"github.com/pulseboard/pulseboard-cli/internal/core/ports/driven"
	"github.com/pulseboard/pulseboard-cli/internal/core/services"
	"github.com/pulseboard/pulseboard-cli/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir, err := file.ConfigDir()
	if err != nil {
		return err
	}
	settings, err := file.LoadSettings(configDir)
	if err != nil {
		return err
	}

	registry := services.NewProviderRegistry()

	// Descriptor overlays extend or replace the builtin providers and are
	// hot-reloaded while the process runs.
	descStore := file.NewDescriptorStore(configDir)
	overlays, err := descStore.Load()
	if err != nil {
		return err
	}
	if err := registry.Apply(overlays); err != nil {
		return err
	}
	stopWatch, err := descStore.Watch(func(descs []domain.ProviderDescriptor) {
		if err := registry.Apply(descs); err != nil {
			logger.Warn("provider overlay rejected: %v", err)
		}
	})
	if err == nil {
		defer stopWatch()
	} else {
		logger.Debug("descriptor watch unavailable: %v", err)
	}

	backendClient := backend.NewClient(settings.BackendURL, settings.APIToken)
	messageBus := bus.New()
	windowing := window.NewBrowser()

	var bindingStore driven.BindingStore
	var eventStore driven.EventStore
	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		// Local records are a convenience; the connection flow works
		// without them.
		logger.Warn("local record store unavailable: %v", err)
	} else {
		defer store.Close()
		bindingStore = store.BindingStore()
		eventStore = store.EventStore()
	}

	gateway := services.NewPersistenceGateway(backendClient, bindingStore, eventStore)
	controller := services.NewConnectionController(
		registry, backendClient, windowing, messageBus, gateway, eventStore,
		settings.AppOrigin, services.SessionTiming{},
	)
	bindingService := services.NewBindingRecordService(bindingStore, eventStore)
	receiver := callback.NewReceiver(registry, messageBus, backendClient, settings.AppOrigin, settings.BackendURL)

	cli.SetServices(&cli.Services{
		Connection:   controller,
		Bindings:     bindingService,
		Registry:     registry,
		CallbackAddr: settings.CallbackAddr,
	})
	cli.SetCallbackReceiver(receiver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.ExecuteContext(ctx)
}
