// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BackendGateway: The dashboard backend collaborator (auth URLs,
//     resource discovery, binding commits, fallback code exchange)
//   - Windowing: Opens and observes authorization windows
//   - MessageBus: Delivers cross-context authorization messages
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - BindingStore / EventStore: Local records of bindings and connection
//     history. Without them, `bindings list` is unavailable offline.
//   - DescriptorStore: Provider descriptor overlay from configuration.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
