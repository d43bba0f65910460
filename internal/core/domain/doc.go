// Package domain defines the core business entities for Pulseboard.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ProviderDescriptor: Declarative per-provider connection configuration
//   - ConnectionSession: One attempt to bind a project to a provider account
//   - CandidateResource: A provider-scoped resource a project can bind to
//   - ProjectBinding: The persisted project/resource association
//   - AuthMessage: A cross-context authorization completion signal
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
