// Package services implements the driving port interfaces.
// Services contain the core business logic: the provider registry, the
// authorization window session, the connection state machine, resource
// selection, and binding persistence.
//
// Services are pure Go and depend only on domain types and driven ports.
package services
