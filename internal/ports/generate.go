// Package ports defines the interfaces the harness core depends on.
// Adapters in internal/adapters implement them; tests use the generated
// mocks in internal/mocks.
//
//go:generate mockery
package ports
