// Package kernel contains shared value objects used across the domain model.
// These are the building blocks other aggregates depend on: validated UUID
// identifiers and related primitives. Kernel types are immutable, compared by
// value, and safe for concurrent use.
package kernel
