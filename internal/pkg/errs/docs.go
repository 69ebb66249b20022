// Package errs provides standardized error types for the warehouse backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside permitted bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - PersistenceConflictError: For when an atomic write fails on a
//     transaction conflict and the whole attempt was rolled back
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Domain-specific failures (unresolvable materials, unallocatable items) are
// defined next to the services that raise them; this package only carries the
// cross-cutting shapes.
package errs
