// Package conflict classifies Postgres errors that mean an atomic write lost
// a race: unique violations and serialization failures. Callers surface them
// as errs.ErrPersistenceConflict so the operation can be retried with the
// same input.
package conflict

import (
	"errors"

	"warehouse/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes that indicate a retryable transaction conflict.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
)

// Classify wraps err in a PersistenceConflictError when it is a unique
// violation or serialization failure, and returns it unchanged otherwise.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == codeUniqueViolation || pgErr.Code == codeSerializationFailure {
			return errs.NewPersistenceConflictError(operation, err)
		}
	}

	return err
}
