package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/bankcore/internal/domain"
)

const pgErrUniqueViolation = "23505"

// storageError tags driver errors as domain.ErrStorageFailure. Context
// cancellation is returned unchanged so callers can tell it apart.
func storageError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if errors.Is(err, domain.ErrStorageFailure) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
