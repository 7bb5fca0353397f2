package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEditConflict = errors.New("edit conflict")
	ErrDuplicate    = errors.New("duplicate record")
	ErrForeignKey   = errors.New("foreign key violation")
)

// Postgres SQLSTATE codes translated into sentinels.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
)

// translateError maps driver errors onto the package sentinels, keeping the original in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	case pgSerializationFailure:
		return fmt.Errorf("%w: %w", ErrEditConflict, err)
	}
	return err
}

// isSentinel reports errors the service layer handles as business outcomes rather than failures.
func isSentinel(err error) bool {
	return errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrForeignKey) ||
		errors.Is(err, ErrEditConflict)
}
