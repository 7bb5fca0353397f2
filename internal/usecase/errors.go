package usecase

import (
	"context"
	"errors"
	"fmt"

	"movies-api/internal/data/repository"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
)

type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindNotFound            ErrorKind = "not_found"
	KindConflict            ErrorKind = "conflict"
	KindConcurrencyConflict ErrorKind = "concurrency_conflict"
	KindInternal            ErrorKind = "internal"
)

// Error is returned by every service for outcomes a caller is expected to handle.
// Fields holds per-field validation messages.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of err, or KindInternal for anything that is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func ValidationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func ConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func ConcurrencyConflictError(message string) *Error {
	return &Error{Kind: KindConcurrencyConflict, Message: message}
}

// validate runs struct validation and returns a ValidationError listing the failed fields.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return ValidationError("validation failed: "+utils.FormatValidationErrors(errs), errs)
	}
	return nil
}

func parseID(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ValidationError("invalid "+field, map[string]string{field: "must be a valid id"})
	}
	return id, nil
}

// resolveEditConflict turns a failed versioned write into NotFound when the row is gone,
// or ConcurrencyConflict when it still exists. The check runs in a fresh unit of work
// because the failed one has been rolled back.
func resolveEditConflict(ctx context.Context, store repository.Store, err error, entity string,
	exists func(ctx context.Context, uow repository.UnitOfWork) (bool, error)) error {
	if !errors.Is(err, repository.ErrEditConflict) {
		return err
	}

	uow, beginErr := store.Begin(ctx)
	if beginErr != nil {
		return fmt.Errorf("begin conflict check: %w", beginErr)
	}
	defer uow.Rollback(ctx)

	found, anyErr := exists(ctx, uow)
	if anyErr != nil {
		return fmt.Errorf("conflict check: %w", anyErr)
	}
	if !found {
		return NotFoundError(entity + " not found")
	}
	return &Error{
		Kind:    KindConcurrencyConflict,
		Message: entity + " was modified by another request",
		Err:     err,
	}
}
