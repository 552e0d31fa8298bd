package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
)

// ValidationError reports input that cannot be stored. Fields maps field
// names to a short reason when the problem is tied to a field.
type ValidationError struct {
	Msg    string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Msg
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Msg + " (" + strings.Join(parts, "; ") + ")"
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Msg: "Datos inválidos", Fields: map[string]string{field: reason}}
}

// NotFoundError is returned when a record id does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Kind, e.ID)
}

// ConflictError is returned when an operation would break a reference.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// OperationError wraps an unexpected storage failure. Msg is safe to show
// to the user; Err keeps the cause for logs.
type OperationError struct {
	Op  string
	Msg string
	Err error
}

func (e *OperationError) Error() string { return e.Msg }

func (e *OperationError) Unwrap() error { return e.Err }

// fail classifies err. Typed store errors pass through, PocketBase field
// validation errors become a ValidationError, missing rows become a
// NotFoundError and anything else is logged and wrapped.
func fail(ctx context.Context, op, msg string, notFound *NotFoundError, err error) error {
	if err == nil {
		return nil
	}

	var (
		ve *ValidationError
		nf *NotFoundError
		ce *ConflictError
		oe *OperationError
	)
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &ce) || errors.As(err, &oe) {
		return err
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for name, fe := range fieldErrs {
			fields[name] = fe.Error()
		}
		return &ValidationError{Msg: "Datos inválidos", Fields: fields}
	}

	if notFound != nil && errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	zerolog.Ctx(ctx).Error().Err(err).Str("op", op).Msg(msg)
	return &OperationError{Op: op, Msg: msg, Err: err}
}
