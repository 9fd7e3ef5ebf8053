package service

import (
	"errors"

	"github.com/forgo/foodfest/api/internal/model"
)

// Centralized service layer errors. Handlers map them to problem responses
// in handler.MapServiceError.

// ===== Request Errors =====
var (
	ErrValidation    = errors.New("validation failed")
	ErrStallNotFound = errors.New("referenced stall does not exist")
)

// ===== Report Errors =====
var (
	ErrUnknownQuery = errors.New("unknown query")
)

// ===== Seed Errors =====
var (
	ErrSeedDisabled  = errors.New("seeding is only available in development")
	ErrAlreadySeeded = errors.New("festival already has data")
)

// ValidationError carries per-field problems. It matches ErrValidation and,
// when set, Cause.
type ValidationError struct {
	Fields []model.FieldError
	Cause  error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + e.Fields[0].Field + ": " + e.Fields[0].Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

func invalid(fields []model.FieldError) error {
	return &ValidationError{Fields: fields}
}
