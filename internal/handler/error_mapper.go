package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
	"github.com/forgo/foodfest/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Storage failures are logged and reported without their internal detail.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var pd *model.ProblemDetails
	if errors.As(err, &pd) {
		return pd
	}

	// ===== Validation Errors → 422 =====
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return model.NewValidationError(verr.Fields)
	}

	switch {
	case errors.Is(err, service.ErrValidation):
		return model.NewValidationError([]model.FieldError{{Field: "body", Message: err.Error()}})
	case errors.Is(err, service.ErrStallNotFound):
		return model.NewValidationError([]model.FieldError{{Field: "stallId", Message: err.Error()}})

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUnknownQuery):
		return model.NewNotFoundError("query")
	case errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError("record")

	// ===== Forbidden / Conflict =====
	case errors.Is(err, service.ErrSeedDisabled):
		return model.NewForbiddenError(err.Error())
	case errors.Is(err, service.ErrAlreadySeeded),
		errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError(err.Error())

	// ===== Storage Errors → 500 =====
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		slog.Error("storage failure", slog.String("error", err.Error()))
		return model.NewDatabaseError("")

	// ===== Default → 500 =====
	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
		pd.Message = pd.Detail
	}
	return pd
}
