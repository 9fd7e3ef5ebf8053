package model

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Resource errors (3xxx)
	ErrCodeNotFound ErrorCode = 3001
	ErrCodeConflict ErrorCode = 3002

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeRateLimited  ErrorCode = 4003

	// Internal errors (5xxx)
	ErrCodeInternal    ErrorCode = 5001
	ErrCodeDatabase    ErrorCode = 5002
	ErrCodeUnavailable ErrorCode = 5003
)

const problemBase = "https://foodfest.forgo.software/errors/"

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs.
// Message repeats Detail so clients that only read {message} still get the reason.
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Message  string       `json:"message"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	Code     ErrorCode    `json:"code,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	if p.Message == "" {
		p.Message = p.Detail
		if p.Message == "" {
			p.Message = p.Title
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func newProblem(slug, title string, status int, detail string, code ErrorCode) *ProblemDetails {
	return &ProblemDetails{
		Type:    problemBase + slug,
		Title:   title,
		Status:  status,
		Detail:  detail,
		Message: detail,
		Code:    code,
	}
}

func NewNotFoundError(resource string) *ProblemDetails {
	return newProblem("not-found", "Not Found", http.StatusNotFound,
		fmt.Sprintf("%s not found", resource), ErrCodeNotFound)
}

func NewConflictError(detail string) *ProblemDetails {
	return newProblem("conflict", "Conflict", http.StatusConflict, detail, ErrCodeConflict)
}

func NewValidationError(errors []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errors) > 0 {
		detail = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errors)-1)
		}
	}
	p := newProblem("validation", "Validation Error", http.StatusUnprocessableEntity, detail, ErrCodeValidation)
	p.Errors = errors
	return p
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return newProblem("internal", "Internal Server Error", http.StatusInternalServerError, detail, ErrCodeInternal)
}

func NewDatabaseError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "The data store could not complete the request"
	}
	return newProblem("database", "Internal Server Error", http.StatusInternalServerError, detail, ErrCodeDatabase)
}

func NewUnavailableError(detail string) *ProblemDetails {
	return newProblem("unavailable", "Service Unavailable", http.StatusServiceUnavailable, detail, ErrCodeUnavailable)
}

func NewBadRequestError(detail string) *ProblemDetails {
	return newProblem("bad-request", "Bad Request", http.StatusBadRequest, detail, ErrCodeInvalidInput)
}

func NewForbiddenError(detail string) *ProblemDetails {
	return newProblem("forbidden", "Forbidden", http.StatusForbidden, detail, 0)
}

func NewRateLimitError(retryAfter int) *ProblemDetails {
	return newProblem("rate-limited", "Too Many Requests", http.StatusTooManyRequests,
		fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter), ErrCodeRateLimited)
}
