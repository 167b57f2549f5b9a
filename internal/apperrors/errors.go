package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation clashes with the current state of a resource.
var ErrConflict = errors.New("conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
// It is a flavour of ErrConflict.
var ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrConflict)

// ErrInternal indicates an unexpected failure in a dependency or in the service itself.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates that no principal could be resolved for the request.
var ErrUnauthorized = errors.New("unauthorized")

// GenericInternalMessage is the only text ever shown to clients for internal errors.
const GenericInternalMessage = "Internal server error"

// AppError carries an HTTP-ish status code, a client facing message, the error kind
// sentinel and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError builds an AppError, deriving the kind from the status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Kind: kindForCode(code), Err: err}
}

// NewValidationError reports invalid input.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Kind: ErrValidation}
}

// NewNotFoundError reports a missing (or foreign-owned) entity, e.g. "account not found".
func NewNotFoundError(entity string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: entity + " not found", Kind: ErrNotFound}
}

// NewConflictError reports a state conflict such as a duplicate or a referenced resource.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Kind: ErrConflict}
}

// NewInternalError wraps an unexpected failure. The message is logged, never shown.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Kind: ErrInternal, Err: err}
}

func kindForCode(code int) error {
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return ErrInternal
	}
}

// StatusCode maps an error to the HTTP status of its kind.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text a client may see for err.
// Internal failures always collapse to GenericInternalMessage.
func PublicMessage(err error) string {
	if StatusCode(err) >= http.StatusInternalServerError {
		return GenericInternalMessage
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrConflict):
		return ErrConflict.Error()
	}
	return err.Error()
}
