package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	apperrors "github.com/gatherly/gatherly-server/internal/errors"
	"github.com/gatherly/gatherly-server/internal/service"
	"github.com/gatherly/gatherly-server/internal/store"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *apperrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Code:    string(domainErr.Code),
					Message: domainErr.Message,
					Details: domainErr.Details,
				}
			}

			var storeErr *store.Error
			if errors.As(err, &storeErr) {
				return &APIError{
					status:  storeErr.HTTPCode(),
					Code:    statusToCode(storeErr.HTTPCode()),
					Message: storeErr.Message,
				}
			}

			if errors.Is(err, service.ErrStoreUnavailable) {
				return &APIError{
					status:  http.StatusServiceUnavailable,
					Code:    string(apperrors.CodeUnavailable),
					Message: "service temporarily unavailable",
				}
			}
		}

		return &APIError{
			status:  status,
			Code:    statusToCode(status),
			Message: message,
		}
	}
}

// statusToCode maps HTTP status codes to our domain error codes.
func statusToCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(apperrors.CodeValidation)
	case http.StatusUnauthorized:
		return string(apperrors.CodeUnauthorized)
	case http.StatusForbidden:
		return string(apperrors.CodeForbidden)
	case http.StatusNotFound:
		return string(apperrors.CodeNotFound)
	case http.StatusConflict:
		return string(apperrors.CodeConflict)
	case http.StatusServiceUnavailable:
		return string(apperrors.CodeUnavailable)
	default:
		return string(apperrors.CodeInternal)
	}
}
