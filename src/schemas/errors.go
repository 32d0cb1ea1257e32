package schemas

import (
	"fmt"
	"net/http"
)

// APIError is the error shape every handler returns on 4xx/5xx. It
// implements the standard Go error interface so the service layer can
// return it directly and controllers only need to pick the status code
// off it.
type APIError struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"` // HTTP status code, not serialized
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError creates a general APIError.
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{
		Success: false,
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// --- Helper constructors for the error taxonomy ---

// NewBadRequestError creates a 400 for malformed input.
func NewBadRequestError(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, "bad_request", message)
}

// NewUnauthorizedError creates a 403 for callers without a case
// relationship. Authentication failures are handled by middleware before
// the service is reached.
func NewUnauthorizedError(message string) *APIError {
	return NewAPIError(http.StatusForbidden, "unauthorized", message)
}

// NewNotFoundError creates a 404 for missing session or case records.
func NewNotFoundError(message string) *APIError {
	return NewAPIError(http.StatusNotFound, "not_found", message)
}

// NewConflictError creates a 409 for transitions the state machine does
// not permit.
func NewConflictError(message string) *APIError {
	return NewAPIError(http.StatusConflict, "conflict", message)
}

// NewRoomProvisioningError creates a 502 when the video provider returned
// a non-2xx or a malformed body. Creation aborts before any persistence.
func NewRoomProvisioningError(message string) *APIError {
	return NewAPIError(http.StatusBadGateway, "room_provisioning_error", message)
}

// NewPersistenceError creates a 500 when a store write failed.
func NewPersistenceError(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, "persistence_error", message)
}
