// Package apierr maps domain errors to stable machine-readable codes and
// HTTP statuses. No raw storage errors are surfaced to clients.
package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwillard/gameroom/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeMissingName       = "MISSING_NAME"
	CodeMissingRoomCode   = "MISSING_ROOM_CODE"
	CodeRoomNotFound      = "ROOM_NOT_FOUND"
	CodeRoomExists        = "ROOM_EXISTS"
	CodeGameNotRegistered = "GAME_NOT_REGISTERED"
	CodeActionNotAllowed  = "ACTION_NOT_ALLOWED"
	CodeConflict          = "CONCURRENT_UPDATE_CONFLICT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomExists):
		return &httpError{http.StatusConflict, APIError{CodeRoomExists, "Room code already exists"}}
	case errors.Is(err, model.ErrMissingName):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingName, "A player name is required"}}
	case errors.Is(err, model.ErrMissingRoomCode):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingRoomCode, "A room code is required"}}
	case errors.Is(err, model.ErrActionNotAllowed):
		return &httpError{http.StatusBadRequest, APIError{CodeActionNotAllowed, "This action is not allowed"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "The room was updated concurrently, try again"}}
	case errors.Is(err, model.ErrGameNotRegistered):
		// Operational misconfiguration, not a client error
		return &httpError{http.StatusInternalServerError, APIError{CodeGameNotRegistered, "Game is not registered"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
