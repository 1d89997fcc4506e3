package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jerrk000/teamify/internal/model"
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

// Error codes
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeRosterNotFound   = "ROSTER_NOT_FOUND"
	CodeDuplicatePlayer  = "DUPLICATE_PLAYER"
	CodeInvalidPlayer    = "INVALID_PLAYER"
	CodeInvalidTeam      = "INVALID_TEAM"
	CodeInvalidPointer   = "INVALID_POINTER"
	CodeCardNotFound     = "CARD_NOT_FOUND"
	CodeInvalidContainer = "INVALID_CONTAINER"
	CodeSessionClosed    = "SESSION_CLOSED"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternalError    = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

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

// Status returns the HTTP status err would be written with
func Status(err error) int {
	return toHTTPError(err).status
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrRosterNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRosterNotFound, "Roster not found"}}
	case errors.Is(err, model.ErrDuplicatePlayer):
		return &httpError{http.StatusConflict, APIError{CodeDuplicatePlayer, "Player ids must be unique"}}
	case errors.Is(err, model.ErrEmptyPlayerName):
		// the wrapped message says which player
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, err.Error()}}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, "Team must be team_a or team_b"}}
	case errors.Is(err, model.ErrInvalidPointer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPointer, "No player at that position"}}
	case errors.Is(err, model.ErrCardNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeCardNotFound, "Player is not on the grid"}}
	case errors.Is(err, model.ErrInvalidContainer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidContainer, "Width and height must be positive"}}
	case errors.Is(err, model.ErrSessionClosed):
		return &httpError{http.StatusConflict, APIError{CodeSessionClosed, "Teams were closed, retry the request"}}
	case errors.Is(err, model.ErrCodeExhausted):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeUnavailable, "Could not allocate a roster code"}}
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
