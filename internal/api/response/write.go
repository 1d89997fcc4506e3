package response

import (
	"encoding/json"
	"net/http"

	"github.com/jerrk000/teamify/internal/api/apierr"
)

// JSON writes a JSON response. The body is encoded before any header is sent so
// that a value which cannot be encoded becomes a 500 instead of a truncated 200.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		body, _ = json.Marshal(apierr.ErrorResponse{Error: apierr.APIError{
			Code:    apierr.CodeInternalError,
			Message: "failed to encode response",
		}})
		status = http.StatusInternalServerError
	}

	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
