package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jerrk000/teamify/internal/middleware"
)

// Logging tags each page request with an id and logs it once it completes
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	requestID := middleware.RequestID()
	logging := middleware.Logging(logger.With(slog.String("component", "web")))
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}
