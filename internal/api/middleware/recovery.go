package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jerrk000/teamify/internal/api/apierr"
	"github.com/jerrk000/teamify/internal/middleware"
)

// Recovery converts panics into a JSON 500
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
