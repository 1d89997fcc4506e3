package handler

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"

	"github.com/jerrk000/teamify/internal/api/apierr"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/web/middleware"
	"github.com/jerrk000/teamify/internal/web/templates/layout"
	"github.com/jerrk000/teamify/internal/web/templates/pages"
)

func render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}

// renderError shows err as a page, or as a bare fragment for htmx requests
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := apierr.Status(err)
	message := "Something went wrong. Please try again later."
	if status < http.StatusInternalServerError {
		message = errorMessage(err)
	}

	if isHTMX(r) {
		http.Error(w, message, status)
		return
	}
	render(w, r, status, pages.Error(pages.ErrorData{
		PageData: layout.PageData{Title: "Error", Flash: middleware.GetFlash(r.Context())},
		Status:   status,
		Message:  message,
	}))
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrRosterNotFound):
		return "That roster does not exist."
	case errors.Is(err, model.ErrCardNotFound):
		return "That player is no longer on the roster."
	default:
		return err.Error()
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
