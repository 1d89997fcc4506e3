package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jerrk000/teamify/internal/api/request"
	"github.com/jerrk000/teamify/internal/api/response"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/roster"
)

// RosterHandler handles roster endpoints
type RosterHandler struct {
	rosters *roster.Service
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(rosters *roster.Service) *RosterHandler {
	return &RosterHandler{rosters: rosters}
}

// Create handles POST /api/v1/rosters
func (h *RosterHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.RosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	created, err := h.rosters.Create(r.Context(), req.ModelPlayers())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RosterFromModel(created))
}

// Get handles GET /api/v1/rosters/{code}
func (h *RosterHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.rosters.Get(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(found))
}

// Replace handles PUT /api/v1/rosters/{code}. Mounted teams are re-seeded.
func (h *RosterHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var req request.RosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	replaced, err := h.rosters.Replace(r.Context(), rosterCode(r), req.ModelPlayers())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(replaced))
}

// Delete handles DELETE /api/v1/rosters/{code}
func (h *RosterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.rosters.Delete(r.Context(), rosterCode(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func rosterCode(r *http.Request) model.RosterCode {
	return model.RosterCode(mux.Vars(r)["code"])
}
