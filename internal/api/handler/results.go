package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jerrk000/teamify/internal/api/request"
	"github.com/jerrk000/teamify/internal/api/response"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/grid"
	"github.com/jerrk000/teamify/internal/services/results"
	"github.com/jerrk000/teamify/internal/web/sse"
)

// ResultsHandler handles match result endpoints
type ResultsHandler struct {
	results     *results.Service
	grids       *grid.Manager
	broadcaster *sse.Broadcaster
}

// NewResultsHandler creates a new results handler. broadcaster may be nil.
func NewResultsHandler(results *results.Service, grids *grid.Manager, broadcaster *sse.Broadcaster) *ResultsHandler {
	return &ResultsHandler{results: results, grids: grids, broadcaster: broadcaster}
}

// Record handles POST /api/v1/rosters/{code}/results. The result is recorded
// against the teams as they are right now.
func (h *ResultsHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req request.RecordResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	code := rosterCode(r)
	session, err := h.grids.GetOrCreate(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	result, err := h.results.Record(r.Context(), code, session.Engine().Partition(), model.TeamID(req.Winner))
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.ResultRecorded(code, result)
	}

	response.JSON(w, http.StatusCreated, response.MatchResultFromModel(*result))
}

// List handles GET /api/v1/rosters/{code}/results
func (h *ResultsHandler) List(w http.ResponseWriter, r *http.Request) {
	history, err := h.results.History(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchResultsFromModel(history))
}

// Tally handles GET /api/v1/rosters/{code}/results/tally
func (h *ResultsHandler) Tally(w http.ResponseWriter, r *http.Request) {
	tally, err := h.results.Tally(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TallyFromModel(tally))
}
