package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jerrk000/teamify/internal/api/request"
	"github.com/jerrk000/teamify/internal/api/response"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/grid"
	"github.com/jerrk000/teamify/internal/services/teams"
)

// TeamsHandler handles the team split endpoints of a roster
type TeamsHandler struct {
	grids *grid.Manager
}

// NewTeamsHandler creates a new teams handler
func NewTeamsHandler(grids *grid.Manager) *TeamsHandler {
	return &TeamsHandler{grids: grids}
}

// Show handles GET /api/v1/rosters/{code}/teams. With width and height query
// parameters the response also carries card and zone geometry.
func (h *TeamsHandler) Show(w http.ResponseWriter, r *http.Request) {
	session, err := h.grids.GetOrCreate(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := teamsResponse(session)

	query := r.URL.Query()
	if query.Has("width") || query.Has("height") {
		width, errW := strconv.ParseFloat(query.Get("width"), 64)
		height, errH := strconv.ParseFloat(query.Get("height"), 64)
		if errW != nil || errH != nil || !model.Finite(width, height) {
			WriteError(w, NewInvalidRequestError("width and height must both be numbers"))
			return
		}

		cards, err := session.CardsAt(width, height)
		if err != nil {
			WriteError(w, err)
			return
		}
		zones, err := session.ZonesAt(width, height)
		if err != nil {
			WriteError(w, err)
			return
		}
		resp = resp.WithGeometry(cards, zones)
	}

	response.JSON(w, http.StatusOK, resp)
}

// Swap handles POST /api/v1/rosters/{code}/teams/swap
func (h *TeamsHandler) Swap(w http.ResponseWriter, r *http.Request) {
	var req request.SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if !model.TeamID(req.From.Team).Valid() || !model.TeamID(req.To.Team).Valid() {
		WriteError(w, model.ErrInvalidTeam)
		return
	}

	session, err := h.grids.GetOrCreate(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	changed, err := session.Engine().SwapAcrossTeams(r.Context(), req.From.Model(), req.To.Model())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamsChange{Changed: changed, Teams: teamsResponse(session)})
}

// Move handles POST /api/v1/rosters/{code}/teams/move
func (h *TeamsHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if !model.TeamID(req.From.Team).Valid() || !model.TeamID(req.ToTeam).Valid() {
		WriteError(w, model.ErrInvalidTeam)
		return
	}

	session, err := h.grids.GetOrCreate(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	changed, err := session.Engine().MoveIntoTeam(r.Context(), req.From.Model(), model.TeamID(req.ToTeam))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamsChange{Changed: changed, Teams: teamsResponse(session)})
}

// Randomize handles POST /api/v1/rosters/{code}/teams/randomize
func (h *TeamsHandler) Randomize(w http.ResponseWriter, r *http.Request) {
	session, err := h.grids.GetOrCreate(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	before := session.Engine().Revision()
	if err := session.Engine().Randomize(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	resp := teamsResponse(session)
	response.JSON(w, http.StatusOK, response.TeamsChange{Changed: resp.Revision != before, Teams: resp})
}

// Drop handles POST /api/v1/rosters/{code}/teams/drop
func (h *TeamsHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req request.DropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.PlayerID == "" {
		WriteError(w, NewInvalidRequestError("player_id is required"))
		return
	}
	if !model.Finite(req.DX, req.DY) {
		WriteError(w, NewInvalidRequestError("dx and dy must be numbers"))
		return
	}

	session, err := h.grids.GetOrCreate(r.Context(), rosterCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	outcome, err := session.DropAt(r.Context(), model.PlayerID(req.PlayerID), req.DX, req.DY, req.Width, req.Height)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamsChange{
		Changed: outcome != teams.OutcomeNone,
		Outcome: string(outcome),
		Teams:   teamsResponse(session),
	})
}

func teamsResponse(session *grid.Session) response.Teams {
	engine := session.Engine()
	return response.TeamsFromModel(session.Code(), engine.Revision(), engine.Partition())
}
