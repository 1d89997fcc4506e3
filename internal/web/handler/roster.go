package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/grid"
	"github.com/jerrk000/teamify/internal/services/results"
	"github.com/jerrk000/teamify/internal/services/roster"
	"github.com/jerrk000/teamify/internal/web/middleware"
	"github.com/jerrk000/teamify/internal/web/sse"
	"github.com/jerrk000/teamify/internal/web/templates/components"
	"github.com/jerrk000/teamify/internal/web/templates/layout"
	"github.com/jerrk000/teamify/internal/web/templates/pages"
)

// Container size used when the page does not say how large its grid is
const (
	DefaultGridWidth  = 640.0
	DefaultGridHeight = 480.0

	maxGridDimension = 4096.0
)

// RosterHandler handles roster pages and team actions
type RosterHandler struct {
	rosters     *roster.Service
	results     *results.Service
	grids       *grid.Manager
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewRosterHandler creates a new RosterHandler
func NewRosterHandler(
	rosters *roster.Service,
	results *results.Service,
	grids *grid.Manager,
	hubManager *sse.HubManager,
	broadcaster *sse.Broadcaster,
	logger *slog.Logger,
) *RosterHandler {
	return &RosterHandler{
		rosters:     rosters,
		results:     results,
		grids:       grids,
		hubManager:  hubManager,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Create handles the new roster form. Names are one per line, blank lines skipped.
func (h *RosterHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	names := r.FormValue("names")
	var players []model.Player
	for _, line := range strings.Split(names, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			players = append(players, model.Player{Name: name})
		}
	}
	if len(players) == 0 {
		render(w, r, http.StatusUnprocessableEntity, pages.Home(pages.HomeData{
			PageData: layout.PageData{
				Title: "Home",
				Flash: &layout.FlashMessage{Type: "error", Message: "Add at least one player"},
			},
			Names: names,
		}))
		return
	}

	created, err := h.rosters.Create(r.Context(), players)
	if err != nil {
		renderError(w, r, err)
		return
	}

	middleware.SetFlash(w, "success", "Roster created")
	http.Redirect(w, r, "/rosters/"+string(created.Code), http.StatusSeeOther)
}

// Open handles the open-by-code form
func (h *RosterHandler) Open(w http.ResponseWriter, r *http.Request) {
	code := model.RosterCode(strings.ToUpper(strings.TrimSpace(r.FormValue("code"))))
	if code == "" {
		middleware.SetFlash(w, "error", "Enter a roster code")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if _, err := h.rosters.Get(r.Context(), code); err != nil {
		if errors.Is(err, model.ErrRosterNotFound) {
			middleware.SetFlash(w, "error", "No roster with code "+string(code))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/rosters/"+string(code), http.StatusSeeOther)
}

// View renders the roster page
func (h *RosterHandler) View(w http.ResponseWriter, r *http.Request) {
	code := rosterCode(r)

	rst, err := h.rosters.Get(r.Context(), code)
	if err != nil {
		renderError(w, r, err)
		return
	}
	gridData, err := h.gridData(r, code)
	if err != nil {
		renderError(w, r, err)
		return
	}
	history, err := h.results.History(r.Context(), code)
	if err != nil {
		renderError(w, r, err)
		return
	}
	tally, err := h.results.Tally(r.Context(), code)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render(w, r, http.StatusOK, pages.Roster(pages.RosterData{
		PageData: layout.PageData{
			Title: "Roster " + string(code),
			Flash: middleware.GetFlash(r.Context()),
		},
		Grid:    gridData,
		Players: rst.Players,
		Results: history,
		Tally:   tally,
	}))
}

// Grid renders just the team grid, for htmx refreshes
func (h *RosterHandler) Grid(w http.ResponseWriter, r *http.Request) {
	h.renderGrid(w, r, rosterCode(r))
}

// Randomize shuffles the roster into new teams
func (h *RosterHandler) Randomize(w http.ResponseWriter, r *http.Request) {
	code := rosterCode(r)

	session, err := h.grids.GetOrCreate(r.Context(), code)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if err := session.Engine().Randomize(r.Context()); err != nil {
		renderError(w, r, err)
		return
	}

	if isHTMX(r) {
		h.renderGrid(w, r, code)
		return
	}
	http.Redirect(w, r, "/rosters/"+string(code), http.StatusSeeOther)
}

// Drop commits a finished drag sent by the grid script
func (h *RosterHandler) Drop(w http.ResponseWriter, r *http.Request) {
	code := rosterCode(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	playerID := model.PlayerID(r.FormValue("player_id"))
	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}
	dx, errX := strconv.ParseFloat(r.FormValue("dx"), 64)
	dy, errY := strconv.ParseFloat(r.FormValue("dy"), 64)
	if errX != nil || errY != nil || !model.Finite(dx, dy) {
		http.Error(w, "dx and dy must be numbers", http.StatusBadRequest)
		return
	}
	width, height := gridSize(r)

	session, err := h.grids.GetOrCreate(r.Context(), code)
	if err != nil {
		renderError(w, r, err)
		return
	}
	outcome, err := session.DropAt(r.Context(), playerID, dx, dy, width, height)
	if err != nil {
		renderError(w, r, err)
		return
	}

	h.logger.Debug("card dropped",
		slog.String("roster_code", string(code)),
		slog.String("player_id", string(playerID)),
		slog.String("outcome", string(outcome)),
	)
	h.renderGrid(w, r, code)
}

// RecordResult stores a match result for the current teams
func (h *RosterHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	code := rosterCode(r)
	back := "/rosters/" + string(code)

	winner := model.TeamID(r.FormValue("winner"))
	if !winner.Valid() {
		middleware.SetFlash(w, "error", "Pick the winning team")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	session, err := h.grids.GetOrCreate(r.Context(), code)
	if err != nil {
		renderError(w, r, err)
		return
	}
	result, err := h.results.Record(r.Context(), code, session.Engine().Partition(), winner)
	if err != nil {
		renderError(w, r, err)
		return
	}
	if h.broadcaster != nil {
		h.broadcaster.ResultRecorded(code, result)
	}

	middleware.SetFlash(w, "success", "Result recorded")
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// Events streams live updates for a roster
func (h *RosterHandler) Events(w http.ResponseWriter, r *http.Request) {
	code := rosterCode(r)

	if _, err := h.rosters.Get(r.Context(), code); err != nil {
		if errors.Is(err, model.ErrRosterNotFound) {
			http.Error(w, "Roster not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(code), code)
}

func (h *RosterHandler) renderGrid(w http.ResponseWriter, r *http.Request, code model.RosterCode) {
	data, err := h.gridData(r, code)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render(w, r, http.StatusOK, components.TeamGrid(data))
}

func (h *RosterHandler) gridData(r *http.Request, code model.RosterCode) (components.GridData, error) {
	session, err := h.grids.GetOrCreate(r.Context(), code)
	if err != nil {
		return components.GridData{}, err
	}

	width, height := gridSize(r)
	cards, err := session.CardsAt(width, height)
	if err != nil {
		return components.GridData{}, err
	}
	zones, err := session.ZonesAt(width, height)
	if err != nil {
		return components.GridData{}, err
	}

	return components.GridData{
		Code:     code,
		Width:    width,
		Height:   height,
		Revision: session.Engine().Revision(),
		Cards:    cards,
		Zones:    zones,
	}, nil
}

// gridSize reads the container size from the request, falling back to the
// default for missing or unusable values
func gridSize(r *http.Request) (float64, float64) {
	return dimension(r.FormValue("width"), DefaultGridWidth), dimension(r.FormValue("height"), DefaultGridHeight)
}

func dimension(raw string, fallback float64) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	// NaN fails every comparison, so test for the valid range
	if err != nil || !(v > 0 && v <= maxGridDimension) {
		return fallback
	}
	return v
}

func rosterCode(r *http.Request) model.RosterCode {
	return model.RosterCode(strings.ToUpper(mux.Vars(r)["code"]))
}
