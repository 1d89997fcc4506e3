package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jerrk000/teamify/internal/api/handler"
	"github.com/jerrk000/teamify/internal/api/middleware"
	"github.com/jerrk000/teamify/internal/services/grid"
	"github.com/jerrk000/teamify/internal/services/results"
	"github.com/jerrk000/teamify/internal/services/roster"
	"github.com/jerrk000/teamify/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RosterService  *roster.Service
	ResultsService *results.Service
	GridManager    *grid.Manager
	Broadcaster    *sse.Broadcaster // optional
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	rosterHandler := handler.NewRosterHandler(cfg.RosterService)
	teamsHandler := handler.NewTeamsHandler(cfg.GridManager)
	resultsHandler := handler.NewResultsHandler(cfg.ResultsService, cfg.GridManager, cfg.Broadcaster)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Recovery(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api.HandleFunc("/rosters", rosterHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rosters/{code}", rosterHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rosters/{code}", rosterHandler.Replace).Methods(http.MethodPut)
	api.HandleFunc("/rosters/{code}", rosterHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/rosters/{code}/teams", teamsHandler.Show).Methods(http.MethodGet)
	api.HandleFunc("/rosters/{code}/teams/swap", teamsHandler.Swap).Methods(http.MethodPost)
	api.HandleFunc("/rosters/{code}/teams/move", teamsHandler.Move).Methods(http.MethodPost)
	api.HandleFunc("/rosters/{code}/teams/randomize", teamsHandler.Randomize).Methods(http.MethodPost)
	api.HandleFunc("/rosters/{code}/teams/drop", teamsHandler.Drop).Methods(http.MethodPost)

	api.HandleFunc("/rosters/{code}/results", resultsHandler.Record).Methods(http.MethodPost)
	api.HandleFunc("/rosters/{code}/results", resultsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rosters/{code}/results/tally", resultsHandler.Tally).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
