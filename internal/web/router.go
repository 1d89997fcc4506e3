package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jerrk000/teamify/internal/services/grid"
	"github.com/jerrk000/teamify/internal/services/results"
	"github.com/jerrk000/teamify/internal/services/roster"
	"github.com/jerrk000/teamify/internal/web/handler"
	"github.com/jerrk000/teamify/internal/web/middleware"
	"github.com/jerrk000/teamify/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	RosterService  *roster.Service
	ResultsService *results.Service
	GridManager    *grid.Manager
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster
	StaticDir      string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}

	homeHandler := handler.NewHomeHandler()
	rosterHandler := handler.NewRosterHandler(
		cfg.RosterService,
		cfg.ResultsService,
		cfg.GridManager,
		hubManager,
		cfg.Broadcaster,
		cfg.Logger,
	)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Event streams and fragments skip the flash middleware so they never
	// consume a message meant for the next full page
	r.HandleFunc("/rosters/{code}/events", rosterHandler.Events).Methods(http.MethodGet)
	r.HandleFunc("/rosters/{code}/grid", rosterHandler.Grid).Methods(http.MethodGet)
	r.HandleFunc("/rosters/{code}/drop", rosterHandler.Drop).Methods(http.MethodPost)

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())
	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	pages.HandleFunc("/rosters", rosterHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/rosters/open", rosterHandler.Open).Methods(http.MethodPost)
	pages.HandleFunc("/rosters/{code}", rosterHandler.View).Methods(http.MethodGet)
	pages.HandleFunc("/rosters/{code}/randomize", rosterHandler.Randomize).Methods(http.MethodPost)
	pages.HandleFunc("/rosters/{code}/results", rosterHandler.RecordResult).Methods(http.MethodPost)

	return r
}
