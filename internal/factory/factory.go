package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jerrk000/teamify/internal/dependencies/clock"
	"github.com/jerrk000/teamify/internal/dependencies/random"
	"github.com/jerrk000/teamify/internal/model"
	"github.com/jerrk000/teamify/internal/services/grid"
	"github.com/jerrk000/teamify/internal/services/results"
	"github.com/jerrk000/teamify/internal/services/roster"
	"github.com/jerrk000/teamify/internal/storage"
	"github.com/jerrk000/teamify/internal/storage/memory"
	redisstorage "github.com/jerrk000/teamify/internal/storage/redis"
	"github.com/jerrk000/teamify/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	RosterService  *roster.Service
	ResultsService *results.Service
	GridManager    *grid.Manager
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster

	logger      *slog.Logger
	unsubscribe func()
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// GridConfig configures team grid geometry and gestures (optional)
	// If nil, model.DefaultGridConfig() is used
	GridConfig *model.GridConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	gridCfg := model.DefaultGridConfig()
	if cfg.GridConfig != nil {
		gridCfg = *cfg.GridConfig
	}

	return newWithDependencies(store, clock.New(), random.New(), gridCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, gridCfg model.GridConfig, logger *slog.Logger) *App {
	rosterService := roster.New(store, clk, rnd, logger)
	resultsService := results.New(store, clk, logger)
	gridManager := grid.NewManager(rosterService, gridCfg, clk, rnd, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, clk, logger)

	app := &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		RosterService:  rosterService,
		ResultsService: resultsService,
		GridManager:    gridManager,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
		logger:         logger,
	}
	app.unsubscribe = rosterService.SubscribeAll(app.onRosterChange)
	return app
}

// onRosterChange unmounts the teams of deleted rosters and tells live viewers
// about every change
func (a *App) onRosterChange(change model.RosterChange) {
	if change.Deleted {
		a.GridManager.Remove(change.Code)
	}
	a.Broadcaster.RosterChanged(change)
}

// Close unmounts all team sessions, disconnects live viewers and releases the
// storage backend
func (a *App) Close() error {
	a.unsubscribe()
	a.GridManager.Close()
	a.HubManager.Close()

	if closer, ok := a.Storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.Error("failed to close storage", slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}
