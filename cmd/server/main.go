package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/jerrk000/teamify/internal/api"
	"github.com/jerrk000/teamify/internal/factory"
	redisstorage "github.com/jerrk000/teamify/internal/storage/redis"
	"github.com/jerrk000/teamify/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	gridCfg, err := factory.GridConfigFromEnv(os.Getenv)
	if err != nil {
		logger.Error("invalid grid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg.GridConfig = &gridCfg

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p < 0 || p > 65535 {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RosterService:  app.RosterService,
		ResultsService: app.ResultsService,
		GridManager:    app.GridManager,
		Broadcaster:    app.Broadcaster,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		RosterService:  app.RosterService,
		ResultsService: app.ResultsService,
		GridManager:    app.GridManager,
		HubManager:     app.HubManager,
		Broadcaster:    app.Broadcaster,
		StaticDir:      findStaticDir(),
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	server := api.NewServer(mux, serverConfig, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server starting",
		slog.Int("port", serverConfig.Port),
		slog.String("storage", storageName(cfg.StorageType)),
	)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// event streams never finish on their own
		app.HubManager.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
		}
	}

	logger.Info("server stopped")
}

func storageName(storageType string) string {
	if storageType == "" {
		return factory.StorageTypeMemory
	}
	return storageType
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
