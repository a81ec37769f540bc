// Package server initializes and runs the authkeeper application: it
// wires configuration, the credential store, the caches, and the HTTP
// endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/cache"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpserver"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/dmitrijs2005/authkeeper/internal/server/shared/db"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	dbManager  db.Manager
	tokenCache *cache.Redis
}

func NewApp(cfg *config.Config) (*App, error) {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})
	logger := logging.NewSlogLogger(slog.New(handler))

	app := &App{
		config:    cfg,
		logger:    logger,
		dbManager: db.NewManager(cfg.DatabaseDSN, logger),
	}

	if cfg.RedisURL != "" {
		tokenCache, err := cache.NewRedis(cfg.RedisURL, logger)
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.tokenCache = tokenCache
	}

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	if err := app.dbManager.Open(ctx); err != nil {
		return fmt.Errorf("store open error: %w", err)
	}
	defer func() {
		if err := app.dbManager.Close(); err != nil {
			app.logger.Error(ctx, "store close error", "error", err)
		}
	}()

	var tokenCache services.TokenCache
	if app.tokenCache != nil {
		if err := app.tokenCache.Open(ctx); err != nil {
			// a dead cache only costs performance; keep going
			app.logger.Warn(ctx, "shared token cache unreachable, degrading to signature verification", "error", err)
		}
		defer func() {
			if err := app.tokenCache.Close(); err != nil {
				app.logger.Error(ctx, "token cache close error", "error", err)
			}
		}()
		tokenCache = app.tokenCache
	}

	service := services.NewAuthService(
		app.dbManager.Users(),
		auth.NewBcryptHasher(app.config.BcryptCost),
		auth.NewJWTCodec([]byte(app.config.SecretKey), app.config.TokenValidity),
		cache.NewLocal(app.config.LocalCacheTTL, app.config.LocalCacheMaxSize),
		tokenCache,
		app.logger,
	)

	srv := httpserver.NewServer(app.config.EndpointAddr, app.logger, service)
	return srv.Run(ctx)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "silent":
		// nothing below this is ever emitted
		return slog.Level(100)
	default:
		return slog.LevelInfo
	}
}
