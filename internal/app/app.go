package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/studyaid/core/internal/config"
	"github.com/studyaid/core/internal/database"
	"github.com/studyaid/core/internal/middleware"
	"github.com/studyaid/core/internal/modules/processing/ai"
	"github.com/studyaid/core/internal/modules/storage/file"
	pkgredis "github.com/studyaid/core/internal/pkg/redis"
	"go.uber.org/zap"
)

const storeConnectTimeout = 10 * time.Second

// FileStore is the read side of file metadata storage.
type FileStore interface {
	ai.FileFinder
	Ping(ctx context.Context) error
	Close() error
}

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  FileStore
	redis  *pkgredis.Client
	logger *zap.Logger
}

// New initializes the application: store → Redis → AI client → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.Enable {
		rc, err = pkgredis.Connect(cfg.Redis.URLValue())
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	client, err := ai.NewCompletionClient(aiConfig(cfg))
	if err != nil {
		_ = store.Close()
		if rc != nil {
			_ = rc.Close()
		}
		return nil, fmt.Errorf("ai: %w", err)
	}
	if cfg.AI.APIKey == "" {
		logger.Warn("AI_KEY is not set, upstream calls will be rejected")
	}

	a := &App{cfg: cfg, store: store, redis: rc, logger: logger}
	a.router = newRouter(cfg, logger, rc)
	a.registerRoutes(ai.NewService(store, client, aiConfig(cfg).ResolvedModel(), logger))
	return a, nil
}

// NewWithStore builds the HTTP surface over an already opened store and
// completion client. Used by tests and embedders.
func NewWithStore(logger *zap.Logger, cfg *config.AppConfig, store FileStore, client ai.CompletionClient) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{cfg: cfg, store: store, logger: logger}
	a.router = newRouter(cfg, logger, nil)
	a.registerRoutes(ai.NewService(store, client, aiConfig(cfg).ResolvedModel(), logger))
	return a
}

func aiConfig(cfg *config.AppConfig) ai.Config {
	return ai.Config{
		Provider: cfg.AI.Provider,
		Endpoint: cfg.AI.Endpoint,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
	}
}

func openStore(cfg *config.AppConfig) (FileStore, error) {
	if cfg.Database.Driver == config.DriverMongoDB {
		ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
		defer cancel()
		return file.NewMongoStore(ctx, cfg.Database.DSNValue(), cfg.Database.Name, cfg.Database.Collection)
	}

	db, err := database.Connect(cfg, cfg.IsDev())
	if err != nil {
		return nil, err
	}
	return file.NewSQLStore(db), nil
}

func newRouter(cfg *config.AppConfig, logger *zap.Logger, rc *pkgredis.Client) *gin.Engine {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))
	if rc != nil {
		router.Use(middleware.RateLimit(rc, cfg.RateLimit.Max, cfg.RateLimit.Window, logger))
	}
	return router
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
	}
	if len(cfg.AllowedOrigins) > 0 && !cfg.IsDev() {
		patterns := cfg.AllowedOrigins
		c.AllowOriginFunc = func(origin string) bool {
			host := extractOriginHost(origin)
			for _, pattern := range patterns {
				if matchOriginPattern(pattern, host) {
					return true
				}
			}
			return false
		}
	} else {
		c.AllowOriginFunc = func(origin string) bool { return true }
	}
	return c
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the store and Redis connections.
func (a *App) Shutdown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
}
