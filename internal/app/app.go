package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/auto-explainer/core/internal/config"
	"github.com/auto-explainer/core/internal/database"
	"github.com/auto-explainer/core/internal/middleware"
	"github.com/auto-explainer/core/internal/modules/storage/file"
	pkgredis "github.com/auto-explainer/core/internal/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *database.Client
	redis  *pkgredis.Client
	files  *file.Store
	logger *zap.Logger
}

// New initializes the application: DB → Redis → upload store → routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.URL != "" {
		rc, err = pkgredis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, idempotence guard disabled", zap.Error(err))
			rc = nil
		}
	}

	files, err := newFileStore(cfg, logger)
	if err != nil {
		_ = db.Close(ctx)
		if rc != nil {
			_ = rc.Close()
		}
		return nil, err
	}

	configureGinMode(cfg.IsDev())
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	a := &App{cfg: cfg, router: router, db: db, redis: rc, files: files, logger: logger}
	a.registerRoutes()

	logger.Info("app initialized",
		zap.String("database", db.Name()),
		zap.String("uploads", files.Dir()),
		zap.Bool("s3_mirror", cfg.S3.Enable),
		zap.Bool("idempotence", a.idempotenceEnabled()),
	)
	return a, nil
}

func newFileStore(cfg *config.AppConfig, logger *zap.Logger) (*file.Store, error) {
	var mirror file.Mirror
	if cfg.S3.Enable {
		m, err := file.NewS3Mirror(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 mirror: %w", err)
		}
		mirror = m
	}
	store, err := file.NewStore(cfg.UploadDir(), mirror, cfg.S3.Prefix, logger)
	if err != nil {
		return nil, fmt.Errorf("upload store: %w", err)
	}
	return store, nil
}

func (a *App) idempotenceEnabled() bool {
	return a.redis != nil && a.cfg.Redis.Idempotence
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown disconnects mongo and redis.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.db.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}
