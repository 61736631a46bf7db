package app

import (
	"github.com/auto-explainer/core/internal/middleware"
	"github.com/auto-explainer/core/internal/modules/project"
	"github.com/auto-explainer/core/internal/modules/system/core/health"
	"github.com/auto-explainer/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	api := a.router.Group("/api")

	health.RegisterRoutes(a.router, api, a.db, health.EnvFlags{
		DatabaseURL:  a.cfg.Database.URLFromEnv,
		DatabaseName: a.cfg.Database.NameFromEnv,
	})

	var ingestMW []gin.HandlerFunc
	if a.idempotenceEnabled() {
		ingestMW = append(ingestMW, middleware.Idempotence(a.redis.Raw()))
	}

	store := project.NewMongoStore(a.db.Collection(project.CollectionName))
	fetcher := project.NewHTTPFetcher(a.cfg.Fetch.Timeout, a.cfg.Fetch.MaxChars)
	svc := project.NewService(store, fetcher, a.files, a.logger)
	project.NewHandler(svc, a.logger).RegisterRoutes(api, ingestMW...)

	a.router.NoRoute(response.NotFound)
	a.router.NoMethod(response.MethodNotAllowed)
}
