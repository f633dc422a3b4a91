package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyaid/core/internal/modules/processing/ai"
	"github.com/studyaid/core/internal/pkg/response"
)

const (
	bannerText    = "API IS RUNNING :) "
	healthTimeout = 3 * time.Second
)

func (a *App) registerRoutes(svc *ai.Service) {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) { response.Text(c, bannerText) })
	r.GET("/health", a.health)

	ai.NewHandler(svc, a.logger).RegisterRoutes(r.Group(""))
}

// GET /health
func (a *App) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	databaseOK := a.store.Ping(ctx) == nil
	body := gin.H{"status": "ok", "database": databaseOK}
	code := http.StatusOK

	if a.redis != nil {
		redisOK := a.redis.Ping(ctx) == nil
		body["redis"] = redisOK
		if !redisOK {
			databaseOK = false
		}
	}
	if !databaseOK {
		body["status"] = "degraded"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, body)
}
