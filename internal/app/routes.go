package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wordbridge/core/internal/middleware"
	"github.com/wordbridge/core/internal/modules/auth"
	"github.com/wordbridge/core/internal/modules/stats"
	"github.com/wordbridge/core/internal/modules/translate"
	"github.com/wordbridge/core/internal/modules/vocab"
	"github.com/wordbridge/core/internal/pkg/response"
	"github.com/wordbridge/core/internal/pkg/session"
)

func (a *App) registerRoutes() error {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.BadRequest(c, "method not allowed")
	})

	sessions := session.NewStore(a.rc.Raw(), a.sessionTTL())

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.RateLimit(a.rc.Raw()))
	api.Use(sessions.Middleware())

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})
	api.GET("/uptime", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"timestamp": time.Since(processStart).Milliseconds()})
	})

	// Auth
	auth.NewHandler(auth.NewService(a.db.Users(), a.tokenTTL())).RegisterRoutes(api, authMW)

	// Translation
	engine, err := translate.NewEngine(a.cfg.Engine, a.logger)
	if err != nil {
		return fmt.Errorf("translation engine: %w", err)
	}
	store := translate.NewStore(a.db.Translations())
	cache := translate.NewTieredCache(a.rc.Raw())
	translateSvc := translate.NewService(cache, engine, store, a.cfg.Guest.TranslationLimit, a.logger)
	dailyQuotaMW := middleware.DailyQuota(store, a.cfg.DailyLimit)
	translate.NewHandler(translateSvc).RegisterRoutes(api, dailyQuotaMW)

	// Saved vocabulary
	vocab.NewHandler(vocab.NewService(a.db.Translations())).RegisterRoutes(api, authMW)

	// Statistics
	stats.NewHandler(stats.NewService(a.db.Translations())).RegisterRoutes(api, authMW)

	return nil
}

var processStart = time.Now()
