/*
Package server wires the pages, the A2A surface and the shared middleware
into a single http.Server.
*/
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/nutrigen/internal/a2a"
	"github.com/BerylCAtieno/nutrigen/internal/assets"
	"github.com/BerylCAtieno/nutrigen/internal/config"
	"github.com/BerylCAtieno/nutrigen/internal/nutrition"
	"github.com/BerylCAtieno/nutrigen/internal/session"
	"github.com/BerylCAtieno/nutrigen/internal/web"
)

// Deps are the long-lived services built once at start-up.
type Deps struct {
	Assistant *nutrition.Assistant
	Sessions  *session.Store
	Animation *assets.Animation
}

// NewRouter builds the gin engine.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), web.RequestLogger())
	router.SetHTMLTemplate(web.Templates())

	pages := web.NewHandler(deps.Assistant, deps.Sessions, deps.Animation, cfg.MaxUploadBytes)
	pages.RegisterRoutes(router)

	a2aHandler := a2a.NewA2AHandler(deps.Assistant)
	router.GET("/.well-known/agent.json", a2aHandler.ServeAgentCard)

	agents := router.Group("/a2a")
	agents.Use(cors.New(corsConfig(cfg.CORSOrigins)))
	agents.POST("/nutrition", a2aHandler.HandleNutrition)
	// Group middleware only runs on a matched route, so preflights need one.
	agents.OPTIONS("/nutrition", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:       5 * time.Minute,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// New returns the configured http.Server. Page requests block on the model,
// so WriteTimeout is well above a typical generation time.
func New(cfg *config.Config, deps Deps) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
		WriteTimeout:      3 * time.Minute,
	}
}
