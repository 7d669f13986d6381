package api

import (
	"html/template"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/ladle/api/handler"
	"github.com/use-agent/ladle/api/middleware"
	"github.com/use-agent/ladle/cache"
	"github.com/use-agent/ladle/config"
	"github.com/use-agent/ladle/recipe"
	"github.com/use-agent/ladle/web"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// The web form and health endpoint stay outside auth: the form is the whole
// point for phone use, and monitoring probes must always work.
func NewRouter(p *recipe.Pipeline, rend *recipe.Renderer, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	r.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	// Web form flow.
	r.GET("/", handler.Index())
	r.POST("/", handler.ClipForm(p, cfg))
	r.GET("/result", handler.Result())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Clip
	protected.POST("/clip", handler.Clip(p, rend, cc, cfg))

	return r
}
