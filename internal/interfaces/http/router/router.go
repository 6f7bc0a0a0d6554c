package router

import (
	"net/http"

	"github.com/financetracking/backend/internal/infrastructure/auth"
	"github.com/financetracking/backend/internal/infrastructure/config"
	"github.com/financetracking/backend/internal/infrastructure/logger"
	"github.com/financetracking/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar is implemented by handlers that register their own
// routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router builds the gin engine with the shared middleware stack.
// Registrars added with Register sit behind token authentication;
// public registrars authenticate themselves, like the webhook endpoint
// with its shared secret.
type Router struct {
	cfg       *config.Config
	log       *zap.Logger
	validator *auth.TokenValidator
	public    []RouteRegistrar
	protected []RouteRegistrar
}

// New creates a new Router
func New(cfg *config.Config, log *zap.Logger, validator *auth.TokenValidator) *Router {
	return &Router{
		cfg:       cfg,
		log:       log,
		validator: validator,
	}
}

// Register adds registrars behind token authentication
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.protected = append(r.protected, registrars...)
	return r
}

// RegisterPublic adds registrars outside token authentication
func (r *Router) RegisterPublic(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Setup builds the engine and registers all routes
func (r *Router) Setup() (*gin.Engine, error) {
	if r.cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(r.cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	if r.cfg.Telemetry.TracingEnabled {
		engine.Use(middleware.Tracing(r.cfg.App.Name))
	}
	engine.Use(
		logger.GinMiddleware(r.log),
		logger.Recovery(r.log),
		middleware.Secure(),
		middleware.CORSWithConfig(r.corsConfig()),
		middleware.BodyLimit(r.cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", r.health)
	engine.GET("/ready", r.health)

	api := engine.Group("/api/v1")
	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	authed := api.Group("", middleware.AuthRequired(r.validator, r.log))
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(authed)
	}

	return engine, nil
}

func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": r.cfg.App.Name,
	})
}

// corsConfig merges the configured CORS settings over the defaults
func (r *Router) corsConfig() middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(r.cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = r.cfg.HTTP.CORSAllowOrigins
	}
	if len(r.cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = r.cfg.HTTP.CORSAllowMethods
	}
	if len(r.cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = r.cfg.HTTP.CORSAllowHeaders
	}
	return cors
}
