package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/config"
	"github.com/srsedu/registrar-backend/internal/handler"
	"github.com/srsedu/registrar-backend/internal/middleware"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/response"
	"github.com/srsedu/registrar-backend/internal/validator"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Admins   *handler.PrincipalHandler
	Teachers *handler.PrincipalHandler
	Health   *handler.HealthHandler
}

// Deps carries the cross-cutting collaborators the middleware chain needs.
type Deps struct {
	Verifier middleware.TokenVerifier
	// LoginLimiter is optional; nil disables login rate limiting.
	LoginLimiter middleware.Limiter
	Log          zerolog.Logger
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(deps Deps, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	validator.Setup()

	router := gin.New()
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.RequestLogger(deps.Log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Brotli())

	// Health checks.
	router.GET("/health", handlers.Health.Health)
	router.GET("/health/ready", handlers.Health.Ready)

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrRouteNotFound)
	})

	authenticate := middleware.Authenticate(deps.Verifier)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/auth")
	auth.Use(middleware.NoStore())
	{
		login := []gin.HandlerFunc{handlers.Auth.Login}
		if deps.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{middleware.RateLimit(deps.LoginLimiter, deps.Log)}, login...)
		}
		auth.POST("/login", login...)
		auth.GET("/verify", authenticate, handlers.Auth.Verify)
		auth.POST("/logout", authenticate, handlers.Auth.Logout)
	}

	// ─── 2. Principal Groups (JWT + role matrix) ───────────────────────
	registerPrincipalRoutes(router.Group("/api/admins", authenticate), model.RoleAdmin, handlers.Admins)
	registerPrincipalRoutes(router.Group("/api/teachers", authenticate), model.RoleTeacher, handlers.Teachers)

	return router
}

func registerPrincipalRoutes(g *gin.RouterGroup, role model.Role, h *handler.PrincipalHandler) {
	read := middleware.RequirePermission(model.ReadPermission(role))
	write := middleware.RequirePermission(model.WritePermission(role))

	g.GET("", read, h.List)
	g.GET("/:id", read, h.Get)
	g.POST("", write, h.Create)
	g.PUT("/:id", write, h.Update)
	g.DELETE("/:id", write, h.Delete)
}
