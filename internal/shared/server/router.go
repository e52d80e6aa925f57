package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careers-backend/internal/applications"
	googleauth "careers-backend/internal/auth"
	"careers-backend/internal/jobs"
	"careers-backend/internal/positions"
	"careers-backend/internal/shared/config"
	"careers-backend/internal/shared/metrics"
	"careers-backend/internal/shared/server/middleware"
	"careers-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires together.
type RouterDeps struct {
	Config       config.Config
	Positions    *positions.Handler
	Jobs         *jobs.Handler
	Applications *applications.Handler
	GoogleAuth   *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	public := api.Group("")
	public.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: middleware.PublicRules(),
		GroupFor: func(c *gin.Context) string {
			if strings.HasPrefix(c.FullPath(), "/api/v1/applications/submit/") {
				return middleware.GroupSubmit
			}
			return ""
		},
	}))
	deps.Jobs.RegisterPublicRoutes(public)
	deps.Applications.RegisterPublicRoutes(public)

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.Auth())
	registerMeRoutes(admin)
	deps.Positions.RegisterAdminRoutes(admin)
	deps.Jobs.RegisterAdminRoutes(admin)
	deps.Applications.RegisterAdminRoutes(admin)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
