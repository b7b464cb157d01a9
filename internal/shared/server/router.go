package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chistym17/jobgenie/internal/resumes"
	"github.com/chistym17/jobgenie/internal/shared/config"
	"github.com/chistym17/jobgenie/internal/shared/metrics"
	"github.com/chistym17/jobgenie/internal/shared/server/middleware"
	"github.com/chistym17/jobgenie/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config  config.Config
	Resumes *resumes.Handler
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
	if deps.Resumes != nil {
		deps.Resumes.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
