package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/simp-lee/sitecms/internal/pkg"
)

const healthPingTimeout = time.Second

// RouteDeps holds all dependencies needed to register routes.
type RouteDeps struct {
	Modules []Module
	DB      *gorm.DB
	// AdminGuards run before every admin route, typically auth and role checks.
	AdminGuards []gin.HandlerFunc
	// MetricsPath mounts the Prometheus handler when non-empty.
	MetricsPath string
}

// RegisterRoutes registers the probes, the metrics endpoint and every module
// under /api/v1/public and /api/v1/admin.
func RegisterRoutes(r *gin.Engine, deps *RouteDeps) error {
	if r == nil {
		return errors.New("router is nil")
	}
	if deps == nil {
		return errors.New("route dependencies are nil")
	}
	if len(deps.Modules) == 0 {
		return errors.New("at least one module is required")
	}

	r.GET("/health", healthHandler(deps.DB))
	if deps.MetricsPath != "" {
		r.GET(deps.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api/v1")
	public := api.Group("/public")
	admin := api.Group("/admin", deps.AdminGuards...)

	for i, m := range deps.Modules {
		if m == nil {
			return fmt.Errorf("module at index %d is nil", i)
		}
		m.RegisterRoutes(public, admin)
	}

	r.NoRoute(noRouteHandler())
	return nil
}

// healthHandler returns a handler that pings the database and reports status.
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus, status, code := "ok", "ok", http.StatusOK
		if err := pingDB(c.Request.Context(), db); err != nil {
			dbStatus, status, code = "error", "degraded", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status": status,
			"components": gin.H{
				"database": dbStatus,
			},
		})
	}
}

func pingDB(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("database is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// noRouteHandler answers unknown paths with the JSON error envelope.
func noRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, pkg.ErrorResponse{Success: false, Message: "route not found"})
	}
}
