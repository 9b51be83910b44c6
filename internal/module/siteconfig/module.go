package siteconfig

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for site configs.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("siteconfig.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin site config routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/site-configs", m.handler.ListPublic)

	admin.GET("/site-configs", m.handler.List)
	admin.PUT("/site-configs", m.handler.BulkSet)
	admin.GET("/site-configs/:key", m.handler.Get)
	admin.PUT("/site-configs/:key", m.handler.Set)
	admin.DELETE("/site-configs/:key", m.handler.Delete)
}
