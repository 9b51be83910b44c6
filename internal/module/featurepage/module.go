package featurepage

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for feature pages.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("featurepage.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin feature page routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/feature-pages", m.handler.ListPublic)
	public.GET("/feature-pages/:slug", m.handler.GetPublic)

	admin.GET("/feature-pages", m.handler.List)
	admin.GET("/feature-pages/:id", m.handler.Get)
	admin.POST("/feature-pages", m.handler.Create)
	admin.PUT("/feature-pages/:id", m.handler.Update)
	admin.DELETE("/feature-pages/:id", m.handler.Delete)
}
