package feature

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for features.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("feature.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin feature routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/features", m.handler.ListPublic)
	public.GET("/features/:code", m.handler.GetPublic)

	admin.GET("/features", m.handler.List)
	admin.GET("/features/:id", m.handler.Get)
	admin.POST("/features", m.handler.Create)
	admin.PUT("/features/:id", m.handler.Update)
	admin.DELETE("/features/:id", m.handler.Delete)
}
