package industry

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for industries.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("industry.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin industry routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/industries", m.handler.ListPublic)
	public.GET("/industries/:slug", m.handler.GetPublic)

	admin.GET("/industries", m.handler.List)
	admin.GET("/industries/:id", m.handler.Get)
	admin.POST("/industries", m.handler.Create)
	admin.PUT("/industries/:id", m.handler.Update)
	admin.DELETE("/industries/:id", m.handler.Delete)
}
