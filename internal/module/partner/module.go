package partner

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for partners.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("partner.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin partner routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/partners", m.handler.ListPublic)
	public.GET("/partners/:code", m.handler.GetPublic)

	admin.GET("/partners", m.handler.List)
	admin.GET("/partners/:id", m.handler.Get)
	admin.POST("/partners", m.handler.Create)
	admin.PUT("/partners/:id", m.handler.Update)
	admin.DELETE("/partners/:id", m.handler.Delete)
}
