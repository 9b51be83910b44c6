package pricingplan

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for pricing plans.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("pricingplan.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin pricing plan routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/pricing-plans", m.handler.ListPublic)
	public.GET("/pricing-plans/:code", m.handler.GetPublic)

	admin.GET("/pricing-plans", m.handler.List)
	admin.GET("/pricing-plans/:id", m.handler.Get)
	admin.POST("/pricing-plans", m.handler.Create)
	admin.PUT("/pricing-plans/:id", m.handler.Update)
	admin.DELETE("/pricing-plans/:id", m.handler.Delete)
}
