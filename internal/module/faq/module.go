package faq

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for FAQs.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("faq.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin FAQ routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/faqs", m.handler.ListPublic)
	public.GET("/faqs/:id", m.handler.GetPublic)
	public.GET("/faq-categories", m.handler.Categories)

	admin.GET("/faqs", m.handler.List)
	admin.GET("/faqs/:id", m.handler.Get)
	admin.POST("/faqs", m.handler.Create)
	admin.PUT("/faqs/:id", m.handler.Update)
	admin.DELETE("/faqs/:id", m.handler.Delete)
}
