package jobposting

import "github.com/gin-gonic/gin"

// Module implements the app.Module interface for job postings.
type Module struct {
	handler *Handler
}

// NewModule creates a new Module with the given handler.
// Panics if h is nil.
func NewModule(h *Handler) *Module {
	if h == nil {
		panic("jobposting.NewModule: handler must not be nil")
	}
	return &Module{handler: h}
}

// RegisterRoutes registers the public and admin job posting routes.
func (m *Module) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/job-postings", m.handler.ListPublic)
	public.GET("/job-postings/:slug", m.handler.GetPublic)

	admin.GET("/job-postings", m.handler.List)
	admin.GET("/job-postings/:id", m.handler.Get)
	admin.POST("/job-postings", m.handler.Create)
	admin.PUT("/job-postings/:id", m.handler.Update)
	admin.DELETE("/job-postings/:id", m.handler.Delete)
}
