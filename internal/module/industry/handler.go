package industry

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/middleware"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Handler handles HTTP requests for industries.
type Handler struct {
	svc Service
}

// NewHandler creates a new Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListPublic handles GET /public/industries.
func (h *Handler) ListPublic(c *gin.Context) {
	req := pkg.ParsePageRequest(c, DefaultLimit)
	page, err := h.svc.ListPublic(c.Request.Context(), req, middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "industries retrieved", page)
}

// GetPublic handles GET /public/industries/:slug.
func (h *Handler) GetPublic(c *gin.Context) {
	industry, err := h.svc.GetPublic(c.Request.Context(), c.Param("slug"), middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "industry retrieved", industry)
}

// List handles GET /admin/industries.
func (h *Handler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), pkg.ParsePageRequest(c, DefaultLimit))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "industries retrieved", page)
}

// Get handles GET /admin/industries/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	industry, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "industry retrieved", industry)
}

// Create handles POST /admin/industries.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	industry, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "industry created", industry)
}

// Update handles PUT /admin/industries/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	var req UpdateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	industry, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "industry updated", industry)
}

// Delete handles DELETE /admin/industries/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	result, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "industry deleted", result)
}
