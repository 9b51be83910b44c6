package feature

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/middleware"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Handler handles HTTP requests for features.
type Handler struct {
	svc Service
}

// NewHandler creates a new Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListPublic handles GET /public/features.
func (h *Handler) ListPublic(c *gin.Context) {
	req := pkg.ParsePageRequest(c, DefaultLimit)
	page, err := h.svc.ListPublic(c.Request.Context(), req, middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "features retrieved", page)
}

// GetPublic handles GET /public/features/:code.
func (h *Handler) GetPublic(c *gin.Context) {
	feature, err := h.svc.GetPublic(c.Request.Context(), c.Param("code"), middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "feature retrieved", feature)
}

// List handles GET /admin/features.
func (h *Handler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), pkg.ParsePageRequest(c, DefaultLimit))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "features retrieved", page)
}

// Get handles GET /admin/features/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	feature, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "feature retrieved", feature)
}

// Create handles POST /admin/features.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	feature, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "feature created", feature)
}

// Update handles PUT /admin/features/:id.
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
	feature, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "feature updated", feature)
}

// Delete handles DELETE /admin/features/:id.
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
	pkg.Success(c, "feature deleted", result)
}
