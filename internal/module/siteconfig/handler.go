package siteconfig

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/middleware"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Handler handles HTTP requests for site configs.
type Handler struct {
	svc Service
}

// NewHandler creates a new Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListPublic handles GET /public/site-configs.
func (h *Handler) ListPublic(c *gin.Context) {
	configs, err := h.svc.ListPublic(c.Request.Context(), c.Query("category"), middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "site configs retrieved", configs)
}

// List handles GET /admin/site-configs.
func (h *Handler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), pkg.ParsePageRequest(c, DefaultLimit))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "site configs retrieved", page)
}

// Get handles GET /admin/site-configs/:key.
func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.svc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "site config retrieved", cfg)
}

// Set handles PUT /admin/site-configs/:key.
func (h *Handler) Set(c *gin.Context) {
	var req SetRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	cfg, err := h.svc.Set(c.Request.Context(), c.Param("key"), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "site config saved", cfg)
}

// BulkSet handles PUT /admin/site-configs.
func (h *Handler) BulkSet(c *gin.Context) {
	var req BulkRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	pkg.Success(c, "site configs saved", h.svc.BulkSet(c.Request.Context(), req.Configs))
}

// Delete handles DELETE /admin/site-configs/:key.
func (h *Handler) Delete(c *gin.Context) {
	result, err := h.svc.Delete(c.Request.Context(), c.Param("key"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "site config deleted", result)
}
