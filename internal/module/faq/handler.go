package faq

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/middleware"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Handler handles HTTP requests for FAQs.
type Handler struct {
	svc Service
}

// NewHandler creates a new Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListPublic handles GET /public/faqs.
func (h *Handler) ListPublic(c *gin.Context) {
	req := pkg.ParsePageRequest(c, DefaultLimit)
	page, err := h.svc.ListPublic(c.Request.Context(), req, middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "faqs retrieved", page)
}

// GetPublic handles GET /public/faqs/:id.
func (h *Handler) GetPublic(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	faq, err := h.svc.GetPublic(c.Request.Context(), id, middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "faq retrieved", faq)
}

// Categories handles GET /public/faq-categories.
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "faq categories retrieved", categories)
}

// List handles GET /admin/faqs.
func (h *Handler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), pkg.ParsePageRequest(c, DefaultLimit))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "faqs retrieved", page)
}

// Get handles GET /admin/faqs/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	faq, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "faq retrieved", faq)
}

// Create handles POST /admin/faqs.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	faq, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "faq created", faq)
}

// Update handles PUT /admin/faqs/:id.
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
	faq, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "faq updated", faq)
}

// Delete handles DELETE /admin/faqs/:id.
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
	pkg.Success(c, "faq deleted", result)
}
