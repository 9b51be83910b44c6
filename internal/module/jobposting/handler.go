package jobposting

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/middleware"
	"github.com/simp-lee/sitecms/internal/pkg"
)

// Handler handles HTTP requests for job postings.
type Handler struct {
	svc Service
}

// NewHandler creates a new Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListPublic handles GET /public/job-postings.
func (h *Handler) ListPublic(c *gin.Context) {
	req := pkg.ParsePageRequest(c, DefaultLimit)
	page, err := h.svc.ListPublic(c.Request.Context(), req, middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "job postings retrieved", page)
}

// GetPublic handles GET /public/job-postings/:slug.
func (h *Handler) GetPublic(c *gin.Context) {
	posting, err := h.svc.GetPublic(c.Request.Context(), c.Param("slug"), middleware.GetLocale(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "job posting retrieved", posting)
}

// List handles GET /admin/job-postings.
func (h *Handler) List(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), pkg.ParsePageRequest(c, DefaultLimit))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, "job postings retrieved", page)
}

// Get handles GET /admin/job-postings/:id.
func (h *Handler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	posting, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "job posting retrieved", posting)
}

// Create handles POST /admin/job-postings.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}
	posting, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Created(c, "job posting created", posting)
}

// Update handles PUT /admin/job-postings/:id.
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
	posting, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, "job posting updated", posting)
}

// Delete handles DELETE /admin/job-postings/:id.
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
	pkg.Success(c, "job posting deleted", result)
}
