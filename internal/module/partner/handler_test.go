package partner

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/middleware"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Locale())

	svc := NewService(NewRepository(setupTestDB(t)), nil)
	api := r.Group("/api/v1")
	NewModule(NewHandler(svc)).RegisterRoutes(api.Group("/public"), api.Group("/admin"))
	return r
}

func TestHandler_Flow(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"create", http.MethodPost, "/api/v1/admin/partners",
			`{"partnerCode":"ACME","name":"Acme","partnerType":"client","translations":{"id":{"description":"Klien"}}}`, http.StatusCreated},
		{"invalid website", http.MethodPost, "/api/v1/admin/partners",
			`{"partnerCode":"X","name":"X","partnerType":"client","websiteUrl":"not a url","translations":{"id":{}}}`, http.StatusBadRequest},
		{"duplicate code", http.MethodPost, "/api/v1/admin/partners",
			`{"partnerCode":"ACME","name":"Acme 2","partnerType":"client","translations":{"id":{}}}`, http.StatusConflict},
		{"public get", http.MethodGet, "/api/v1/public/partners/ACME", "", http.StatusOK},
		{"admin list", http.MethodGet, "/api/v1/admin/partners?partnerType=client", "", http.StatusOK},
		{"delete", http.MethodDelete, "/api/v1/admin/partners/1", "", http.StatusOK},
		{"public get after delete", http.MethodGet, "/api/v1/public/partners/ACME", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		var req *http.Request
		if tt.body == "" {
			req = httptest.NewRequest(tt.method, tt.path, nil)
		} else {
			req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Fatalf("%s: status = %d, want %d (%s)", tt.name, w.Code, tt.want, w.Body.String())
		}
	}
}
