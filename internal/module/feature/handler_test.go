package feature

import (
	"encoding/json"
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

func serve(r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_PublicUsesAcceptLanguage(t *testing.T) {
	r := setupRouter(t)

	body := `{"featureCode":"PAYROLL","translations":{"id":{"featureName":"Penggajian"},"en":{"featureName":"Payroll"}}}`
	if w := serve(r, http.MethodPost, "/api/v1/admin/features", body, nil); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}

	w := serve(r, http.MethodGet, "/api/v1/public/features/PAYROLL", "", map[string]string{"Accept-Language": "en-US,en;q=0.8"})
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var resp struct {
		Data struct {
			FeatureName string `json:"featureName"`
			Locale      string `json:"locale"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.FeatureName != "Payroll" || resp.Data.Locale != "en" {
		t.Errorf("unexpected localized feature %+v", resp.Data)
	}
}

func TestHandler_Errors(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing translations", http.MethodPost, "/api/v1/admin/features", `{"featureCode":"X"}`, http.StatusBadRequest},
		{"unknown locale", http.MethodPost, "/api/v1/admin/features",
			`{"featureCode":"X","translations":{"id":{"featureName":"a"},"de":{"featureName":"b"}}}`, http.StatusBadRequest},
		{"zero id", http.MethodDelete, "/api/v1/admin/features/0", "", http.StatusBadRequest},
		{"missing", http.MethodPut, "/api/v1/admin/features/5", `{"icon":"x"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := serve(r, tt.method, tt.path, tt.body, nil); w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}
