package industry

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

func TestHandler_CreateAndGetBySlug(t *testing.T) {
	r := setupRouter(t)

	body := `{
		"slug": "retail",
		"translations": {"id": {"name": "Ritel"}},
		"problems": [{"translations": {"id": {"title": "Stok"}}}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/industries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d (%s)", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/industries/retail?locale=en", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var resp struct {
		Data struct {
			Name string `json:"name"`
			Problems []struct {
				Title string `json:"title"`
			} `json:"problems"`
			Solutions []any `json:"solutions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Name != "Ritel" || len(resp.Data.Problems) != 1 || resp.Data.Problems[0].Title != "Stok" {
		t.Errorf("unexpected industry %+v", resp.Data)
	}
	if resp.Data.Solutions == nil {
		t.Error("expected an empty solutions array, not null")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/public/industries/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown slug status = %d, want 404", w.Code)
	}
}
