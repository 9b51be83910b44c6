package featurepage

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestModuleRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	NewModule(&Handler{}).RegisterRoutes(r.Group("/public"), r.Group("/admin"))

	expected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/public/feature-pages"},
		{http.MethodGet, "/public/feature-pages/:slug"},
		{http.MethodGet, "/admin/feature-pages"},
		{http.MethodGet, "/admin/feature-pages/:id"},
		{http.MethodPost, "/admin/feature-pages"},
		{http.MethodPut, "/admin/feature-pages/:id"},
		{http.MethodDelete, "/admin/feature-pages/:id"},
	}

	registered := make(map[string]bool)
	for _, ri := range r.Routes() {
		registered[ri.Method+":"+ri.Path] = true
	}
	for _, exp := range expected {
		if !registered[exp.method+":"+exp.path] {
			t.Errorf("expected route %s %s to be registered", exp.method, exp.path)
		}
	}
}

func TestNewModule_PanicsOnNilHandler(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewModule() expected panic for nil handler, got none")
		}
	}()

	_ = NewModule(nil)
}
