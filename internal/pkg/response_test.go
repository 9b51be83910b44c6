package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/domain"
)

// newResponseTestContext creates a gin context backed by an httptest.ResponseRecorder.
func newResponseTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

// newResponseTestContextWithBody creates a gin context with a JSON request body.
func newResponseTestContextWithBody(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

type testText struct {
	PlanName string `json:"planName" binding:"required,max=10"`
}

type testInput struct {
	PlanCode     string                     `json:"planCode" binding:"required"`
	MinUsers     int                        `json:"minUsers" binding:"gte=1"`
	Currency     string                     `json:"currency" binding:"omitempty,len=3"`
	Translations map[domain.Locale]testText `json:"translations" binding:"required,dive"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestSuccess(t *testing.T) {
	c, w := newResponseTestContext()
	Success(c, "plan retrieved", map[string]string{"planCode": "STARTER"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := decodeResponse(t, w)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
	if body["message"] != "plan retrieved" {
		t.Errorf("expected message, got %v", body["message"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["planCode"] != "STARTER" {
		t.Errorf("unexpected data: %v", body["data"])
	}
	if ts, _ := body["timestamp"].(string); ts == "" {
		t.Error("expected timestamp")
	}
	if _, ok := body["pagination"]; ok {
		t.Error("pagination must be omitted for single resources")
	}
}

func TestSuccess_NilDataOmitted(t *testing.T) {
	c, w := newResponseTestContext()
	Success(c, "ok", nil)

	body := decodeResponse(t, w)
	if _, ok := body["data"]; ok {
		t.Errorf("expected data to be omitted, got %v", body["data"])
	}
}

func TestCreated(t *testing.T) {
	c, w := newResponseTestContext()
	Created(c, "created", map[string]int{"id": 1})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}
}

func TestError_AppErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", domain.NotFoundError("faq"), http.StatusNotFound, "faq not found"},
		{"conflict", domain.ConflictError("pricing plan", "planCode", "STARTER"), http.StatusConflict, "pricing plan with planCode 'STARTER' already exists"},
		{"validation", domain.ValidationFailed("bad locale"), http.StatusBadRequest, "bad locale"},
		{"unauthorized", domain.Unauthorized("unauthorized"), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", domain.Forbidden("forbidden"), http.StatusForbidden, "forbidden"},
		{"internal app error hides message", domain.Internal("database error", errors.New("disk full")), http.StatusInternalServerError, "internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext()
			Error(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			body := decodeResponse(t, w)
			if body["success"] != false {
				t.Errorf("expected success=false, got %v", body["success"])
			}
			if body["message"] != tt.wantMsg {
				t.Errorf("message = %v, want %q", body["message"], tt.wantMsg)
			}
			if strings.Contains(w.Body.String(), "disk full") {
				t.Error("internal error detail leaked into response")
			}
		})
	}
}

func TestList(t *testing.T) {
	c, w := newResponseTestContext()
	page := NewPageResult([]string{"a", "b"}, 12, domain.PageRequest{Page: 2, Limit: 5})
	List(c, "items retrieved", page)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := decodeResponse(t, w)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 items in data, got %v", body["data"])
	}
	p, ok := body["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("expected pagination object, got %v", body["pagination"])
	}
	want := map[string]float64{"page": 2, "limit": 5, "total": 12, "totalPages": 3}
	for k, v := range want {
		if p[k] != v {
			t.Errorf("pagination[%s] = %v, want %v", k, p[k], v)
		}
	}
}

func TestList_EmptyPageKeepsDataArray(t *testing.T) {
	c, w := newResponseTestContext()
	List(c, "items retrieved", &domain.PageResult[string]{Page: 1, Limit: 10})

	body := decodeResponse(t, w)
	items, ok := body["data"].([]any)
	if !ok || len(items) != 0 {
		t.Fatalf("expected empty data array, got %v", body["data"])
	}
}

func TestBindAndValidate_InvalidJSON(t *testing.T) {
	c, w := newResponseTestContextWithBody(`{invalid`)
	var req testInput
	if BindAndValidate(c, &req) {
		t.Fatal("expected BindAndValidate to return false")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	body := decodeResponse(t, w)
	if body["message"] != "invalid request body" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestBindAndValidate_FieldErrorsUseJSONNames(t *testing.T) {
	c, w := newResponseTestContextWithBody(`{"minUsers":0,"currency":"IDRX","translations":{"id":{"planName":""}}}`)
	var req testInput
	if BindAndValidate(c, &req) {
		t.Fatal("expected BindAndValidate to return false")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := make(map[string]string, len(resp.Errors))
	for _, fe := range resp.Errors {
		got[fe.Field] = fe.Message
	}

	want := map[string]string{
		"planCode":                   "is required",
		"minUsers":                   "must be greater than or equal to 1",
		"currency":                   "must have length 3",
		"translations[id].planName": "is required",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("errors[%s] = %q, want %q (all: %v)", field, got[field], msg, got)
		}
	}
}

func TestBindAndValidate_ValidInput(t *testing.T) {
	c, _ := newResponseTestContextWithBody(`{"planCode":"STARTER","minUsers":1,"translations":{"id":{"planName":"Starter"}}}`)
	var req testInput
	if !BindAndValidate(c, &req) {
		t.Fatal("expected BindAndValidate to return true")
	}
	if req.PlanCode != "STARTER" || req.Translations[domain.LocaleID].PlanName != "Starter" {
		t.Errorf("unexpected bound value %+v", req)
	}
}

func TestParseJSONTagName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"name", "name"},
		{"name,omitempty", "name"},
		{"-", ""},
		{",omitempty", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseJSONTagName(tt.tag); got != tt.want {
			t.Errorf("parseJSONTagName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
