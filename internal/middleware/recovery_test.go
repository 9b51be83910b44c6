package middleware

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/sitecms/internal/pkg"
)

func TestRecovery(t *testing.T) {
	brokenPipe := &net.OpError{Op: "write", Net: "tcp", Err: os.NewSyscallError("write", syscall.EPIPE)}

	tests := []struct {
		name       string
		handler    gin.HandlerFunc
		wantStatus int
		wantBody   string
		wantLog    []string
		wantNoLog  []string
	}{
		{
			name:       "no panic",
			handler:    func(c *gin.Context) { c.String(http.StatusOK, "ok") },
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "panic before write",
			handler:    func(c *gin.Context) { panic("faq store exploded") },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic recovered", "faq store exploded", "stack=", "path=/run"},
		},
		{
			name: "panic after write",
			handler: func(c *gin.Context) {
				c.String(http.StatusAccepted, "partial")
				panic("late panic")
			},
			wantStatus: http.StatusAccepted,
			wantBody:   "partial",
			wantLog:    []string{"late panic"},
		},
		{
			name:       "broken pipe",
			handler:    func(c *gin.Context) { panic(brokenPipe) },
			wantStatus: http.StatusOK,
			wantLog:    []string{"panic recovered", "broken pipe"},
			wantNoLog:  []string{"stack="},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := gin.New()
			r.Use(Recovery(newTestLogger(&buf)))
			r.GET("/run", tt.handler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/run", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
			log := buf.String()
			for _, s := range tt.wantLog {
				if !strings.Contains(log, s) {
					t.Errorf("log missing %q:\n%s", s, log)
				}
			}
			for _, s := range tt.wantNoLog {
				if strings.Contains(log, s) {
					t.Errorf("log unexpectedly contains %q:\n%s", s, log)
				}
			}
		})
	}
}

func TestRecovery_Envelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(nil))
	r.GET("/panic", func(c *gin.Context) { panic("secret detail") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp pkg.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Message != "internal server error" {
		t.Errorf("unexpected envelope %+v", resp)
	}
	if strings.Contains(w.Body.String(), "secret detail") {
		t.Error("panic value leaked into the response")
	}
}

func TestIsBrokenPipe(t *testing.T) {
	tests := []struct {
		name string
		rec  any
		want bool
	}{
		{"string", "boom", false},
		{"plain error", os.ErrClosed, false},
		{"epipe", &net.OpError{Op: "write", Err: os.NewSyscallError("write", syscall.EPIPE)}, true},
		{"reset", &net.OpError{Op: "write", Err: os.NewSyscallError("write", syscall.ECONNRESET)}, true},
		{"other syscall", &net.OpError{Op: "write", Err: os.NewSyscallError("write", syscall.EINVAL)}, false},
	}
	for _, tt := range tests {
		if got := isBrokenPipe(tt.rec); got != tt.want {
			t.Errorf("%s: isBrokenPipe = %v, want %v", tt.name, got, tt.want)
		}
	}
}
