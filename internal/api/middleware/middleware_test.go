package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/x", handlers...)
	return r
}

func TestRequireAuth(t *testing.T) {
	valid := signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "1", "role": "editor"})
	wrongKey := signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "1"})
	expired := signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"Header", "Bearer " + valid, "", http.StatusNoContent},
		{"Query", "", "?token=" + valid, http.StatusNoContent},
		{"Missing", "", "", http.StatusUnauthorized},
		{"Wrong Key", "Bearer " + wrongKey, "", http.StatusUnauthorized},
		{"Expired", "Bearer " + expired, "", http.StatusUnauthorized},
		{"Not Bearer", "Basic abc", "", http.StatusUnauthorized},
	}

	r := newRouter(RequireAuth(secret))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"editor", http.StatusNoContent},
		{"admin", http.StatusNoContent},
		{"listener", http.StatusForbidden},
	}

	r := newRouter(RequireAuth(secret), RequireRole("editor"))
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			tok := signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"sub": "1", "role": tt.role})
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("generated request id = %q, want a UUID", w.Header().Get(RequestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request id = %q, want the caller's", got)
	}
}

func TestClientGone(t *testing.T) {
	pipe := &net.OpError{Op: "write", Err: os.NewSyscallError("write", syscall.EPIPE)}
	refused := &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}

	if !clientGone(pipe) {
		t.Error("broken pipe should be treated as a client disconnect")
	}
	if clientGone(refused) {
		t.Error("connection refused is not a client disconnect")
	}
	if clientGone(os.ErrNotExist) {
		t.Error("plain errors are not client disconnects")
	}
}
