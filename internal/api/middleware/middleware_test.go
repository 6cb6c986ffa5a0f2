package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock RateLimiter ──

type mockLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (m *mockLimiter) CheckRateLimit(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	m.keys = append(m.keys, key)
	return m.allowed, m.err
}

func okHandler(c *gin.Context) { c.String(http.StatusOK, "ok") }

// ── RateLimit ──

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		limiter RateLimiter
		limit   int
		want    int
	}{
		{"未配置 Redis 时放行", nil, 10, http.StatusOK},
		{"limit 为 0 时关闭", &mockLimiter{allowed: false}, 0, http.StatusOK},
		{"窗口内允许", &mockLimiter{allowed: true}, 10, http.StatusOK},
		{"超出限制", &mockLimiter{allowed: false}, 10, http.StatusTooManyRequests},
		{"Redis 出错时降级放行", &mockLimiter{err: errors.New("timeout")}, 10, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimit(tt.limiter, tt.limit, time.Minute, zap.NewNop()))
			r.GET("/api/v1/dashboard", okHandler)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/dashboard", nil))

			if w.Code != tt.want {
				t.Errorf("期望 %d，实际 %d", tt.want, w.Code)
			}
		})
	}
}

func TestRateLimit_KeyIncludesRoute(t *testing.T) {
	m := &mockLimiter{allowed: true}
	r := gin.New()
	r.Use(RateLimit(m, 5, time.Minute, zap.NewNop()))
	r.GET("/api/v1/notices", okHandler)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/notices", nil))

	if len(m.keys) != 1 || !strings.HasSuffix(m.keys[0], ":/api/v1/notices") {
		t.Errorf("限流键错误: %v", m.keys)
	}
}

// ── RequestID ──

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("应沿用请求头中的 ID，实际 %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", requestIDMaxLen+1))
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Errorf("过长的 ID 应替换为 UUID，实际 %q", got)
	}
}

// ── BodyLimit ──

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader("1234")))
	if w.Code != http.StatusOK {
		t.Errorf("未超限应为 200，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("超限应为 413，实际 %d", w.Code)
	}
}

// ── CORS ──

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:8080/"}))
	r.GET("/", okHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://localhost:8080")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:8080" {
		t.Error("允许的来源应返回 CORS 头")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应返回 CORS 头")
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("缺少 X-Frame-Options")
	}
}
