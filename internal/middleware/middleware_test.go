package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStructuredLoggingMiddleware_PropagatesLogger(t *testing.T) {
	base := slog.New(slog.NewTextHandler(httptest.NewRecorder(), nil))
	router := gin.New()
	router.Use(StructuredLoggingMiddleware(base))

	var fromCtx, fromGin *slog.Logger
	router.GET("/", func(c *gin.Context) {
		fromCtx = GetLoggerFromCtx(c.Request.Context())
		fromGin = GetLoggerFromContext(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	require.NotNil(t, fromCtx)
	assert.Same(t, fromGin, fromCtx)
	assert.NotSame(t, slog.Default(), fromCtx)
}

func TestGetLoggerFromCtx_Fallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, slog.Default(), GetLoggerFromCtx(req.Context()))
}

func TestRateLimit(t *testing.T) {
	lim, err := NewRateLimiter("2-M")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RateLimit(lim))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_InvalidFormat(t *testing.T) {
	_, err := NewRateLimiter("lots")
	assert.Error(t, err)
}
