package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_PerIP(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("1.1.1.1"))
	assert.Equal(t, http.StatusNoContent, call("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1.1.1.1"))
	assert.Equal(t, http.StatusNoContent, call("2.2.2.2"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": " 9.9.9.9 , 8.8.8.8"}, "1.2.3.4:5", "9.9.9.9"},
		{"real ip", map[string]string{"X-Real-IP": "7.7.7.7"}, "1.2.3.4:5", "7.7.7.7"},
		{"remote addr", nil, "1.2.3.4:5", "1.2.3.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(c))
		})
	}
}

func TestRateLimitMiddleware_UntrustedForwardingIgnored(t *testing.T) {
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(RateLimitMiddleware(1))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, getClientIP(c)) })

	call := func(forwarded string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	first := call("1.1.1.1")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "203.0.113.7", first.Body.String())
	assert.Equal(t, http.StatusTooManyRequests, call("2.2.2.2").Code, "a rotated header does not buy a new bucket")
}

func TestRateLimiterStore_EvictsIdleEntries(t *testing.T) {
	clock := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s := newRateLimiterStore(1)
	s.now = func() time.Time { return clock }
	s.lastSweep = clock

	quiet := s.getLimiter("1.1.1.1")
	require.True(t, quiet.Allow())
	s.getLimiter("2.2.2.2")

	clock = clock.Add(5 * time.Minute)
	s.getLimiter("2.2.2.2")
	assert.Len(t, s.limiters, 2)

	clock = clock.Add(6 * time.Minute)
	s.getLimiter("3.3.3.3")
	assert.Len(t, s.limiters, 2)
	assert.NotContains(t, s.limiters, "1.1.1.1")
	assert.Contains(t, s.limiters, "2.2.2.2")
	assert.Contains(t, s.limiters, "3.3.3.3")

	assert.NotSame(t, quiet, s.getLimiter("1.1.1.1"))
}
