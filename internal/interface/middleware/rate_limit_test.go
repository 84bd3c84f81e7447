package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(t *testing.T, max int, allow AllowFunc) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(rdb, max, time.Minute, KeyByIP(), allow), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func ping(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitEnforced(t *testing.T) {
	r, _ := newLimitedRouter(t, 2, nil)

	for i := 0; i < 2; i++ {
		w := ping(r)
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := ping(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitWindowExpires(t *testing.T) {
	r, mr := newLimitedRouter(t, 1, nil)

	assert.Equal(t, http.StatusOK, ping(r).Code)
	assert.Equal(t, http.StatusTooManyRequests, ping(r).Code)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, ping(r).Code)
}

func TestRateLimitAllowBypass(t *testing.T) {
	always := func(*gin.Context) bool { return true }
	r, _ := newLimitedRouter(t, 1, always)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, ping(r).Code)
	}
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, ping(r).Code)
	}
}

func TestRateLimitFailsOpenOnRedisOutage(t *testing.T) {
	r, mr := newLimitedRouter(t, 1, nil)
	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, ping(r).Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	allow := AllowPrivateIP()

	cases := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"192.168.0.10", true},
		{"203.0.113.7", false},
		{"", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.ip != "" {
			c.Set("real_ip", tc.ip)
		}
		assert.Equal(t, tc.want, allow(c), tc.ip)
	}
}

func TestKeyFuncs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	c.Set("real_ip", "203.0.113.7")

	assert.Equal(t, "rl:ip:203.0.113.7", KeyByIP()(c))
	assert.Contains(t, KeyByIPAndPath()(c), "203.0.113.7")

	// Anonymous callers fall back to IP; authenticated ones are keyed by id.
	assert.Equal(t, "rl:user:anon:ip:203.0.113.7", KeyByUserID()(c))
	c.Set(CtxUserIDKey, "u1")
	assert.Equal(t, "rl:user:u1", KeyByUserID()(c))
}
