package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("key", 3, time.Minute), "request %d should pass", i+1)
	}
	require.False(t, rl.Allow("key", 3, time.Minute))

	// Other keys have their own windows.
	require.True(t, rl.Allow("other", 3, time.Minute))
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter()

	require.True(t, rl.Allow("key", 1, 20*time.Millisecond))
	require.False(t, rl.Allow("key", 1, 20*time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	require.True(t, rl.Allow("key", 1, 20*time.Millisecond))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter()

	rl.Allow("stale", 1, 10*time.Millisecond)
	rl.Allow("fresh", 1, time.Minute)

	time.Sleep(20 * time.Millisecond)
	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	require.NotContains(t, rl.entries, "stale")
	require.Contains(t, rl.entries, "fresh")
}

func TestRateLimitByIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	limiter := NewRateLimiter()
	r.POST("/login", RateLimitByIP(limiter, "login", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitByUser_KeysPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter()
	r := gin.New()
	r.POST("/ingest/:user", func(c *gin.Context) {
		// Simulate the auth middleware having resolved a user.
		switch c.Param("user") {
		case "a":
			c.Set("user_id", uint64(1))
		case "b":
			c.Set("user_id", uint64(2))
		}
		c.Next()
	}, RateLimitByUser(limiter, "ingest", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/ingest/"+user, nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, do("a"))
	require.Equal(t, http.StatusTooManyRequests, do("a"))
	require.Equal(t, http.StatusOK, do("b"), "second user has an independent window")
}
