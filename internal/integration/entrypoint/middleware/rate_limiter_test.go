package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, maxAttempts int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRateLimiterWithConfig(client, "test:login", maxAttempts, window), mr
}

func newTestRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:4321"
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows requests under the limit", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 3, time.Minute)
		router := newTestRouter(rl)

		for i := 0; i < 3; i++ {
			if code := doRequest(router); code != http.StatusOK {
				t.Fatalf("request %d: expected 200, got %d", i+1, code)
			}
		}
	})

	t.Run("rejects requests over the limit", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 3, time.Minute)
		router := newTestRouter(rl)

		for i := 0; i < 3; i++ {
			doRequest(router)
		}
		if code := doRequest(router); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", code)
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		rl, mr := newTestLimiter(t, 1, time.Minute)
		router := newTestRouter(rl)

		doRequest(router)
		if code := doRequest(router); code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 before expiry, got %d", code)
		}

		mr.FastForward(2 * time.Minute)

		if code := doRequest(router); code != http.StatusOK {
			t.Fatalf("expected 200 after expiry, got %d", code)
		}
	})

	t.Run("redis outage fails open", func(t *testing.T) {
		rl, mr := newTestLimiter(t, 1, time.Minute)
		router := newTestRouter(rl)
		mr.Close()

		if code := doRequest(router); code != http.StatusOK {
			t.Fatalf("expected 200 when redis is down, got %d", code)
		}
	})
}
