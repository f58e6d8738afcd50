// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimiterRejectsAfterBurst(t *testing.T) {
	// One token, refilled far too slowly to matter within the test.
	r := limitedRouter(NewRateLimiter(rate.Every(time.Hour), 1))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	r := limitedRouter(NewRateLimiter(rate.Every(time.Hour), 1))

	exhaust := httptest.NewRequest("GET", "/ping", nil)
	exhaust.RemoteAddr = "10.0.0.1:1000"
	r.ServeHTTP(httptest.NewRecorder(), exhaust)

	blocked := httptest.NewRecorder()
	r.ServeHTTP(blocked, exhaust)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	other := httptest.NewRequest("GET", "/ping", nil)
	other.RemoteAddr = "10.0.0.2:1000"
	allowed := httptest.NewRecorder()
	r.ServeHTTP(allowed, other)
	assert.Equal(t, http.StatusOK, allowed.Code)
}

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	r := limitedRouter(NewRateLimiter(rate.Limit(25), 50))

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
