package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func newRateLimitedRouter(ctx context.Context, rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST(
		"/v1/users/:userId/data/decrypt",
		UserRateLimitMiddleware(ctx, rps, burst, slog.New(slog.NewTextHandler(io.Discard, nil))),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		},
	)
	return router
}

func send(router *gin.Engine, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/users/"+userID+"/data/decrypt", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestUserRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := newRateLimitedRouter(ctx, 10, 20)

	for range 5 {
		assert.Equal(t, http.StatusOK, send(router, "u1").Code)
	}
}

func TestUserRateLimitMiddleware_BlocksExceedingLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := newRateLimitedRouter(ctx, 1, 2)

	assert.Equal(t, http.StatusOK, send(router, "u1").Code)
	assert.Equal(t, http.StatusOK, send(router, "u1").Code)

	w := send(router, "u1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestUserRateLimitMiddleware_SubSecondDelayRetryAfter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := newRateLimitedRouter(ctx, 10, 1)

	assert.Equal(t, http.StatusOK, send(router, "u1").Code)

	w := send(router, "u1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		delay time.Duration
		want  int
	}{
		{delay: 0, want: 1},
		{delay: 100 * time.Millisecond, want: 1},
		{delay: time.Second, want: 1},
		{delay: 1200 * time.Millisecond, want: 2},
		{delay: 3 * time.Second, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.delay.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, retryAfterSeconds(tt.delay))
		})
	}
}

func TestUserRateLimitMiddleware_IndependentPerUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := newRateLimitedRouter(ctx, 1, 1)

	assert.Equal(t, http.StatusOK, send(router, "u1").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(router, "u1").Code)
	assert.Equal(t, http.StatusOK, send(router, "u2").Code)
}

func TestUserRateLimiterStore_EvictIdle(t *testing.T) {
	store := &userRateLimiterStore{rps: 1, burst: 1}
	store.getLimiter("stale")

	store.evictIdle(time.Now().Add(time.Minute))

	_, ok := store.limiters.Load("stale")
	assert.False(t, ok)
}

func TestUserRateLimitMiddleware_CleanupStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	_ = UserRateLimitMiddleware(ctx, 1, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	cancel()

	// VerifyNone retries until the cleanup goroutine observes the cancellation.
}
