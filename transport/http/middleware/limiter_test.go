package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"musafir/config"
	cacheMocks "musafir/shared/cache/mocks"
	"musafir/shared/constant"
	"musafir/transport/http/middleware"
)

func newRateLimitHandler(t *testing.T, maxRequests, windowSeconds int) (http.Handler, *cacheMocks.MockRedisCache, *bool) {
	t.Helper()

	mockCtrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(mockCtrl)

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = windowSeconds

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.NewAppMiddleware(nil, cfg, mockCache).RateLimit()(next)

	return handler, mockCache, &reached
}

func TestRateLimit(t *testing.T) {
	t.Run("sets the window expiry only through the counter increment", func(t *testing.T) {
		handler, mockCache, reached := newRateLimitHandler(t, 5, 60)

		mockCache.EXPECT().
			Increment(gomock.Any(), gomock.Any(), 60).
			Return(int64(1), nil)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/hotels", nil))

		assert.True(t, *reached)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "5", recorder.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "4", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		assert.Equal(t, "60", recorder.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("rejects once the counter passes the limit", func(t *testing.T) {
		handler, mockCache, reached := newRateLimitHandler(t, 5, 60)

		mockCache.EXPECT().
			Increment(gomock.Any(), gomock.Any(), 60).
			Return(int64(6), nil)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/hotels", nil))

		assert.False(t, *reached)
		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	})

	t.Run("allows the request when the cache fails", func(t *testing.T) {
		handler, mockCache, reached := newRateLimitHandler(t, 5, 60)

		mockCache.EXPECT().
			Increment(gomock.Any(), gomock.Any(), 60).
			Return(int64(0), errors.New("connection refused"))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/hotels", nil))

		assert.True(t, *reached)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("skips the counter when the limiter is disabled", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		mockCache := cacheMocks.NewMockRedisCache(mockCtrl)

		cfg := &config.Config{}
		cfg.App.RateLimiter.Enable = false

		reached := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})

		handler := middleware.NewAppMiddleware(nil, cfg, mockCache).RateLimit()(next)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/hotels", nil))

		assert.True(t, reached)
	})
}
