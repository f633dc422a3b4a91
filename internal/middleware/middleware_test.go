package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (m *memoryCounter) Hit(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r http.Handler, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(&memoryCounter{}, 3, time.Hour, nil))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, nil).Code)
	}
	w := get(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too many requests, slow down"}`, w.Body.String())
}

func TestRateLimitFailsOpen(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := newEngine(RateLimit(&memoryCounter{err: errors.New("redis down")}, 1, time.Second, zap.New(core)))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, nil).Code)
	}
	assert.Equal(t, 3, logs.Len())
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(RateLimit(nil, 1, time.Second, nil))
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, nil).Code)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	r := newEngine(RequestID(), func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Next()
	})

	w := get(r, nil)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))

	other := get(r, nil)
	assert.NotEqual(t, w.Header().Get(RequestIDHeader), other.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	r := newEngine(RequestID())
	w := get(r, http.Header{RequestIDHeader: []string{"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLoggerIncludesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newEngine(RequestID(), Logger(zap.New(core)))

	get(r, http.Header{RequestIDHeader: []string{"req-1"}})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "req-1", fields["request_id"])
}
