package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankcore/internal/adapter/http/middleware"
	"github.com/iho/bankcore/internal/infrastructure/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StorageDriver:  config.StorageDriverMemory,
		IdempotencyTTL: time.Minute,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

func TestBuildApp_MemoryStorage(t *testing.T) {
	a, err := buildApp(context.Background(), memoryConfig(), zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(a.close)

	require.NotNil(t, a.rateLimiter)

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"holder_name":"Jane","initial_balance":"5"}`))
	a.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestBuildApp_RateLimitDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.RateLimitRPS = 0

	a, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(a.close)

	assert.Nil(t, a.rateLimiter)
}

func TestBuildApp_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := memoryConfig()
	cfg.RedisEnabled = true
	cfg.RedisURL = "redis://" + mr.Addr()

	a, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(a.close)

	body := `{"holder_name":"Jane","initial_balance":"5"}`
	var codes []int
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(body))
		req.Header.Set(middleware.IdempotencyKeyHeader, "open-jane")
		rec := httptest.NewRecorder()
		a.handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if i == 1 {
			assert.Equal(t, "true", rec.Header().Get(middleware.IdempotencyReplayHeader))
		}
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated}, codes)

	mr.Close()
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBuildApp_RedisUnreachable(t *testing.T) {
	cfg := memoryConfig()
	cfg.RedisEnabled = true
	cfg.RedisURL = "redis://127.0.0.1:1"

	_, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	require.Error(t, err)
}

func TestSweepRateLimiterStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sweepRateLimiter(ctx, middleware.NewRateLimiter(1, 1), zerolog.Nop())
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
