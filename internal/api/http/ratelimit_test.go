package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/fieldops/atm-visit-service/internal/api/http"
	"github.com/fieldops/atm-visit-service/internal/config"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

func newLimitedApp(t *testing.T, cfg config.RateLimitConfig, client *redis.Client) *fiber.App {
	t.Helper()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), 0)
	limiter := httptransport.NewRateLimiter(cfg, client)
	app.Use(limiter.Handle)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func ping(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestRateLimiterRedisFixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             1,
		WindowSeconds:     60,
	}
	app := newLimitedApp(t, cfg, client)

	// allowed per window = floor(rps*window) + burst = 61
	for i := 0; i < 61; i++ {
		require.Equal(t, http.StatusOK, ping(t, app).StatusCode)
	}

	resp := ping(t, app)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.Equal(t, "60", resp.Header.Get("Retry-After"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, apperrors.CodeRateLimited, body.Error.Code)
}

func TestRateLimiterLocalFallback(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled:           true,
		RequestsPerSecond: 1,
		Burst:             2,
		WindowSeconds:     1,
	}
	app := newLimitedApp(t, cfg, nil)

	require.Equal(t, http.StatusOK, ping(t, app).StatusCode)
	require.Equal(t, http.StatusOK, ping(t, app).StatusCode)
	require.Equal(t, http.StatusTooManyRequests, ping(t, app).StatusCode)
}

func TestRateLimiterDisabled(t *testing.T) {
	app := newLimitedApp(t, config.RateLimitConfig{Enabled: false}, nil)

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, ping(t, app).StatusCode)
	}
}
