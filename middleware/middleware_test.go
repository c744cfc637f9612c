package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/config"
	"taskboard/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubTokens map[string]uuid.UUID

func (s stubTokens) Parse(token string) (uuid.UUID, error) {
	id, ok := s[token]
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}
	return id, nil
}

func authApp(tokens TokenParser) *fiber.App {
	app := fiber.New()
	app.Get("/", Auth(tokens), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(id.String())
	})
	return app
}

func TestAuth(t *testing.T) {
	id := uuid.New()
	app := authApp(stubTokens{"good": id})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "missing", status: http.StatusUnauthorized, body: `{"message":"Missing authorization header"}`},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized, body: `{"message":"Invalid authorization header format"}`},
		{name: "no token", header: "Bearer ", status: http.StatusUnauthorized, body: `{"message":"Invalid authorization header format"}`},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized, body: `{"message":"Invalid or expired token"}`},
		{name: "ok", header: "Bearer good", status: http.StatusOK, body: id.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tt.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, tt.body, string(body))
		})
	}
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	require.True(t, rl.Allow("a"))
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
	require.True(t, rl.Allow("b"), "keys are independent")

	now = now.Add(30 * time.Second)
	require.True(t, rl.Allow("a"))
	require.False(t, rl.Allow("a"))
}

func TestRateLimiterDropsIdleBuckets(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	rl.Allow("b")
	require.Equal(t, 2, rl.Len())

	now = now.Add(2 * time.Minute)
	rl.Allow("c")
	require.Equal(t, 1, rl.Len())
}

func TestAuthRateLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/login", AuthRateLimit(config.RateLimitConfig{Enabled: true, AuthMax: 2, AuthWindow: time.Hour}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	open := fiber.New()
	open.Post("/login", AuthRateLimit(config.RateLimitConfig{Enabled: false, AuthMax: 1, AuthWindow: time.Hour}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	for i := 0; i < 3; i++ {
		resp, err := open.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestAPIRateLimit(t *testing.T) {
	app := fiber.New()
	app.Get("/api/tasks", APIRateLimit(config.RateLimitConfig{Enabled: true, APIMax: 1, APIWindow: time.Hour}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// zero max means no general limit
	open := fiber.New()
	open.Get("/api/tasks", APIRateLimit(config.RateLimitConfig{Enabled: true, AuthMax: 1}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	for i := 0; i < 3; i++ {
		resp, err := open.Test(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestRequestLoggerPassesErrorsThrough(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger(logger.Nop()))
	app.Get("/", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, resp.StatusCode)
}
