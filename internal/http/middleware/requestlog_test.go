package middleware_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlemanifest/internal/http/middleware"
)

func TestRequestLogger(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		wantStatus string
		wantLevel  string
	}{
		{name: "ok", target: "/ok", wantStatus: "status=200", wantLevel: "level=DEBUG"},
		{name: "fiber error keeps its code", target: "/gone", wantStatus: "status=410", wantLevel: "level=DEBUG"},
		{name: "plain error is a 500", target: "/boom", wantStatus: "status=500", wantLevel: "level=WARN"},
		{name: "fiber 5xx", target: "/unavailable", wantStatus: "status=503", wantLevel: "level=WARN"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			app := fiber.New(fiber.Config{DisableStartupMessage: true})
			app.Use(middleware.RequestLogger(logger))
			app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
			app.Get("/gone", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusGone, "gone") })
			app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
			app.Get("/unavailable", func(c *fiber.Ctx) error {
				return fiber.NewError(fiber.StatusServiceUnavailable, "unavailable")
			})

			resp, err := app.Test(httptest.NewRequest("GET", tc.target, nil), 5000)
			require.NoError(t, err)
			resp.Body.Close()

			line := buf.String()
			assert.Contains(t, line, `msg="Request handled"`)
			assert.Contains(t, line, "method=GET")
			assert.Contains(t, line, "path="+tc.target)
			assert.Contains(t, line, tc.wantStatus)
			assert.Contains(t, line, tc.wantLevel)
		})
	}
}
