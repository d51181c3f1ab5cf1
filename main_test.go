package main

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/configs"
)

// app.Test selalu datang dari 0.0.0.0
func clientIP(t *testing.T, cfg *configs.Config, forwarded string) string {
	t.Helper()
	app := fiber.New(serverConfig(cfg))
	app.Get("/ip", func(c *fiber.Ctx) error { return c.SendString(c.IP()) })

	req := httptest.NewRequest(fiber.MethodGet, "/ip", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, forwarded)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestForwardedForIgnoredWithoutTrustedProxies(t *testing.T) {
	assert.Equal(t, "0.0.0.0", clientIP(t, &configs.Config{}, "1.2.3.4"))
}

func TestForwardedForOnlyFromTrustedProxy(t *testing.T) {
	untrusted := &configs.Config{TrustedProxies: []string{"10.0.0.0/8"}}
	assert.Equal(t, "0.0.0.0", clientIP(t, untrusted, "1.2.3.4"))

	trusted := &configs.Config{TrustedProxies: []string{"0.0.0.0/32"}}
	assert.Equal(t, "1.2.3.4", clientIP(t, trusted, "1.2.3.4"))
}
