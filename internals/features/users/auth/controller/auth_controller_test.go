package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/features/users/auth/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/middlewares/auth"
)

func setup(t *testing.T) *fiber.App {
	t.Helper()
	roles := func(_ context.Context, uid string) (string, string, error) {
		if uid == "a1" {
			return "admin", "studio-1", nil
		}
		return "", "", auth.ErrUnknownUser
	}
	svc := service.NewAuthService([]string{"client-id"}, roles)
	svc.Verify = func(idToken string, _ []string) (*service.Identity, error) {
		if idToken != "good" {
			return nil, service.ErrInvalidToken
		}
		return &service.Identity{UID: "a1", Email: "admin@example.com"}, nil
	}

	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Post("/api/auth/verify-token", NewAuthController(svc).VerifyToken)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/auth/verify-token", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestVerifyTokenEndpoint(t *testing.T) {
	app := setup(t)

	status, out := post(t, app, `{"token":"good"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "a1", out["uid"])
	assert.Equal(t, "admin", out["role"])
	assert.Equal(t, "admin@example.com", out["email"])

	status, _ = post(t, app, `{"token":"forged"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = post(t, app, `{}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
