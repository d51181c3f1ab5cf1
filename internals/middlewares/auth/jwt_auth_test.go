package auth

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/constants"
	helper "danceflow_backend/internals/helpers"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func newApp(opts AuthJWTOpts, guards ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	handlers := append([]fiber.Handler{AuthJWT(opts)}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   c.Locals(helper.LocUserID),
			"role":      c.Locals(helper.LocRole),
			"studio_id": c.Locals(helper.LocStudioID),
		})
	})
	app.Get("/x", handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthJWT(t *testing.T) {
	app := newApp(AuthJWTOpts{Secret: testSecret})

	valid := sign(t, testSecret, jwt.MapClaims{
		"sub": "u1", "role": "student", "exp": time.Now().Add(time.Hour).Unix(),
	})
	expired := sign(t, testSecret, jwt.MapClaims{
		"sub": "u1", "role": "student", "exp": time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := sign(t, "another-secret-another-secret-xx", jwt.MapClaims{"sub": "u1"})
	noSub := sign(t, testSecret, jwt.MapClaims{"role": "admin"})

	assert.Equal(t, fiber.StatusOK, get(t, app, valid))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, expired))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, wrongKey))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, noSub))
}

func TestOnlyRolesAndCapability(t *testing.T) {
	student := sign(t, testSecret, jwt.MapClaims{"sub": "s1", "role": "student"})
	teacher := sign(t, testSecret, jwt.MapClaims{"sub": "t1", "role": "teacher"})
	admin := sign(t, testSecret, jwt.MapClaims{"sub": "a1", "role": "admin"})
	bogus := sign(t, testSecret, jwt.MapClaims{"sub": "b1", "role": "owner"})

	staff := newApp(AuthJWTOpts{Secret: testSecret}, OnlyRoles("staff only", constants.StaffRoles...))
	assert.Equal(t, fiber.StatusForbidden, get(t, staff, student))
	assert.Equal(t, fiber.StatusOK, get(t, staff, teacher))
	assert.Equal(t, fiber.StatusOK, get(t, staff, admin))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, staff, bogus))

	finance := newApp(AuthJWTOpts{Secret: testSecret}, RequireCapability(constants.CapViewFinancialData))
	assert.Equal(t, fiber.StatusForbidden, get(t, finance, teacher))
	assert.Equal(t, fiber.StatusOK, get(t, finance, admin))

	booking := newApp(AuthJWTOpts{Secret: testSecret}, RequireCapability(constants.CapBookClasses))
	assert.Equal(t, fiber.StatusOK, get(t, booking, student))
	assert.Equal(t, fiber.StatusForbidden, get(t, booking, admin))
}

func TestRoleResolverOverridesClaims(t *testing.T) {
	resolver := func(_ context.Context, userID string) (string, string, error) {
		if userID == "ghost" {
			return "", "", ErrUnknownUser
		}
		return constants.RoleAdmin, "studio-1", nil
	}
	app := newApp(AuthJWTOpts{Secret: testSecret, RoleResolver: resolver},
		RequireCapability(constants.CapManageUsers))

	// token bilang student, DB bilang admin
	tok := sign(t, testSecret, jwt.MapClaims{"sub": "u1", "role": "student"})
	assert.Equal(t, fiber.StatusOK, get(t, app, tok))

	ghost := sign(t, testSecret, jwt.MapClaims{"sub": "ghost", "role": "admin"})
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, ghost))
}
