package route

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/features/studio/rentals/model"
	"danceflow_backend/internals/features/studio/rentals/service"
	userModel "danceflow_backend/internals/features/users/user/model"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/testutil"
)

// fakeAuth mengisi locals dari header, pengganti AuthJWT.
func fakeAuth(c *fiber.Ctx) error {
	if id := c.Get("X-User"); id != "" {
		c.Locals(helper.LocUserID, id)
		c.Locals(helper.LocRole, c.Get("X-Role"))
	}
	return c.Next()
}

func rentalApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testutil.OpenDB(t, &userModel.UserModel{}, &model.StudioRentalModel{}, &model.StudioRentalDayModel{})
	for _, id := range []string{"u1", "u2"} {
		require.NoError(t, db.Create(&userModel.UserModel{ID: id, UserName: id, Email: id + "@example.com"}).Error)
	}
	svc := service.NewStudioRentalService(db, nil)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler, JSONEncoder: sonic.Marshal, JSONDecoder: sonic.Unmarshal})
	RentalPublicRoutes(app.Group("/api/public"), svc)
	RentalUserRoutes(app.Group("/api/u", fakeAuth), svc)
	RentalAdminRoutes(app.Group("/api/a", fakeAuth), svc)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, user, role, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if user != "" {
		req.Header.Set("X-User", user)
		req.Header.Set("X-Role", role)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	_ = sonic.Unmarshal(b, &out)
	return resp.StatusCode, out
}

func TestRentalRoutesFlow(t *testing.T) {
	app := rentalApp(t)
	const slot = `{"date":"2099-01-05","startTime":"18:00","endTime":"19:30","purpose":"team rehearsal"}`

	status, body := call(t, app, fiber.MethodPost, "/api/u/rentals", "u1", "student", slot)
	require.Equal(t, fiber.StatusCreated, status, body)
	data := body["data"].(map[string]any)
	id := data["id"].(string)
	assert.Equal(t, "pending", data["status"])

	status, _ = call(t, app, fiber.MethodPost, "/api/u/rentals", "u2", "student",
		`{"date":"2099-01-05","startTime":"19:00","endTime":"20:00","purpose":"solo"}`)
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = call(t, app, fiber.MethodGet, "/api/public/rentals/availability?date=2099-01-05", "", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"].(map[string]any)["booked"], 1)

	// teacher bukan admin
	status, _ = call(t, app, fiber.MethodPost, "/api/a/rentals/"+id+"/confirm", "t1", "teacher", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = call(t, app, fiber.MethodPost, "/api/a/rentals/"+id+"/confirm", "a1", "admin", "")
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "confirmed", body["data"].(map[string]any)["status"])

	status, _ = call(t, app, fiber.MethodPost, "/api/a/rentals/"+id+"/confirm", "a1", "admin", "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = call(t, app, fiber.MethodPost, "/api/u/rentals/"+id+"/cancel", "u2", "student", "")
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body = call(t, app, fiber.MethodPost, "/api/u/rentals/"+id+"/cancel", "u1", "student", "")
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "cancelled", body["data"].(map[string]any)["status"])

	status, body = call(t, app, fiber.MethodGet, "/api/u/rentals", "u1", "student", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["data"], 1)
}

func TestRentalRoutesRejectBadInput(t *testing.T) {
	app := rentalApp(t)

	status, _ := call(t, app, fiber.MethodPost, "/api/u/rentals", "u1", "student",
		`{"date":"2099-01-05","startTime":"18:15","endTime":"19:00","purpose":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, fiber.MethodPost, "/api/u/rentals", "u1", "student", `{"date":"2099-01-05"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, fiber.MethodPost, "/api/u/rentals", "", "", `{}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, fiber.MethodPost, "/api/a/rentals/not-a-uuid/confirm", "a1", "admin", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, fiber.MethodGet, "/api/public/rentals/availability", "", "", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = call(t, app, fiber.MethodGet, "/api/a/rentals?status=archived", "a1", "admin", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
