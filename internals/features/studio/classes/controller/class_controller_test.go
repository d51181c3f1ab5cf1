package controller

import (
	"io"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/features/studio/classes/model"
	"danceflow_backend/internals/features/studio/classes/service"
	helper "danceflow_backend/internals/helpers"
	"danceflow_backend/internals/testutil"
)

func listApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testutil.OpenDB(t, &model.ClassModel{})
	require.NoError(t, db.Create(&model.ClassModel{
		ClassID: "jazz-1", ClassName: "Jazz Funk", ClassStyle: model.StyleJazz,
		ClassLevel: model.LevelIntermediate, ClassCapacity: 10, ClassEnrolledStudents: []string{},
	}).Error)
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	app.Get("/classes", NewClassController(service.NewClassService(db, nil)).List)
	return app
}

func get(t *testing.T, app *fiber.App, query url.Values) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/classes?"+query.Encode(), nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestListRejectsUnknownFilters(t *testing.T) {
	app := listApp(t)

	status, body := get(t, app, url.Values{"style": {"Polka"}})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "Polka")

	status, _ = get(t, app, url.Values{"level": {"expert"}})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = get(t, app, url.Values{"style": {"Jazz"}, "level": {"Intermediate"}})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "jazz-1")
}
