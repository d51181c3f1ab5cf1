package middlewares

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/testutil"
)

func TestGormStorage(t *testing.T) {
	db := testutil.OpenDB(t, &RateLimitCounter{})
	store := NewGormStorage(db)

	v, err := store.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, store.Set("k", []byte("one"), time.Minute))
	v, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), v)

	// overwrite
	require.NoError(t, store.Set("k", []byte("two"), time.Minute))
	v, _ = store.Get("k")
	assert.Equal(t, []byte("two"), v)

	require.NoError(t, store.Delete("k"))
	v, _ = store.Get("k")
	assert.Nil(t, v)
}

func TestGormStorageExpiry(t *testing.T) {
	db := testutil.OpenDB(t, &RateLimitCounter{})
	store := NewGormStorage(db)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set("k", []byte("x"), time.Second))
	require.NoError(t, store.Set("forever", []byte("y"), 0))

	store.now = func() time.Time { return now.Add(2 * time.Second) }
	v, err := store.Get("k")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, _ = store.Get("forever")
	assert.Equal(t, []byte("y"), v)

	n, err := store.PurgeExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, store.Reset())
	v, _ = store.Get("forever")
	assert.Nil(t, v)
}

func TestWebhookRateLimiterSharedStore(t *testing.T) {
	db := testutil.OpenDB(t, &RateLimitCounter{})
	store := NewGormStorage(db)

	// dua "instance" dengan store yang sama berbagi counter
	newApp := func() *fiber.App {
		app := fiber.New()
		app.Post("/cb", WebhookRateLimiter(store, 2), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}
	a, b := newApp(), newApp()

	resp, err := a.Test(httptest.NewRequest(fiber.MethodPost, "/cb", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = b.Test(httptest.NewRequest(fiber.MethodPost, "/cb", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = a.Test(httptest.NewRequest(fiber.MethodPost, "/cb", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
