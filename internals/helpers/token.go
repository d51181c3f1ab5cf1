package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Keys c.Locals yang diisi middleware AuthJWT.
const (
	LocRawToken = "raw_token"
	LocUserID   = "user_id"
	LocRole     = "userRole"
	LocStudioID = "studio_id"
	LocEmail    = "user_email"
)

// GetRawAccessToken mengembalikan access token dari:
// 1) Authorization header "Bearer <token>"
// 2) cookie "access_token" (kalau allowCookie)
func GetRawAccessToken(c *fiber.Ctx, allowCookie bool) string {
	const p = "Bearer "
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(auth) > len(p) && strings.EqualFold(auth[:len(p)], p) {
		return strings.TrimSpace(auth[len(p):])
	}
	if allowCookie {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}

func localString(c *fiber.Ctx, key string) string {
	switch t := c.Locals(key).(type) {
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	default:
		return ""
	}
}

// GetUserIDFromToken: 401 kalau belum login.
func GetUserIDFromToken(c *fiber.Ctx) (string, error) {
	id := localString(c, LocUserID)
	if id == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	return id, nil
}

func GetRole(c *fiber.Ctx) string {
	return strings.ToLower(localString(c, LocRole))
}

// GetStudioID kosong berarti token tidak terikat ke studio tertentu.
func GetStudioID(c *fiber.Ctx) string {
	return localString(c, LocStudioID)
}

func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocEmail)
}
