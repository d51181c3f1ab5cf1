package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"danceflow_backend/internals/constants"
	helper "danceflow_backend/internals/helpers"
)

// ErrUnknownUser dikembalikan RoleResolver kalau user tidak ada di DB.
var ErrUnknownUser = errors.New("unknown user")

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool // pakai cookie access_token jika tidak ada Bearer

	// RoleResolver (opsional) membaca role & studio terbaru dari DB.
	// Kalau nil, role diambil dari klaim token.
	RoleResolver func(ctx context.Context, userID string) (role, studioID string, err error)
}

func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret wajib diisi")
	}

	return func(c *fiber.Ctx) error {
		// 1) Ambil token: Authorization: Bearer xxx (atau cookie jika diizinkan)
		raw := helper.GetRawAccessToken(c, o.AllowCookieFallback)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		// 2) Parse + verifikasi algoritma (exp/nbf divalidasi jwt)
		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
		}

		// user_id: ambil sub/user_id/id dalam urutan preferensi
		userID := firstClaim(claims, "sub", "user_id", "id")
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or missing user ID")
		}

		role := strings.ToLower(strClaim(claims, "role"))
		studioID := strClaim(claims, "studio_id")

		if o.RoleResolver != nil {
			r, sid, err := o.RoleResolver(c.UserContext(), userID)
			if errors.Is(err, ErrUnknownUser) {
				return fiber.NewError(fiber.StatusUnauthorized, "User not found")
			}
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve user")
			}
			role, studioID = r, sid
		}

		c.Locals(helper.LocRawToken, raw)
		c.Locals(helper.LocUserID, userID)
		if constants.IsValidRole(role) {
			c.Locals(helper.LocRole, role)
		}
		if studioID != "" {
			c.Locals(helper.LocStudioID, studioID)
		}
		if email := strClaim(claims, "email"); email != "" {
			c.Locals(helper.LocEmail, email)
		}
		return c.Next()
	}
}
