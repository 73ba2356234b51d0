package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helper "kantorku_backend/internals/helpers"
)

type AuthJWTOpts struct {
	Secret              string
	AllowCookieFallback bool
}

// AuthJWT memvalidasi Bearer token (HS256) dan mengisi Locals:
// user_id, user_name, role. Session/refresh token dikelola di luar
// service ini; kita hanya memverifikasi claim.
func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := ""
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
		if raw == "" && opts.AllowCookieFallback {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Metode signing tidak didukung")
			}
			return []byte(opts.Secret), nil
		})
		if err != nil || !token.Valid {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid atau kedaluwarsa")
		}

		if v, ok := claims["user_id"].(string); ok {
			c.Locals("user_id", v)
		} else if v, ok := claims["sub"].(string); ok {
			c.Locals("user_id", v)
		}
		if v, ok := claims["user_name"].(string); ok {
			c.Locals("user_name", v)
		}
		if v, ok := claims["role"].(string); ok {
			c.Locals("role", v)
		}

		return c.Next()
	}
}
