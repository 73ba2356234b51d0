package auth

import (
	"github.com/gofiber/fiber/v2"

	"kantorku_backend/internals/constants"
	helper "kantorku_backend/internals/helpers"
	helperAuth "kantorku_backend/internals/helpers/auth"
)

// RequireAdmin dipasang setelah AuthJWT pada grup /api/a.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.IsAdmin(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorAdmin("mengakses endpoint ini"))
		}
		return c.Next()
	}
}
