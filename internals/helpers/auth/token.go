package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kantorku_backend/internals/constants"
)

// Ambil user_id dari c.Locals("user_id") (diisi oleh middleware AuthJWT).
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
}

// Nama pengguna dari token; boleh kosong (claim opsional).
func GetUserNameFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_name").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("role").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func IsAdmin(c *fiber.Ctx) bool {
	return GetRoleFromToken(c) == constants.RoleAdmin
}

// EnsureCreatorOrAdmin: guard otorisasi untuk aksi destruktif
// (unlink, hapus disposisi, hapus surat).
func EnsureCreatorOrAdmin(c *fiber.Ctx, creatorID uuid.UUID, action string) error {
	if IsAdmin(c) {
		return nil
	}
	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if userID != creatorID {
		return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorCreatorOrAdmin(action))
	}
	return nil
}
