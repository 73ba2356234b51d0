package constants

import "fmt"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyCreatorOrAdmin  = "❌ Hanya pembuat atau admin yang boleh %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorCreatorOrAdmin(action string) string {
	return fmt.Sprintf(ErrOnlyCreatorOrAdmin, action)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleStaff,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
