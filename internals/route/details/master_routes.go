package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	masterController "kantorku_backend/internals/features/office/master/controller"
)

// MasterRoutes: baca untuk semua user ber-JWT, mutasi khusus admin.
func MasterRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB) {
	ctrl := masterController.NewMasterController(db)

	ug := user.Group("/master")
	ug.Get("/", ctrl.ListKategori)
	ug.Get("/:kategori", ctrl.List)

	ag := admin.Group("/master")
	ag.Post("/:kategori", ctrl.Add)
	ag.Patch("/:kategori/:id", ctrl.Rename)
	ag.Delete("/:kategori/:id", ctrl.Delete)
}
