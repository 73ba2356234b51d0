package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "kantorku_backend/internals/features/users/controller"
)

func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	g := r.Group("/users")
	g.Get("/", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
}
