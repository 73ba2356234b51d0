package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dispController "kantorku_backend/internals/features/office/disposisi/controller"
	dispService "kantorku_backend/internals/features/office/disposisi/service"
	"kantorku_backend/internals/middlewares"
)

func DisposisiRoutes(r fiber.Router, db *gorm.DB, linkSvc *dispService.LinkService) {
	ctrl := dispController.NewDisposisiController(db, linkSvc)

	write := middlewares.WriteRateLimiter()

	g := r.Group("/disposisi")
	g.Get("/", ctrl.List)
	g.Patch("/:id/status", write, ctrl.UpdateStatus)
	g.Delete("/:id", write, ctrl.RemoveAssignee)
}
