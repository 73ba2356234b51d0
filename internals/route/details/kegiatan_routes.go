package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dispService "kantorku_backend/internals/features/office/disposisi/service"
	kegiatanController "kantorku_backend/internals/features/office/kegiatan/controller"
	helperOSS "kantorku_backend/internals/helpers/oss"
	"kantorku_backend/internals/middlewares"
)

func KegiatanRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService, linkSvc *dispService.LinkService) {
	ctrl := kegiatanController.NewKegiatanController(db, blob, linkSvc)

	write := middlewares.WriteRateLimiter()

	g := r.Group("/kegiatan")
	g.Get("/list", ctrl.List)
	g.Get("/:id", ctrl.GetByID)
	g.Post("/", write, ctrl.Create)
	g.Patch("/:id", write, ctrl.Update)
	g.Delete("/:id", write, ctrl.Delete)

	g.Put("/:id/dokumen/:slot", write, ctrl.UploadDokumen)

	g.Post("/:id/komentar", write, ctrl.AddKomentar)
	g.Delete("/:id/komentar/:komentar_id", write, ctrl.DeleteKomentar)
}
