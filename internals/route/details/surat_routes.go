package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dispController "kantorku_backend/internals/features/office/disposisi/controller"
	dispService "kantorku_backend/internals/features/office/disposisi/service"
	suratController "kantorku_backend/internals/features/office/surat/controller"
	helperOSS "kantorku_backend/internals/helpers/oss"
	"kantorku_backend/internals/middlewares"
)

// SuratRoutes memasang endpoint surat + workflow penautan pada grup
// ber-JWT. Jalur tulis memakai limiter yang lebih ketat.
func SuratRoutes(r fiber.Router, db *gorm.DB, blob helperOSS.BlobService, linkSvc *dispService.LinkService) {
	surat := suratController.NewSuratController(db, blob, linkSvc)
	disp := dispController.NewDisposisiController(db, linkSvc)

	write := middlewares.WriteRateLimiter()

	g := r.Group("/surat")
	g.Get("/list", surat.List)
	g.Get("/export", surat.Export)
	g.Get("/:id", surat.GetByID)
	g.Post("/", write, surat.Create)
	g.Patch("/:id", write, surat.Update)
	g.Delete("/:id", write, surat.Delete)

	// workflow penautan hidup di bawah surat
	g.Post("/:surat_id/link", write, disp.Link)
	g.Delete("/:surat_id/link/:kegiatan_id", write, disp.Unlink)
	g.Get("/:surat_id/history", disp.HistoryBySurat)
}
