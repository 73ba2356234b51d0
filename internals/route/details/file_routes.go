package details

import (
	"github.com/gofiber/fiber/v2"

	fileController "kantorku_backend/internals/features/files/controller"
	helperOSS "kantorku_backend/internals/helpers/oss"
	"kantorku_backend/internals/middlewares"
)

func FileRoutes(r fiber.Router, blob helperOSS.BlobService) {
	ctrl := fileController.NewFileController(blob)

	write := middlewares.WriteRateLimiter()

	g := r.Group("/files")
	g.Post("/", write, ctrl.Upload)
	g.Delete("/", write, ctrl.Delete)
}
