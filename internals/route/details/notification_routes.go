package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifController "kantorku_backend/internals/features/notifications/controller"
	notifService "kantorku_backend/internals/features/notifications/service"
)

func NotificationRoutes(r fiber.Router, db *gorm.DB, push *notifService.PushService) {
	ctrl := notifController.NewNotificationController(db, push)

	g := r.Group("/notifications")
	g.Get("/vapid-key", ctrl.VAPIDKey)
	g.Post("/subscribe", ctrl.Subscribe)
	g.Delete("/subscribe", ctrl.Unsubscribe)
	g.Get("/", ctrl.List)
	g.Patch("/read-all", ctrl.MarkAllRead)
	g.Patch("/:id/read", ctrl.MarkRead)
}
