package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kantorku_backend/internals/configs"
	notifService "kantorku_backend/internals/features/notifications/service"
	dispService "kantorku_backend/internals/features/office/disposisi/service"
	helperOSS "kantorku_backend/internals/helpers/oss"
	authMiddleware "kantorku_backend/internals/middlewares/auth"
	routeDetails "kantorku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== SHARED SERVICES =====================
	var blob helperOSS.BlobService
	if b, err := helperOSS.NewOSSBlobServiceFromEnv(""); err != nil {
		log.Printf("[WARN] OSS nonaktif: %v", err)
		blob = helperOSS.DisabledBlobService{}
	} else {
		blob = b
	}

	push := notifService.NewPushService(db, notifService.VAPIDConfig{
		PublicKey:  configs.VAPIDPublicKey,
		PrivateKey: configs.VAPIDPrivateKey,
		Subscriber: configs.VAPIDSubscriber,
	})
	push.Client = &http.Client{Timeout: 10 * time.Second}

	linkSvc := dispService.NewLinkService(db, push)

	// ===================== HEALTH =====================
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== GROUPS =====================
	jwtOpts := authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	}

	user := app.Group("/api/u", authMiddleware.AuthJWT(jwtOpts))
	admin := app.Group("/api/a", authMiddleware.AuthJWT(jwtOpts), authMiddleware.RequireAdmin())

	log.Println("[INFO] Setting up SuratRoutes...")
	routeDetails.SuratRoutes(user, db, blob, linkSvc)

	log.Println("[INFO] Setting up KegiatanRoutes...")
	routeDetails.KegiatanRoutes(user, db, blob, linkSvc)

	log.Println("[INFO] Setting up DisposisiRoutes...")
	routeDetails.DisposisiRoutes(user, db, linkSvc)

	log.Println("[INFO] Setting up MasterRoutes...")
	routeDetails.MasterRoutes(user, admin, db)

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(user, db)

	log.Println("[INFO] Setting up NotificationRoutes...")
	routeDetails.NotificationRoutes(user, db, push)

	log.Println("[INFO] Setting up FileRoutes...")
	routeDetails.FileRoutes(user, blob)
}
