package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "kantorku_backend/internals/features/notifications/model"
	notifService "kantorku_backend/internals/features/notifications/service"
	helper "kantorku_backend/internals/helpers"
	helperAuth "kantorku_backend/internals/helpers/auth"
)

type NotificationController struct {
	DB   *gorm.DB
	Push *notifService.PushService
}

func NewNotificationController(db *gorm.DB, push *notifService.PushService) *NotificationController {
	return &NotificationController{DB: db, Push: push}
}

var validateNotif = validator.New()

type subscribeRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Keys     struct {
		P256dh string `json:"p256dh" validate:"required"`
		Auth   string `json:"auth" validate:"required"`
	} `json:"keys" validate:"required"`
}

// GET /notifications/vapid-key
// Public key untuk PushManager.subscribe di sisi browser.
func (h *NotificationController) VAPIDKey(c *fiber.Ctx) error {
	if h.Push == nil || h.Push.VAPID.PublicKey == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Web push tidak dikonfigurasi")
	}
	return helper.JsonOK(c, "", fiber.Map{"public_key": h.Push.VAPID.PublicKey})
}

// POST /notifications/subscribe
// Endpoint yang sama didaftarkan ulang hanya memperbarui kuncinya.
func (h *NotificationController) Subscribe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateNotif.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var existing notifModel.PushSubscriptionModel
	err = h.DB.Where("subscription_endpoint = ?", req.Endpoint).First(&existing).Error
	switch {
	case err == nil:
		if err := h.DB.Model(&notifModel.PushSubscriptionModel{}).
			Where("subscription_id = ?", existing.SubscriptionID).
			Updates(map[string]interface{}{
				"subscription_user_id": userID,
				"subscription_p256dh":  req.Keys.P256dh,
				"subscription_auth":    req.Keys.Auth,
			}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui subscription")
		}
		return helper.JsonUpdated(c, "Subscription diperbarui", fiber.Map{"subscription_id": existing.SubscriptionID})
	case err == gorm.ErrRecordNotFound:
		sub := notifModel.PushSubscriptionModel{
			SubscriptionUserID:   userID,
			SubscriptionEndpoint: req.Endpoint,
			SubscriptionP256dh:   req.Keys.P256dh,
			SubscriptionAuth:     req.Keys.Auth,
		}
		if err := h.DB.Create(&sub).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan subscription")
		}
		return helper.JsonCreated(c, "Subscription terdaftar", fiber.Map{"subscription_id": sub.SubscriptionID})
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek subscription")
	}
}

// DELETE /notifications/subscribe
func (h *NotificationController) Unsubscribe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req struct {
		Endpoint string `json:"endpoint" validate:"required,url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateNotif.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.DB.Where("subscription_endpoint = ? AND subscription_user_id = ?", req.Endpoint, userID).
		Delete(&notifModel.PushSubscriptionModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus subscription")
	}
	return helper.JsonDeleted(c, "Subscription dihapus", fiber.Map{"endpoint": req.Endpoint})
}

// GET /notifications?unread=true
func (h *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	q := h.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if strings.EqualFold(c.Query("unread"), "true") {
		q = q.Where("notification_is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var rows []notifModel.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	return helper.JsonList(c, "", rows,
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// PATCH /notifications/:id/read
func (h *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := h.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", id, userID).
		Update("notification_is_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai terbaca", fiber.Map{"notification_id": id})
}

// PATCH /notifications/read-all
func (h *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res := h.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Update("notification_is_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui notifikasi")
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai terbaca", fiber.Map{"jumlah": res.RowsAffected})
}
