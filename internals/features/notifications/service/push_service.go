package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dispModel "kantorku_backend/internals/features/office/disposisi/model"
	notifModel "kantorku_backend/internals/features/notifications/model"
)

// Payload yang dikirim ke setiap subscription milik user.
type PushPayload struct {
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	TaskID    *uuid.UUID `json:"task_id,omitempty"`
	TaskTitle string     `json:"task_title,omitempty"`
	Type      string     `json:"type"`
}

type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subscriber string
}

type PushService struct {
	DB     *gorm.DB
	VAPID  VAPIDConfig
	Client *http.Client
}

func NewPushService(db *gorm.DB, vapid VAPIDConfig) *PushService {
	return &PushService{DB: db, VAPID: vapid}
}

// Dispatch menyimpan notifikasi in-app lalu mendorong Web Push ke semua
// subscription user tersebut. Subscription yang menjawab 404/410 sudah
// tidak valid dan langsung dipangkas.
func (s *PushService) Dispatch(ctx context.Context, p PushPayload) error {
	notif := notifModel.NotificationModel{
		NotificationUserID:    p.UserID,
		NotificationTitle:     p.Title,
		NotificationMessage:   p.Message,
		NotificationType:      p.Type,
		NotificationTaskID:    p.TaskID,
		NotificationTaskTitle: p.TaskTitle,
	}
	if err := s.DB.WithContext(ctx).Create(&notif).Error; err != nil {
		return err
	}

	if s.VAPID.PrivateKey == "" {
		return nil // push nonaktif, cukup in-app
	}

	var subs []notifModel.PushSubscriptionModel
	if err := s.DB.WithContext(ctx).
		Where("subscription_user_id = ?", p.UserID).
		Find(&subs).Error; err != nil {
		return err
	}

	body, err := json.Marshal(p)
	if err != nil {
		return err
	}

	for _, sub := range subs {
		resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
			Endpoint: sub.SubscriptionEndpoint,
			Keys: webpush.Keys{
				P256dh: sub.SubscriptionP256dh,
				Auth:   sub.SubscriptionAuth,
			},
		}, &webpush.Options{
			Subscriber:      s.VAPID.Subscriber,
			VAPIDPublicKey:  s.VAPID.PublicKey,
			VAPIDPrivateKey: s.VAPID.PrivateKey,
			TTL:             60,
			HTTPClient:      s.Client,
		})
		if err != nil {
			log.Printf("[PUSH] gagal kirim ke %s: %v", sub.SubscriptionEndpoint, err)
			continue
		}
		status := resp.StatusCode
		resp.Body.Close()

		if status == http.StatusNotFound || status == http.StatusGone {
			if err := s.DB.WithContext(ctx).
				Where("subscription_id = ?", sub.SubscriptionID).
				Delete(&notifModel.PushSubscriptionModel{}).Error; err != nil {
				log.Printf("[PUSH] gagal prune subscription %s: %v", sub.SubscriptionID, err)
			}
		}
	}
	return nil
}

// DisposisiDibuat memenuhi kontrak Notifier milik LinkService.
func (s *PushService) DisposisiDibuat(ctx context.Context, d dispModel.DisposisiModel) {
	taskID := d.DisposisiID
	err := s.Dispatch(ctx, PushPayload{
		UserID:    d.DisposisiAssignedTo,
		Title:     "Disposisi baru",
		Message:   d.DisposisiInstruksi,
		TaskID:    &taskID,
		TaskTitle: d.DisposisiInstruksi,
		Type:      "disposisi",
	})
	if err != nil {
		log.Printf("[PUSH] dispatch disposisi %s: %v", d.DisposisiID, err)
	}
}
