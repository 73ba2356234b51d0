package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifikasi in-app; push web hanyalah kanal tambahan (best-effort).
type NotificationModel struct {
	NotificationID     uuid.UUID `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	NotificationUserID uuid.UUID `gorm:"column:notification_user_id;type:uuid;not null;index" json:"notification_user_id"`

	NotificationTitle   string `gorm:"column:notification_title;type:varchar(200);not null" json:"notification_title"`
	NotificationMessage string `gorm:"column:notification_message;type:text" json:"notification_message"`
	NotificationType    string `gorm:"column:notification_type;type:varchar(30)" json:"notification_type"`

	NotificationTaskID    *uuid.UUID `gorm:"column:notification_task_id;type:uuid" json:"notification_task_id"`
	NotificationTaskTitle string     `gorm:"column:notification_task_title;type:varchar(250)" json:"notification_task_title"`

	NotificationIsRead    bool      `gorm:"column:notification_is_read;not null;default:false;index" json:"notification_is_read"`
	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }

func (n *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
