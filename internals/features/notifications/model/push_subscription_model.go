package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Satu browser subscription per baris; satu user bisa punya beberapa.
type PushSubscriptionModel struct {
	SubscriptionID     uuid.UUID `gorm:"column:subscription_id;type:uuid;primaryKey" json:"subscription_id"`
	SubscriptionUserID uuid.UUID `gorm:"column:subscription_user_id;type:uuid;not null;index" json:"subscription_user_id"`

	SubscriptionEndpoint string `gorm:"column:subscription_endpoint;type:text;not null;uniqueIndex" json:"subscription_endpoint"`
	SubscriptionP256dh   string `gorm:"column:subscription_p256dh;type:text;not null" json:"subscription_p256dh"`
	SubscriptionAuth     string `gorm:"column:subscription_auth;type:text;not null" json:"subscription_auth"`

	SubscriptionCreatedAt time.Time `gorm:"column:subscription_created_at;autoCreateTime" json:"subscription_created_at"`
}

func (PushSubscriptionModel) TableName() string { return "push_subscriptions" }

func (p *PushSubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if p.SubscriptionID == uuid.Nil {
		p.SubscriptionID = uuid.New()
	}
	return nil
}
