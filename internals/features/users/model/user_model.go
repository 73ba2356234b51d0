package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Direktori pegawai untuk dropdown assignee dan metadata pembuat.
// Autentikasi dikelola provider eksternal; tabel ini hanya profil.
type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserNama     string    `gorm:"column:user_nama;type:varchar(150);not null" json:"user_nama"`
	UserEmail    string    `gorm:"column:user_email;type:varchar(150);uniqueIndex" json:"user_email"`
	UserUnit     string    `gorm:"column:user_unit;type:varchar(200)" json:"user_unit"`
	UserRole     string    `gorm:"column:user_role;type:varchar(20);not null;default:staff" json:"user_role"`
	UserIsActive bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string { return "users" }

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
