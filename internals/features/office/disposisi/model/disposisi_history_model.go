package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AksiDibuat          = "created"
	AksiStatusBerubah   = "status_changed"
	AksiAssigneeDihapus = "assignee_removed"
	AksiUnlink          = "unlinked"
	AksiSuratDihapus    = "surat_deleted"
)

// Jejak audit workflow disposisi. disposisi_id dibiarkan terisi walau
// baris disposisinya sudah dihapus (audit bertahan lebih lama dari data).
type DisposisiHistoryModel struct {
	HistoryID          uuid.UUID  `gorm:"column:history_id;type:uuid;primaryKey" json:"history_id"`
	HistoryDisposisiID *uuid.UUID `gorm:"column:history_disposisi_id;type:uuid;index" json:"history_disposisi_id"`

	HistorySuratID    uuid.UUID `gorm:"column:history_surat_id;type:uuid;not null;index" json:"history_surat_id"`
	HistoryKegiatanID uuid.UUID `gorm:"column:history_kegiatan_id;type:uuid;index" json:"history_kegiatan_id"`

	HistoryAksi   string `gorm:"column:history_aksi;type:varchar(30);not null" json:"history_aksi"`
	HistoryDetail string `gorm:"column:history_detail;type:text" json:"history_detail"`

	HistoryAktorID   uuid.UUID `gorm:"column:history_aktor_id;type:uuid;not null" json:"history_aktor_id"`
	HistoryAktorNama string    `gorm:"column:history_aktor_nama;type:varchar(150)" json:"history_aktor_nama"`

	HistoryCreatedAt time.Time `gorm:"column:history_created_at;autoCreateTime" json:"history_created_at"`
}

func (DisposisiHistoryModel) TableName() string { return "disposisi_history" }

func (h *DisposisiHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if h.HistoryID == uuid.Nil {
		h.HistoryID = uuid.New()
	}
	return nil
}
