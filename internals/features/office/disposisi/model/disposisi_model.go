package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kantorku_backend/internals/features/office/lampiran"
)

type DisposisiStatus string

const (
	StatusPending    DisposisiStatus = "Pending"
	StatusInProgress DisposisiStatus = "In Progress"
	StatusCompleted  DisposisiStatus = "Completed"
	StatusCancelled  DisposisiStatus = "Cancelled"
)

// Transisi yang diizinkan: Pending → In Progress → Completed,
// Cancelled dari Pending atau In Progress. Tidak ada jalan keluar
// dari Completed/Cancelled.
var allowedTransitions = map[DisposisiStatus][]DisposisiStatus{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func ValidStatus(s DisposisiStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func CanTransition(from, to DisposisiStatus) bool {
	if from == to {
		return true
	}
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Disposisi hanya hidup dalam konteks pasangan surat–kegiatan yang
// tertaut; satu baris per assignee.
type DisposisiModel struct {
	DisposisiID         uuid.UUID `gorm:"column:disposisi_id;type:uuid;primaryKey" json:"disposisi_id"`
	DisposisiSuratID    uuid.UUID `gorm:"column:disposisi_surat_id;type:uuid;not null;index" json:"disposisi_surat_id"`
	DisposisiKegiatanID uuid.UUID `gorm:"column:disposisi_kegiatan_id;type:uuid;not null;index" json:"disposisi_kegiatan_id"`

	DisposisiAssignedTo     uuid.UUID `gorm:"column:disposisi_assigned_to;type:uuid;not null;index" json:"disposisi_assigned_to"`
	DisposisiAssignedToNama string    `gorm:"column:disposisi_assigned_to_nama;type:varchar(150)" json:"disposisi_assigned_to_nama"`

	DisposisiInstruksi string          `gorm:"column:disposisi_instruksi;type:text;not null" json:"disposisi_instruksi"`
	DisposisiStatus    DisposisiStatus `gorm:"column:disposisi_status;type:varchar(20);not null;default:Pending;index" json:"disposisi_status"`
	DisposisiDeadline  *time.Time      `gorm:"column:disposisi_deadline;type:date" json:"disposisi_deadline"`

	DisposisiLampiranLaporan lampiran.List `gorm:"column:disposisi_lampiran_laporan;type:jsonb" json:"disposisi_lampiran_laporan"`
	DisposisiCatatan         *string       `gorm:"column:disposisi_catatan;type:text" json:"disposisi_catatan"`

	DisposisiDibuatOleh     uuid.UUID `gorm:"column:disposisi_dibuat_oleh;type:uuid;not null" json:"disposisi_dibuat_oleh"`
	DisposisiDibuatOlehNama string    `gorm:"column:disposisi_dibuat_oleh_nama;type:varchar(150)" json:"disposisi_dibuat_oleh_nama"`

	DisposisiCreatedAt   time.Time  `gorm:"column:disposisi_created_at;autoCreateTime" json:"disposisi_created_at"`
	DisposisiUpdatedAt   time.Time  `gorm:"column:disposisi_updated_at;autoUpdateTime" json:"disposisi_updated_at"`
	DisposisiCompletedAt *time.Time `gorm:"column:disposisi_completed_at" json:"disposisi_completed_at"`
	DisposisiCompletedBy *uuid.UUID `gorm:"column:disposisi_completed_by;type:uuid" json:"disposisi_completed_by"`
}

func (DisposisiModel) TableName() string { return "disposisi" }

func (d *DisposisiModel) BeforeCreate(tx *gorm.DB) error {
	if d.DisposisiID == uuid.Nil {
		d.DisposisiID = uuid.New()
	}
	return nil
}
