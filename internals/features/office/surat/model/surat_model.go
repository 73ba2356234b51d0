package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kantorku_backend/internals/features/office/lampiran"
)

type SuratArah string

const (
	SuratMasuk  SuratArah = "Masuk"
	SuratKeluar SuratArah = "Keluar"
)

type TipeUnit string

const (
	UnitInternal  TipeUnit = "Internal"
	UnitEksternal TipeUnit = "Eksternal"
)

type SuratModel struct {
	SuratID   uuid.UUID `gorm:"column:surat_id;type:uuid;primaryKey" json:"surat_id"`
	SuratArah SuratArah `gorm:"column:surat_arah;type:varchar(10);not null;index" json:"surat_arah"`

	// Nomor diharapkan unik per organisasi tapi tidak di-enforce di DB
	SuratNomor   string    `gorm:"column:surat_nomor;type:varchar(100);index" json:"surat_nomor"`
	SuratTanggal time.Time `gorm:"column:surat_tanggal;type:date;index" json:"surat_tanggal"`
	SuratPerihal string    `gorm:"column:surat_perihal;type:text" json:"surat_perihal"`

	// Asal (Masuk) atau tujuan (Keluar), nama unit sesuai master data
	SuratAsalTujuan string   `gorm:"column:surat_asal_tujuan;type:varchar(200);index" json:"surat_asal_tujuan"`
	SuratTipeUnit   TipeUnit `gorm:"column:surat_tipe_unit;type:varchar(10)" json:"surat_tipe_unit"`

	SuratSifat       string `gorm:"column:surat_sifat;type:varchar(100)" json:"surat_sifat"`
	SuratJenisNaskah string `gorm:"column:surat_jenis_naskah;type:varchar(100);index" json:"surat_jenis_naskah"`
	SuratKlasifikasi string `gorm:"column:surat_klasifikasi;type:varchar(100)" json:"surat_klasifikasi"`
	SuratBidangTugas string `gorm:"column:surat_bidang_tugas;type:varchar(100)" json:"surat_bidang_tugas"`

	SuratLampiran lampiran.Lampiran `gorm:"column:surat_lampiran;type:jsonb" json:"surat_lampiran"`

	// Terisi hanya lewat workflow penautan (lihat service disposisi)
	SuratKegiatanID *uuid.UUID `gorm:"column:surat_kegiatan_id;type:uuid;index" json:"surat_kegiatan_id"`

	SuratDibuatOleh     uuid.UUID `gorm:"column:surat_dibuat_oleh;type:uuid;not null" json:"surat_dibuat_oleh"`
	SuratDibuatOlehNama string    `gorm:"column:surat_dibuat_oleh_nama;type:varchar(150)" json:"surat_dibuat_oleh_nama"`

	SuratCreatedAt time.Time `gorm:"column:surat_created_at;autoCreateTime" json:"surat_created_at"`
	SuratUpdatedAt time.Time `gorm:"column:surat_updated_at;autoUpdateTime" json:"surat_updated_at"`
}

func (SuratModel) TableName() string { return "surats" }

func (s *SuratModel) BeforeCreate(tx *gorm.DB) error {
	if s.SuratID == uuid.Nil {
		s.SuratID = uuid.New()
	}
	return nil
}
