package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kantorku_backend/internals/features/office/lampiran"
)

type KegiatanStatus string

const (
	KegiatanScheduled KegiatanStatus = "scheduled"
	KegiatanOngoing   KegiatanStatus = "ongoing"
	KegiatanCompleted KegiatanStatus = "completed"
	KegiatanCancelled KegiatanStatus = "cancelled"
)

type KegiatanTipe string

const (
	TipeRapat       KegiatanTipe = "Rapat"
	TipeSosialisasi KegiatanTipe = "Sosialisasi"
	TipeKunjungan   KegiatanTipe = "Kunjungan Kerja"
	TipeLainnya     KegiatanTipe = "Lainnya"
)

func ValidKegiatanTipe(t KegiatanTipe) bool {
	switch t {
	case TipeRapat, TipeSosialisasi, TipeKunjungan, TipeLainnya:
		return true
	}
	return false
}

type KegiatanModel struct {
	KegiatanID    uuid.UUID    `gorm:"column:kegiatan_id;type:uuid;primaryKey" json:"kegiatan_id"`
	KegiatanJudul string       `gorm:"column:kegiatan_judul;type:varchar(250);not null" json:"kegiatan_judul"`
	KegiatanTipe  KegiatanTipe `gorm:"column:kegiatan_tipe;type:varchar(30);not null;index" json:"kegiatan_tipe"`

	// Satu hari (mulai == selesai) atau rentang beberapa hari
	KegiatanTanggalMulai   time.Time `gorm:"column:kegiatan_tanggal_mulai;type:date;not null;index" json:"kegiatan_tanggal_mulai"`
	KegiatanTanggalSelesai time.Time `gorm:"column:kegiatan_tanggal_selesai;type:date;not null" json:"kegiatan_tanggal_selesai"`
	KegiatanJamMulai       string    `gorm:"column:kegiatan_jam_mulai;type:varchar(5)" json:"kegiatan_jam_mulai"`
	KegiatanJamSelesai     string    `gorm:"column:kegiatan_jam_selesai;type:varchar(5)" json:"kegiatan_jam_selesai"`

	KegiatanLokasi     string  `gorm:"column:kegiatan_lokasi;type:varchar(250)" json:"kegiatan_lokasi"`
	KegiatanLinkOnline *string `gorm:"column:kegiatan_link_online;type:text" json:"kegiatan_link_online"`

	KegiatanPengundang         string `gorm:"column:kegiatan_pengundang;type:varchar(150)" json:"kegiatan_pengundang"`
	KegiatanPengundangInstansi string `gorm:"column:kegiatan_pengundang_instansi;type:varchar(200)" json:"kegiatan_pengundang_instansi"`

	// Wajib minimal satu PIC saat disimpan
	KegiatanPIC       datatypes.JSONSlice[string] `gorm:"column:kegiatan_pic;type:jsonb" json:"kegiatan_pic"`
	KegiatanUndangan  datatypes.JSONSlice[string] `gorm:"column:kegiatan_undangan;type:jsonb" json:"kegiatan_undangan"`

	KegiatanProyekID *uuid.UUID `gorm:"column:kegiatan_proyek_id;type:uuid" json:"kegiatan_proyek_id"`

	// Tiga slot dokumen bernama, masing-masing file ATAU link
	KegiatanDokUndangan   lampiran.Lampiran `gorm:"column:kegiatan_dok_undangan;type:jsonb" json:"kegiatan_dok_undangan"`
	KegiatanDokSuratTugas lampiran.Lampiran `gorm:"column:kegiatan_dok_surat_tugas;type:jsonb" json:"kegiatan_dok_surat_tugas"`
	KegiatanDokLaporan    lampiran.Lampiran `gorm:"column:kegiatan_dok_laporan;type:jsonb" json:"kegiatan_dok_laporan"`

	KegiatanLampiran lampiran.List `gorm:"column:kegiatan_lampiran;type:jsonb" json:"kegiatan_lampiran"`
	KegiatanTautan   TautanList    `gorm:"column:kegiatan_tautan;type:jsonb" json:"kegiatan_tautan"`
	KegiatanKomentar KomentarList  `gorm:"column:kegiatan_komentar;type:jsonb" json:"kegiatan_komentar"`

	KegiatanStatus KegiatanStatus `gorm:"column:kegiatan_status;type:varchar(15);not null;default:scheduled;index" json:"kegiatan_status"`

	// Terisi hanya lewat workflow penautan
	KegiatanLinkedSuratID *uuid.UUID `gorm:"column:kegiatan_linked_surat_id;type:uuid;index" json:"kegiatan_linked_surat_id"`

	KegiatanDibuatOleh     uuid.UUID `gorm:"column:kegiatan_dibuat_oleh;type:uuid;not null" json:"kegiatan_dibuat_oleh"`
	KegiatanDibuatOlehNama string    `gorm:"column:kegiatan_dibuat_oleh_nama;type:varchar(150)" json:"kegiatan_dibuat_oleh_nama"`

	KegiatanCreatedAt time.Time `gorm:"column:kegiatan_created_at;autoCreateTime" json:"kegiatan_created_at"`
	KegiatanUpdatedAt time.Time `gorm:"column:kegiatan_updated_at;autoUpdateTime" json:"kegiatan_updated_at"`
}

func (KegiatanModel) TableName() string { return "meetings" }

func (k *KegiatanModel) BeforeCreate(tx *gorm.DB) error {
	if k.KegiatanID == uuid.Nil {
		k.KegiatanID = uuid.New()
	}
	return nil
}
