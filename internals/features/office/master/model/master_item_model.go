package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Satu baris nilai lookup. Semua tabel master memakai bentuk kolom yang
// sama; tabelnya dipilih per kategori lewat registry di bawah.
type MasterItemModel struct {
	ItemID        uuid.UUID `gorm:"column:item_id;type:uuid;primaryKey" json:"item_id"`
	ItemNama      string    `gorm:"column:item_nama;type:varchar(200);not null" json:"item_nama"`
	ItemUrutan    int       `gorm:"column:item_urutan;type:int;not null;default:0" json:"item_urutan"`
	ItemCreatedAt time.Time `gorm:"column:item_created_at;autoCreateTime" json:"item_created_at"`
}

func (m *MasterItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ItemID == uuid.Nil {
		m.ItemID = uuid.New()
	}
	return nil
}

// Kategori memetakan nama kategori ke tabel lookup dan kolom surat yang
// mereferensikan nilainya (by string, bukan id, demi kompatibilitas
// dengan data lama).
type Kategori struct {
	Key         string
	Tabel       string
	Label       string
	SuratColumn string
	// Untuk unit internal/eksternal: keduanya dipakai di kolom
	// surat_asal_tujuan, dibedakan lewat surat_tipe_unit.
	TipeUnit string
}

var kategoris = []Kategori{
	{Key: "unit_internal", Tabel: "master_unit_internal", Label: "Unit Internal", SuratColumn: "surat_asal_tujuan", TipeUnit: "Internal"},
	{Key: "unit_eksternal", Tabel: "master_unit_eksternal", Label: "Unit Eksternal", SuratColumn: "surat_asal_tujuan", TipeUnit: "Eksternal"},
	{Key: "sifat_surat", Tabel: "master_sifat_surat", Label: "Sifat Surat", SuratColumn: "surat_sifat"},
	{Key: "jenis_naskah", Tabel: "master_jenis_naskah", Label: "Jenis Naskah", SuratColumn: "surat_jenis_naskah"},
	{Key: "klasifikasi_surat", Tabel: "master_klasifikasi_surat", Label: "Klasifikasi Surat", SuratColumn: "surat_klasifikasi"},
	{Key: "bidang_tugas", Tabel: "master_bidang_tugas", Label: "Bidang Tugas", SuratColumn: "surat_bidang_tugas"},
}

func Kategoris() []Kategori { return kategoris }

func KategoriByKey(key string) (Kategori, bool) {
	for _, k := range kategoris {
		if k.Key == key {
			return k, true
		}
	}
	return Kategori{}, false
}
