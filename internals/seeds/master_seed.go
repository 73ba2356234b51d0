package seeds

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	masterModel "kantorku_backend/internals/features/office/master/model"
)

// Nilai awal lookup master data. Idempoten: nilai yang sudah ada
// dilewati, jadi aman dijalankan berulang saat deploy.
var defaultMasterItems = map[string][]string{
	"sifat_surat":       {"Biasa", "Segera", "Sangat Segera", "Rahasia"},
	"jenis_naskah":      {"Nota Dinas", "Surat Dinas", "Surat Undangan", "Surat Tugas", "Surat Edaran", "Laporan"},
	"klasifikasi_surat": {"Umum", "Kepegawaian", "Keuangan", "Perencanaan"},
	"bidang_tugas":      {"Sekretariat", "Bidang I", "Bidang II", "Bidang III"},
}

func SeedMasterData(db *gorm.DB) error {
	for key, names := range defaultMasterItems {
		k, ok := masterModel.KategoriByKey(key)
		if !ok {
			continue
		}
		for i, nama := range names {
			var cnt int64
			if err := db.Table(k.Tabel).Where("item_nama = ?", nama).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt > 0 {
				continue
			}
			item := masterModel.MasterItemModel{ItemID: uuid.New(), ItemNama: nama, ItemUrutan: i + 1}
			if err := db.Table(k.Tabel).Create(&item).Error; err != nil {
				return err
			}
			log.Printf("[SEED] %s += %q", k.Tabel, nama)
		}
	}
	return nil
}
