package database

import (
	"log"

	"gorm.io/gorm"

	notifModel "kantorku_backend/internals/features/notifications/model"
	dispModel "kantorku_backend/internals/features/office/disposisi/model"
	kegiatanModel "kantorku_backend/internals/features/office/kegiatan/model"
	masterModel "kantorku_backend/internals/features/office/master/model"
	suratModel "kantorku_backend/internals/features/office/surat/model"
	userModel "kantorku_backend/internals/features/users/model"
)

// AutoMigrate dijalankan hanya kalau DB_AUTO_MIGRATE=true; di produksi
// skema dikelola lewat migrasi SQL.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel.UserModel{},
		&suratModel.SuratModel{},
		&kegiatanModel.KegiatanModel{},
		&dispModel.DisposisiModel{},
		&dispModel.DisposisiHistoryModel{},
		&notifModel.NotificationModel{},
		&notifModel.PushSubscriptionModel{},
	); err != nil {
		return err
	}

	// tabel master: satu bentuk, banyak tabel
	for _, k := range masterModel.Kategoris() {
		if err := db.Table(k.Tabel).AutoMigrate(&masterModel.MasterItemModel{}); err != nil {
			return err
		}
	}

	log.Println("✅ AutoMigrate selesai.")
	return nil
}
