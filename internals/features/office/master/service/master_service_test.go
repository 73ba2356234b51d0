package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	masterModel "kantorku_backend/internals/features/office/master/model"
	suratModel "kantorku_backend/internals/features/office/surat/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	if err := db.AutoMigrate(&suratModel.SuratModel{}); err != nil {
		t.Fatalf("migrate surats: %v", err)
	}
	for _, k := range masterModel.Kategoris() {
		if err := db.Table(k.Tabel).AutoMigrate(&masterModel.MasterItemModel{}); err != nil {
			t.Fatalf("migrate %s: %v", k.Tabel, err)
		}
	}
	return db
}

func seedSurat(t *testing.T, db *gorm.DB, asalTujuan string, tipe suratModel.TipeUnit, sifat string) *suratModel.SuratModel {
	t.Helper()
	s := &suratModel.SuratModel{
		SuratArah:       suratModel.SuratMasuk,
		SuratTanggal:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		SuratAsalTujuan: asalTujuan,
		SuratTipeUnit:   tipe,
		SuratSifat:      sifat,
		SuratDibuatOleh: uuid.New(),
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed surat: %v", err)
	}
	return s
}

func wantFiberCode(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("bukan *fiber.Error: %v", err)
	}
	if fe.Code != code {
		t.Fatalf("code = %d, mau %d", fe.Code, code)
	}
}

func TestAddDanDuplikat(t *testing.T) {
	svc := NewMasterService(newTestDB(t))

	item, err := svc.Add("sifat_surat", "  Segera  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.ItemNama != "Segera" {
		t.Errorf("nama = %q, mau trimmed %q", item.ItemNama, "Segera")
	}

	_, err = svc.Add("sifat_surat", "Segera")
	if err == nil {
		t.Fatal("duplikat harus ditolak")
	}
	wantFiberCode(t, err, fiber.StatusConflict)

	if _, err := svc.Add("sifat_surat", "   "); err == nil {
		t.Error("nama kosong harus ditolak")
	}
	if _, err := svc.Add("warna_favorit", "Biru"); err == nil {
		t.Error("kategori tak dikenal harus 404")
	}
}

func TestRenameCascadeKeSurat(t *testing.T) {
	db := newTestDB(t)
	svc := NewMasterService(db)

	item, err := svc.Add("sifat_surat", "Biasa")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	cocok := seedSurat(t, db, "Dinas Kominfo", suratModel.UnitEksternal, "Biasa")
	lain := seedSurat(t, db, "Dinas Kominfo", suratModel.UnitEksternal, "Segera")

	if _, err := svc.Rename("sifat_surat", item.ItemID, "Biasa Sekali"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	// struct tujuan harus baru per lookup; PK yang sudah terisi ikut
	// masuk kondisi query berikutnya
	var afterCocok suratModel.SuratModel
	if err := db.First(&afterCocok, "surat_id = ?", cocok.SuratID).Error; err != nil {
		t.Fatalf("ambil surat cocok: %v", err)
	}
	if afterCocok.SuratSifat != "Biasa Sekali" {
		t.Errorf("cascade gagal: sifat = %q", afterCocok.SuratSifat)
	}
	var afterLain suratModel.SuratModel
	if err := db.First(&afterLain, "surat_id = ?", lain.SuratID).Error; err != nil {
		t.Fatalf("ambil surat lain: %v", err)
	}
	if afterLain.SuratSifat != "Segera" {
		t.Errorf("surat lain ikut berubah: %q", afterLain.SuratSifat)
	}
}

// Unit internal dan eksternal sama-sama dirujuk kolom surat_asal_tujuan;
// rename di satu kategori tidak boleh menyentuh kategori lain walau
// namanya kebetulan sama persis.
func TestRenameUnitTerisolasiPerTipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewMasterService(db)

	internal, err := svc.Add("unit_internal", "Bagian Umum")
	if err != nil {
		t.Fatalf("add internal: %v", err)
	}
	if _, err := svc.Add("unit_eksternal", "Bagian Umum"); err != nil {
		t.Fatalf("add eksternal: %v", err)
	}

	sInternal := seedSurat(t, db, "Bagian Umum", suratModel.UnitInternal, "Biasa")
	sEksternal := seedSurat(t, db, "Bagian Umum", suratModel.UnitEksternal, "Biasa")

	if _, err := svc.Rename("unit_internal", internal.ItemID, "Bagian Umum dan Kepegawaian"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	var afterInternal suratModel.SuratModel
	if err := db.First(&afterInternal, "surat_id = ?", sInternal.SuratID).Error; err != nil {
		t.Fatalf("ambil surat internal: %v", err)
	}
	if afterInternal.SuratAsalTujuan != "Bagian Umum dan Kepegawaian" {
		t.Errorf("surat internal tidak ter-cascade: %q", afterInternal.SuratAsalTujuan)
	}
	var afterEksternal suratModel.SuratModel
	if err := db.First(&afterEksternal, "surat_id = ?", sEksternal.SuratID).Error; err != nil {
		t.Fatalf("ambil surat eksternal: %v", err)
	}
	if afterEksternal.SuratAsalTujuan != "Bagian Umum" {
		t.Errorf("surat eksternal ikut berubah: %q", afterEksternal.SuratAsalTujuan)
	}
}

func TestDeleteDitolakSaatMasihDipakai(t *testing.T) {
	db := newTestDB(t)
	svc := NewMasterService(db)

	item, err := svc.Add("jenis_naskah", "Nota Dinas")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	s := seedSurat(t, db, "Dinas Kominfo", suratModel.UnitEksternal, "Biasa")
	db.Model(&suratModel.SuratModel{}).
		Where("surat_id = ?", s.SuratID).
		Update("surat_jenis_naskah", "Nota Dinas")

	err = svc.Delete("jenis_naskah", item.ItemID)
	if err == nil {
		t.Fatal("delete nilai terpakai harus ditolak")
	}
	wantFiberCode(t, err, fiber.StatusConflict)

	// setelah tidak dipakai, boleh dihapus
	db.Model(&suratModel.SuratModel{}).
		Where("surat_id = ?", s.SuratID).
		Update("surat_jenis_naskah", "Surat Dinas")
	if err := svc.Delete("jenis_naskah", item.ItemID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	items, err := svc.List("jenis_naskah")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("sisa item = %d, mau 0", len(items))
	}
}
