package service

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	masterModel "kantorku_backend/internals/features/office/master/model"
)

type MasterService struct {
	DB *gorm.DB
}

func NewMasterService(db *gorm.DB) *MasterService {
	return &MasterService{DB: db}
}

func (s *MasterService) resolve(kategoriKey string) (masterModel.Kategori, error) {
	k, ok := masterModel.KategoriByKey(kategoriKey)
	if !ok {
		return masterModel.Kategori{}, fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Kategori master data %q tidak dikenal", kategoriKey))
	}
	return k, nil
}

func (s *MasterService) List(kategoriKey string) ([]masterModel.MasterItemModel, error) {
	k, err := s.resolve(kategoriKey)
	if err != nil {
		return nil, err
	}
	var items []masterModel.MasterItemModel
	if err := s.DB.Table(k.Tabel).
		Order("item_urutan ASC, item_nama ASC").
		Find(&items).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil master data")
	}
	return items, nil
}

func (s *MasterService) Add(kategoriKey, nama string) (*masterModel.MasterItemModel, error) {
	k, err := s.resolve(kategoriKey)
	if err != nil {
		return nil, err
	}
	nama = strings.TrimSpace(nama)
	if nama == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nama tidak boleh kosong")
	}

	var cnt int64
	if err := s.DB.Table(k.Tabel).Where("item_nama = ?", nama).Count(&cnt).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi")
	}
	if cnt > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, fmt.Sprintf("%s %q sudah ada", k.Label, nama))
	}

	item := masterModel.MasterItemModel{ItemID: uuid.New(), ItemNama: nama}
	if err := s.DB.Table(k.Tabel).Create(&item).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal menambah master data")
	}
	return &item, nil
}

// Rename mengganti nilai lookup dan meng-cascade ke surat yang masih
// mereferensikan nilai lama secara string-match pada kolom kategori itu
// saja. Untuk unit internal/eksternal, cascade difilter tipe unit agar
// kategori lain tidak tersentuh.
func (s *MasterService) Rename(kategoriKey string, itemID uuid.UUID, namaBaru string) (*masterModel.MasterItemModel, error) {
	k, err := s.resolve(kategoriKey)
	if err != nil {
		return nil, err
	}
	namaBaru = strings.TrimSpace(namaBaru)
	if namaBaru == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Nama baru tidak boleh kosong")
	}

	var item masterModel.MasterItemModel
	if err := s.DB.Table(k.Tabel).Where("item_id = ?", itemID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Nilai master data tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil master data")
	}
	namaLama := item.ItemNama
	if namaLama == namaBaru {
		return &item, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(k.Tabel).
			Where("item_id = ?", itemID).
			Update("item_nama", namaBaru).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengganti nama")
		}

		q := tx.Table("surats").Where(k.SuratColumn+" = ?", namaLama)
		if k.TipeUnit != "" {
			q = q.Where("surat_tipe_unit = ?", k.TipeUnit)
		}
		if err := q.Update(k.SuratColumn, namaBaru).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cascade rename ke surat")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	item.ItemNama = namaBaru
	return &item, nil
}

// Delete menolak penghapusan kalau nilainya masih dipakai surat manapun.
func (s *MasterService) Delete(kategoriKey string, itemID uuid.UUID) error {
	k, err := s.resolve(kategoriKey)
	if err != nil {
		return err
	}

	var item masterModel.MasterItemModel
	if err := s.DB.Table(k.Tabel).Where("item_id = ?", itemID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Nilai master data tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil master data")
	}

	q := s.DB.Table("surats").Where(k.SuratColumn+" = ?", item.ItemNama)
	if k.TipeUnit != "" {
		q = q.Where("surat_tipe_unit = ?", k.TipeUnit)
	}
	var inUse int64
	if err := q.Count(&inUse).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek pemakaian")
	}
	if inUse > 0 {
		return fiber.NewError(fiber.StatusConflict,
			fmt.Sprintf("%s %q masih dipakai %d surat, tidak bisa dihapus", k.Label, item.ItemNama, inUse))
	}

	if err := s.DB.Table(k.Tabel).Where("item_id = ?", itemID).Delete(&masterModel.MasterItemModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus master data")
	}
	return nil
}
