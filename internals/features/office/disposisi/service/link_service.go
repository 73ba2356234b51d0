package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dispModel "kantorku_backend/internals/features/office/disposisi/model"
	kegiatanModel "kantorku_backend/internals/features/office/kegiatan/model"
	"kantorku_backend/internals/features/office/lampiran"
	suratModel "kantorku_backend/internals/features/office/surat/model"
)

// Notifier dipanggil setelah commit; kegagalan kirim tidak membatalkan
// data yang sudah tersimpan.
type Notifier interface {
	DisposisiDibuat(ctx context.Context, d dispModel.DisposisiModel)
}

// LinkService mengorkestrasi penautan surat ↔ kegiatan beserta baris
// disposisi yang bergantung padanya. Semua urutan tulis multi-tabel
// dibungkus satu transaksi supaya tidak ada state setengah jadi.
type LinkService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewLinkService(db *gorm.DB, n Notifier) *LinkService {
	return &LinkService{DB: db, Notifier: n}
}

type Assignee struct {
	UserID uuid.UUID
	Nama   string
}

type LinkInput struct {
	SuratID     uuid.UUID
	KegiatanID  uuid.UUID
	Assignees   []Assignee
	Instruksi   string
	Deadline    *time.Time
	DibuatOleh  uuid.UUID
	DibuatNama  string
}

// LinkSuratToKegiatan menautkan satu surat ke satu kegiatan dan membuat
// satu baris disposisi per assignee (status Pending, instruksi dan
// deadline dibagi bersama), plus satu baris audit per disposisi.
func (s *LinkService) LinkSuratToKegiatan(ctx context.Context, in LinkInput) ([]dispModel.DisposisiModel, error) {
	if len(in.Assignees) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Minimal satu penerima disposisi")
	}
	if strings.TrimSpace(in.Instruksi) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Instruksi disposisi tidak boleh kosong")
	}

	var created []dispModel.DisposisiModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var surat suratModel.SuratModel
		if err := tx.Where("surat_id = ?", in.SuratID).First(&surat).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Surat tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil surat")
		}
		var kegiatan kegiatanModel.KegiatanModel
		if err := tx.Where("kegiatan_id = ?", in.KegiatanID).First(&kegiatan).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Kegiatan tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kegiatan")
		}

		// Boleh: belum tertaut sama sekali, atau sudah tertaut satu
		// sama lain (menambah assignee lewat link ulang).
		if surat.SuratKegiatanID != nil && *surat.SuratKegiatanID != in.KegiatanID {
			return fiber.NewError(fiber.StatusConflict, "Surat sudah tertaut ke kegiatan lain")
		}
		if kegiatan.KegiatanLinkedSuratID != nil && *kegiatan.KegiatanLinkedSuratID != in.SuratID {
			return fiber.NewError(fiber.StatusConflict, "Kegiatan sudah tertaut ke surat lain")
		}

		if err := tx.Model(&kegiatanModel.KegiatanModel{}).
			Where("kegiatan_id = ?", in.KegiatanID).
			Update("kegiatan_linked_surat_id", in.SuratID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menautkan kegiatan")
		}
		if err := tx.Model(&suratModel.SuratModel{}).
			Where("surat_id = ?", in.SuratID).
			Update("surat_kegiatan_id", in.KegiatanID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menautkan surat")
		}

		for _, a := range in.Assignees {
			d := dispModel.DisposisiModel{
				DisposisiSuratID:        in.SuratID,
				DisposisiKegiatanID:     in.KegiatanID,
				DisposisiAssignedTo:     a.UserID,
				DisposisiAssignedToNama: a.Nama,
				DisposisiInstruksi:      strings.TrimSpace(in.Instruksi),
				DisposisiStatus:         dispModel.StatusPending,
				DisposisiDeadline:       in.Deadline,
				DisposisiDibuatOleh:     in.DibuatOleh,
				DisposisiDibuatOlehNama: in.DibuatNama,
			}
			if err := tx.Create(&d).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat disposisi")
			}
			if err := s.audit(tx, &d.DisposisiID, in.SuratID, in.KegiatanID, dispModel.AksiDibuat,
				fmt.Sprintf("Disposisi untuk %s", a.Nama), in.DibuatOleh, in.DibuatNama); err != nil {
				return err
			}
			created = append(created, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Notifikasi best-effort di luar transaksi: data sudah aman,
	// kegagalan push hanya dilaporkan sebagai warning oleh caller.
	if s.Notifier != nil {
		for _, d := range created {
			s.Notifier.DisposisiDibuat(ctx, d)
		}
	}
	return created, nil
}

// UnlinkSuratFromKegiatan memutus tautan dan menghapus SEMUA disposisi
// pasangan itu (bukan cuma satu assignee). Konfirmasi ada di caller.
func (s *LinkService) UnlinkSuratFromKegiatan(ctx context.Context, suratID, kegiatanID, aktorID uuid.UUID, aktorNama string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&dispModel.DisposisiModel{}).
			Where("disposisi_surat_id = ? AND disposisi_kegiatan_id = ?", suratID, kegiatanID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung disposisi")
		}

		if err := tx.Model(&kegiatanModel.KegiatanModel{}).
			Where("kegiatan_id = ? AND kegiatan_linked_surat_id = ?", kegiatanID, suratID).
			Update("kegiatan_linked_surat_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal melepas tautan kegiatan")
		}
		if err := tx.Model(&suratModel.SuratModel{}).
			Where("surat_id = ? AND surat_kegiatan_id = ?", suratID, kegiatanID).
			Update("surat_kegiatan_id", nil).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal melepas tautan surat")
		}
		if err := tx.Where("disposisi_surat_id = ? AND disposisi_kegiatan_id = ?", suratID, kegiatanID).
			Delete(&dispModel.DisposisiModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus disposisi")
		}

		return s.audit(tx, nil, suratID, kegiatanID, dispModel.AksiUnlink,
			fmt.Sprintf("Tautan dilepas, %d disposisi dihapus", cnt), aktorID, aktorNama)
	})
}

// RemoveSingleAssignee menghapus tepat satu baris disposisi. Tautan
// surat–kegiatan TIDAK disentuh walaupun ini baris terakhir; perilaku
// asal dipertahankan (lihat DESIGN.md).
func (s *LinkService) RemoveSingleAssignee(ctx context.Context, disposisiID, aktorID uuid.UUID, aktorNama string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d dispModel.DisposisiModel
		if err := tx.Where("disposisi_id = ?", disposisiID).First(&d).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Disposisi tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil disposisi")
		}

		if err := tx.Where("disposisi_id = ?", disposisiID).
			Delete(&dispModel.DisposisiModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus disposisi")
		}

		return s.audit(tx, &d.DisposisiID, d.DisposisiSuratID, d.DisposisiKegiatanID, dispModel.AksiAssigneeDihapus,
			fmt.Sprintf("Assignee %s dihapus dari disposisi", d.DisposisiAssignedToNama), aktorID, aktorNama)
	})
}

// CleanupPreview dipakai UI untuk dialog konfirmasi sebelum cascade.
type CleanupPreview struct {
	JumlahDisposisi int      `json:"jumlah_disposisi"`
	Assignees       []string `json:"assignees"`
	KegiatanJudul   string   `json:"kegiatan_judul,omitempty"`
}

func (s *LinkService) DeleteSuratPreview(ctx context.Context, suratID uuid.UUID) (*CleanupPreview, error) {
	var surat suratModel.SuratModel
	if err := s.DB.WithContext(ctx).Where("surat_id = ?", suratID).First(&surat).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Surat tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil surat")
	}

	var rows []dispModel.DisposisiModel
	if err := s.DB.WithContext(ctx).
		Where("disposisi_surat_id = ?", suratID).
		Find(&rows).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil disposisi")
	}

	p := &CleanupPreview{JumlahDisposisi: len(rows)}
	for _, r := range rows {
		p.Assignees = append(p.Assignees, r.DisposisiAssignedToNama)
	}
	if surat.SuratKegiatanID != nil {
		var kegiatan kegiatanModel.KegiatanModel
		if err := s.DB.WithContext(ctx).Where("kegiatan_id = ?", *surat.SuratKegiatanID).First(&kegiatan).Error; err == nil {
			p.KegiatanJudul = kegiatan.KegiatanJudul
		}
	}
	return p, nil
}

// DeleteSuratWithCleanup menghapus surat berikut seluruh disposisi yang
// mereferensikannya dan melepas tautan kegiatan bila ada.
func (s *LinkService) DeleteSuratWithCleanup(ctx context.Context, suratID, aktorID uuid.UUID, aktorNama string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var surat suratModel.SuratModel
		if err := tx.Where("surat_id = ?", suratID).First(&surat).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Surat tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil surat")
		}

		var cnt int64
		if err := tx.Model(&dispModel.DisposisiModel{}).
			Where("disposisi_surat_id = ?", suratID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung disposisi")
		}

		if err := tx.Where("disposisi_surat_id = ?", suratID).
			Delete(&dispModel.DisposisiModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus disposisi")
		}

		kegiatanID := uuid.Nil
		if surat.SuratKegiatanID != nil {
			kegiatanID = *surat.SuratKegiatanID
			if err := tx.Model(&kegiatanModel.KegiatanModel{}).
				Where("kegiatan_id = ? AND kegiatan_linked_surat_id = ?", kegiatanID, suratID).
				Update("kegiatan_linked_surat_id", nil).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal melepas tautan kegiatan")
			}
		}

		if err := tx.Where("surat_id = ?", suratID).
			Delete(&suratModel.SuratModel{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus surat")
		}

		return s.audit(tx, nil, suratID, kegiatanID, dispModel.AksiSuratDihapus,
			fmt.Sprintf("Surat %s dihapus, %d disposisi ikut terhapus", surat.SuratNomor, cnt), aktorID, aktorNama)
	})
}

type UpdateStatusInput struct {
	DisposisiID     uuid.UUID
	Status          dispModel.DisposisiStatus
	Catatan         *string
	LampiranLaporan lampiran.List
	AktorID         uuid.UUID
	AktorNama       string
}

// UpdateStatus memajukan status disposisi sesuai mesin status.
// completed_at/completed_by diisi tepat saat (dan hanya saat) update
// ini menetapkan status Completed.
func (s *LinkService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*dispModel.DisposisiModel, error) {
	if !dispModel.ValidStatus(in.Status) {
		return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Status %q tidak dikenal", in.Status))
	}

	var after dispModel.DisposisiModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d dispModel.DisposisiModel
		if err := tx.Where("disposisi_id = ?", in.DisposisiID).First(&d).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Disposisi tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil disposisi")
		}

		if !dispModel.CanTransition(d.DisposisiStatus, in.Status) {
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("Transisi status %s → %s tidak diizinkan", d.DisposisiStatus, in.Status))
		}

		updates := map[string]interface{}{
			"disposisi_status": in.Status,
		}
		if in.Catatan != nil {
			updates["disposisi_catatan"] = strings.TrimSpace(*in.Catatan)
		}
		if in.LampiranLaporan != nil {
			updates["disposisi_lampiran_laporan"] = in.LampiranLaporan
		}
		if in.Status == dispModel.StatusCompleted && d.DisposisiStatus != dispModel.StatusCompleted {
			now := time.Now()
			updates["disposisi_completed_at"] = now
			updates["disposisi_completed_by"] = in.AktorID
		}

		if err := tx.Model(&dispModel.DisposisiModel{}).
			Where("disposisi_id = ?", in.DisposisiID).
			Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui disposisi")
		}

		if d.DisposisiStatus != in.Status {
			if err := s.audit(tx, &d.DisposisiID, d.DisposisiSuratID, d.DisposisiKegiatanID, dispModel.AksiStatusBerubah,
				fmt.Sprintf("Status %s → %s", d.DisposisiStatus, in.Status), in.AktorID, in.AktorNama); err != nil {
				return err
			}
		}

		return tx.Where("disposisi_id = ?", in.DisposisiID).First(&after).Error
	})
	if err != nil {
		return nil, err
	}
	return &after, nil
}

func (s *LinkService) audit(tx *gorm.DB, disposisiID *uuid.UUID, suratID, kegiatanID uuid.UUID, aksi, detail string, aktorID uuid.UUID, aktorNama string) error {
	h := dispModel.DisposisiHistoryModel{
		HistoryDisposisiID: disposisiID,
		HistorySuratID:     suratID,
		HistoryKegiatanID:  kegiatanID,
		HistoryAksi:        aksi,
		HistoryDetail:      detail,
		HistoryAktorID:     aktorID,
		HistoryAktorNama:   aktorNama,
	}
	if err := tx.Create(&h).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menulis audit trail")
	}
	return nil
}
