package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dispModel "kantorku_backend/internals/features/office/disposisi/model"
	kegiatanModel "kantorku_backend/internals/features/office/kegiatan/model"
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
	if err := db.AutoMigrate(
		&suratModel.SuratModel{},
		&kegiatanModel.KegiatanModel{},
		&dispModel.DisposisiModel{},
		&dispModel.DisposisiHistoryModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newSurat(t *testing.T, db *gorm.DB) *suratModel.SuratModel {
	t.Helper()
	s := &suratModel.SuratModel{
		SuratArah:       suratModel.SuratMasuk,
		SuratNomor:      "005/UND/2026",
		SuratTanggal:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		SuratPerihal:    "Undangan rapat koordinasi",
		SuratAsalTujuan: "Dinas Kominfo",
		SuratTipeUnit:   suratModel.UnitEksternal,
		SuratDibuatOleh: uuid.New(),
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed surat: %v", err)
	}
	return s
}

func newKegiatan(t *testing.T, db *gorm.DB) *kegiatanModel.KegiatanModel {
	t.Helper()
	k := &kegiatanModel.KegiatanModel{
		KegiatanJudul:          "Rapat koordinasi triwulan",
		KegiatanTipe:           kegiatanModel.TipeRapat,
		KegiatanTanggalMulai:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		KegiatanTanggalSelesai: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		KegiatanPIC:            []string{"Andi"},
		KegiatanStatus:         kegiatanModel.KegiatanScheduled,
		KegiatanDibuatOleh:     uuid.New(),
	}
	if err := db.Create(k).Error; err != nil {
		t.Fatalf("seed kegiatan: %v", err)
	}
	return k
}

type recordingNotifier struct {
	got []dispModel.DisposisiModel
}

func (r *recordingNotifier) DisposisiDibuat(ctx context.Context, d dispModel.DisposisiModel) {
	r.got = append(r.got, d)
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		t.Fatalf("bukan *fiber.Error: %v", err)
	}
	return fe.Code
}

func linkInput(surat *suratModel.SuratModel, kegiatan *kegiatanModel.KegiatanModel, assignees ...Assignee) LinkInput {
	return LinkInput{
		SuratID:    surat.SuratID,
		KegiatanID: kegiatan.KegiatanID,
		Assignees:  assignees,
		Instruksi:  "Hadiri dan laporkan hasilnya",
		DibuatOleh: uuid.New(),
		DibuatNama: "Kepala Bidang",
	}
}

func TestLinkSuratToKegiatan(t *testing.T) {
	db := newTestDB(t)
	notif := &recordingNotifier{}
	svc := NewLinkService(db, notif)

	surat := newSurat(t, db)
	kegiatan := newKegiatan(t, db)

	assignees := []Assignee{
		{UserID: uuid.New(), Nama: "Budi"},
		{UserID: uuid.New(), Nama: "Citra"},
		{UserID: uuid.New(), Nama: "Dewi"},
	}

	created, err := svc.LinkSuratToKegiatan(context.Background(), linkInput(surat, kegiatan, assignees...))
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("disposisi dibuat = %d, mau 3", len(created))
	}
	for _, d := range created {
		if d.DisposisiStatus != dispModel.StatusPending {
			t.Errorf("status awal = %q, mau Pending", d.DisposisiStatus)
		}
	}

	var sAfter suratModel.SuratModel
	if err := db.First(&sAfter, "surat_id = ?", surat.SuratID).Error; err != nil {
		t.Fatalf("reload surat: %v", err)
	}
	if sAfter.SuratKegiatanID == nil || *sAfter.SuratKegiatanID != kegiatan.KegiatanID {
		t.Errorf("surat_kegiatan_id = %v, mau %s", sAfter.SuratKegiatanID, kegiatan.KegiatanID)
	}
	var kAfter kegiatanModel.KegiatanModel
	if err := db.First(&kAfter, "kegiatan_id = ?", kegiatan.KegiatanID).Error; err != nil {
		t.Fatalf("reload kegiatan: %v", err)
	}
	if kAfter.KegiatanLinkedSuratID == nil || *kAfter.KegiatanLinkedSuratID != surat.SuratID {
		t.Errorf("kegiatan_linked_surat_id = %v, mau %s", kAfter.KegiatanLinkedSuratID, surat.SuratID)
	}

	var auditCnt int64
	db.Model(&dispModel.DisposisiHistoryModel{}).
		Where("history_aksi = ?", dispModel.AksiDibuat).Count(&auditCnt)
	if auditCnt != 3 {
		t.Errorf("baris audit created = %d, mau 3", auditCnt)
	}

	if len(notif.got) != 3 {
		t.Errorf("notifier dipanggil %d kali, mau 3", len(notif.got))
	}
}

func TestLinkValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLinkService(db, nil)
	surat := newSurat(t, db)
	kegiatan := newKegiatan(t, db)

	tests := []struct {
		name   string
		mutate func(in *LinkInput)
		code   int
	}{
		{"tanpa assignee", func(in *LinkInput) { in.Assignees = nil }, fiber.StatusBadRequest},
		{"instruksi kosong", func(in *LinkInput) { in.Instruksi = "   " }, fiber.StatusBadRequest},
		{"surat tidak ada", func(in *LinkInput) { in.SuratID = uuid.New() }, fiber.StatusNotFound},
		{"kegiatan tidak ada", func(in *LinkInput) { in.KegiatanID = uuid.New() }, fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := linkInput(surat, kegiatan, Assignee{UserID: uuid.New(), Nama: "Budi"})
			tt.mutate(&in)
			_, err := svc.LinkSuratToKegiatan(context.Background(), in)
			if err == nil {
				t.Fatal("mau error, dapat nil")
			}
			if got := fiberCode(t, err); got != tt.code {
				t.Errorf("code = %d, mau %d", got, tt.code)
			}
		})
	}
}

func TestLinkConflictWhenAlreadyLinkedElsewhere(t *testing.T) {
	db := newTestDB(t)
	svc := NewLinkService(db, nil)

	surat := newSurat(t, db)
	k1 := newKegiatan(t, db)
	k2 := newKegiatan(t, db)

	if _, err := svc.LinkSuratToKegiatan(context.Background(),
		linkInput(surat, k1, Assignee{UserID: uuid.New(), Nama: "Budi"})); err != nil {
		t.Fatalf("link pertama: %v", err)
	}

	_, err := svc.LinkSuratToKegiatan(context.Background(),
		linkInput(surat, k2, Assignee{UserID: uuid.New(), Nama: "Citra"}))
	if err == nil {
		t.Fatal("link ke kegiatan lain harus ditolak")
	}
	if got := fiberCode(t, err); got != fiber.StatusConflict {
		t.Errorf("code = %d, mau 409", got)
	}

	// pasangan yang sama boleh di-link ulang untuk menambah assignee
	more, err := svc.LinkSuratToKegiatan(context.Background(),
		linkInput(surat, k1, Assignee{UserID: uuid.New(), Nama: "Dewi"}))
	if err != nil {
		t.Fatalf("link ulang pasangan sama: %v", err)
	}
	if len(more) != 1 {
		t.Fatalf("disposisi tambahan = %d, mau 1", len(more))
	}
	var total int64
	db.Model(&dispModel.DisposisiModel{}).
		Where("disposisi_surat_id = ?", surat.SuratID).Count(&total)
	if total != 2 {
		t.Errorf("total disposisi = %d, mau 2", total)
	}
}

func TestUnlinkRemovesAllDisposisi(t *testing.T) {
	db := newTestDB(t)
	svc := NewLinkService(db, nil)

	surat := newSurat(t, db)
	kegiatan := newKegiatan(t, db)

	if _, err := svc.LinkSuratToKegiatan(context.Background(), linkInput(surat, kegiatan,
		Assignee{UserID: uuid.New(), Nama: "Budi"},
		Assignee{UserID: uuid.New(), Nama: "Citra"},
	)); err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := svc.UnlinkSuratFromKegiatan(context.Background(),
		surat.SuratID, kegiatan.KegiatanID, uuid.New(), "Admin"); err != nil {
		t.Fatalf("unlink: %v", err)
	}

	var cnt int64
	db.Model(&dispModel.DisposisiModel{}).
		Where("disposisi_surat_id = ?", surat.SuratID).Count(&cnt)
	if cnt != 0 {
		t.Errorf("disposisi tersisa = %d, mau 0", cnt)
	}

	var sAfter suratModel.SuratModel
	db.First(&sAfter, "surat_id = ?", surat.SuratID)
	if sAfter.SuratKegiatanID != nil {
		t.Errorf("surat_kegiatan_id masih terisi: %v", sAfter.SuratKegiatanID)
	}
	var kAfter kegiatanModel.KegiatanModel
	db.First(&kAfter, "kegiatan_id = ?", kegiatan.KegiatanID)
	if kAfter.KegiatanLinkedSuratID != nil {
		t.Errorf("kegiatan_linked_surat_id masih terisi: %v", kAfter.KegiatanLinkedSuratID)
	}

	var auditCnt int64
	db.Model(&dispModel.DisposisiHistoryModel{}).
		Where("history_aksi = ?", dispModel.AksiUnlink).Count(&auditCnt)
	if auditCnt != 1 {
		t.Errorf("audit unlink = %d, mau 1", auditCnt)
	}
}

func TestRemoveSingleAssigneeKeepsLink(t *testing.T) {
	db := newTestDB(t)
	svc := NewLinkService(db, nil)

	surat := newSurat(t, db)
	kegiatan := newKegiatan(t, db)

	created, err := svc.LinkSuratToKegiatan(context.Background(), linkInput(surat, kegiatan,
		Assignee{UserID: uuid.New(), Nama: "Budi"},
		Assignee{UserID: uuid.New(), Nama: "Citra"},
	))
	if err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := svc.RemoveSingleAssignee(context.Background(), created[0].DisposisiID, uuid.New(), "Admin"); err != nil {
		t.Fatalf("remove assignee: %v", err)
	}

	var cnt int64
	db.Model(&dispModel.DisposisiModel{}).
		Where("disposisi_surat_id = ?", surat.SuratID).Count(&cnt)
	if cnt != 1 {
		t.Errorf("disposisi tersisa = %d, mau 1", cnt)
	}

	// tautan tidak boleh tersentuh, bahkan saat baris terakhir dihapus
	if err := svc.RemoveSingleAssignee(context.Background(), created[1].DisposisiID, uuid.New(), "Admin"); err != nil {
		t.Fatalf("remove assignee terakhir: %v", err)
	}
	var sAfter suratModel.SuratModel
	db.First(&sAfter, "surat_id = ?", surat.SuratID)
	if sAfter.SuratKegiatanID == nil {
		t.Error("surat_kegiatan_id ikut terhapus, seharusnya tetap")
	}

	if err := svc.RemoveSingleAssignee(context.Background(), uuid.New(), uuid.New(), "Admin"); err == nil {
		t.Error("hapus disposisi tak dikenal harus 404")
	}
}

func TestDeleteSuratWithCleanup(t *testing.T) {
	db := newTestDB(t)
	svc := NewLinkService(db, nil)

	surat := newSurat(t, db)
	kegiatan := newKegiatan(t, db)

	if _, err := svc.LinkSuratToKegiatan(context.Background(), linkInput(surat, kegiatan,
		Assignee{UserID: uuid.New(), Nama: "Budi"},
		Assignee{UserID: uuid.New(), Nama: "Citra"},
	)); err != nil {
		t.Fatalf("link: %v", err)
	}

	preview, err := svc.DeleteSuratPreview(context.Background(), surat.SuratID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.JumlahDisposisi != 2 {
		t.Errorf("preview jumlah = %d, mau 2", preview.JumlahDisposisi)
	}
	if preview.KegiatanJudul != kegiatan.KegiatanJudul {
		t.Errorf("preview judul = %q, mau %q", preview.KegiatanJudul, kegiatan.KegiatanJudul)
	}

	if err := svc.DeleteSuratWithCleanup(context.Background(), surat.SuratID, uuid.New(), "Admin"); err != nil {
		t.Fatalf("delete cascade: %v", err)
	}

	var suratCnt, dispCnt int64
	db.Model(&suratModel.SuratModel{}).Where("surat_id = ?", surat.SuratID).Count(&suratCnt)
	db.Model(&dispModel.DisposisiModel{}).Where("disposisi_surat_id = ?", surat.SuratID).Count(&dispCnt)
	if suratCnt != 0 || dispCnt != 0 {
		t.Errorf("sisa surat=%d disposisi=%d, mau 0/0", suratCnt, dispCnt)
	}

	var kAfter kegiatanModel.KegiatanModel
	db.First(&kAfter, "kegiatan_id = ?", kegiatan.KegiatanID)
	if kAfter.KegiatanLinkedSuratID != nil {
		t.Errorf("kegiatan masih menunjuk surat terhapus: %v", kAfter.KegiatanLinkedSuratID)
	}

	var auditCnt int64
	db.Model(&dispModel.DisposisiHistoryModel{}).
		Where("history_aksi = ?", dispModel.AksiSuratDihapus).Count(&auditCnt)
	if auditCnt != 1 {
		t.Errorf("audit surat_deleted = %d, mau 1", auditCnt)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewLinkService(db, nil)

	surat := newSurat(t, db)
	kegiatan := newKegiatan(t, db)
	created, err := svc.LinkSuratToKegiatan(context.Background(),
		linkInput(surat, kegiatan, Assignee{UserID: uuid.New(), Nama: "Budi"}))
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	id := created[0].DisposisiID
	aktor := uuid.New()

	update := func(status dispModel.DisposisiStatus) (*dispModel.DisposisiModel, error) {
		return svc.UpdateStatus(context.Background(), UpdateStatusInput{
			DisposisiID: id,
			Status:      status,
			AktorID:     aktor,
			AktorNama:   "Budi",
		})
	}

	after, err := update(dispModel.StatusInProgress)
	if err != nil {
		t.Fatalf("Pending -> In Progress: %v", err)
	}
	if after.DisposisiCompletedAt != nil {
		t.Error("completed_at terisi sebelum Completed")
	}

	after, err = update(dispModel.StatusCompleted)
	if err != nil {
		t.Fatalf("In Progress -> Completed: %v", err)
	}
	if after.DisposisiCompletedAt == nil {
		t.Error("completed_at kosong setelah Completed")
	}
	if after.DisposisiCompletedBy == nil || *after.DisposisiCompletedBy != aktor {
		t.Errorf("completed_by = %v, mau %s", after.DisposisiCompletedBy, aktor)
	}

	// Completed adalah status terminal
	if _, err := update(dispModel.StatusPending); err == nil {
		t.Error("Completed -> Pending harus ditolak")
	} else if got := fiberCode(t, err); got != fiber.StatusConflict {
		t.Errorf("code = %d, mau 409", got)
	}

	if _, err := update("Selesai"); err == nil {
		t.Error("status tak dikenal harus ditolak")
	} else if got := fiberCode(t, err); got != fiber.StatusBadRequest {
		t.Errorf("code = %d, mau 400", got)
	}

	var auditCnt int64
	db.Model(&dispModel.DisposisiHistoryModel{}).
		Where("history_aksi = ?", dispModel.AksiStatusBerubah).Count(&auditCnt)
	if auditCnt != 2 {
		t.Errorf("audit status_changed = %d, mau 2", auditCnt)
	}
}
