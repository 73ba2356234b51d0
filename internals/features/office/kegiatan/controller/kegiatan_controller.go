package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dispService "kantorku_backend/internals/features/office/disposisi/service"
	kegiatanDTO "kantorku_backend/internals/features/office/kegiatan/dto"
	kegiatanModel "kantorku_backend/internals/features/office/kegiatan/model"
	"kantorku_backend/internals/features/office/lampiran"
	helper "kantorku_backend/internals/helpers"
	helperAuth "kantorku_backend/internals/helpers/auth"
	helperOSS "kantorku_backend/internals/helpers/oss"
)

type KegiatanController struct {
	DB      *gorm.DB
	Blob    helperOSS.BlobService
	LinkSvc *dispService.LinkService
}

func NewKegiatanController(db *gorm.DB, blob helperOSS.BlobService, linkSvc *dispService.LinkService) *KegiatanController {
	return &KegiatanController{DB: db, Blob: blob, LinkSvc: linkSvc}
}

var validateKegiatan = validator.New()

// Slot dokumen bernama pada kegiatan. Masing-masing menampung satu
// file upload ATAU satu link eksternal.
var dokSlots = map[string]string{
	"undangan":    "kegiatan_dok_undangan",
	"surat_tugas": "kegiatan_dok_surat_tugas",
	"laporan":     "kegiatan_dok_laporan",
}

// ===================== CREATE =====================
// POST /kegiatan
func (h *KegiatanController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req kegiatanDTO.CreateKegiatanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateKegiatan.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if !kegiatanModel.ValidKegiatanTipe(kegiatanModel.KegiatanTipe(req.KegiatanTipe)) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tipe kegiatan tidak dikenal")
	}

	m := req.ToModel(userID, helperAuth.GetUserNameFromToken(c))
	if m.KegiatanTanggalSelesai.Before(m.KegiatanTanggalMulai) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal selesai sebelum tanggal mulai")
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kegiatan")
	}
	return helper.JsonCreated(c, "Kegiatan berhasil dibuat", kegiatanDTO.NewKegiatanResponse(m))
}

func (h *KegiatanController) findKegiatan(id uuid.UUID) (*kegiatanModel.KegiatanModel, error) {
	var m kegiatanModel.KegiatanModel
	if err := h.DB.Where("kegiatan_id = ?", id).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kegiatan tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kegiatan")
	}
	return &m, nil
}

// ===================== DETAIL =====================
// GET /kegiatan/:id
func (h *KegiatanController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.findKegiatan(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", kegiatanDTO.NewKegiatanResponse(m))
}

// ===================== LIST =====================
// GET /kegiatan/list?tipe=&status=&date_from=&date_to=&q=
func (h *KegiatanController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&kegiatanModel.KegiatanModel{})

	if v := strings.TrimSpace(c.Query("tipe")); v != "" {
		if !kegiatanModel.ValidKegiatanTipe(kegiatanModel.KegiatanTipe(v)) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tipe kegiatan tidak dikenal")
		}
		q = q.Where("kegiatan_tipe = ?", v)
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("kegiatan_status = ?", v)
	}
	if v := strings.TrimSpace(c.Query("date_from")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_from harus YYYY-MM-DD")
		}
		q = q.Where("kegiatan_tanggal_mulai >= ?", t)
	}
	if v := strings.TrimSpace(c.Query("date_to")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date_to harus YYYY-MM-DD")
		}
		q = q.Where("kegiatan_tanggal_mulai <= ?", t)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(kegiatan_judul) LIKE ? OR LOWER(kegiatan_lokasi) LIKE ? OR LOWER(kegiatan_pengundang) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kegiatan")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var rows []kegiatanModel.KegiatanModel
	if err := q.Order("kegiatan_tanggal_mulai DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kegiatan")
	}

	return helper.JsonList(c, "", kegiatanDTO.NewKegiatanResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ===================== UPDATE =====================
// PATCH /kegiatan/:id
func (h *KegiatanController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.findKegiatan(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req kegiatanDTO.UpdateKegiatanRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateKegiatan.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	updates := map[string]interface{}{}
	if req.KegiatanJudul != nil {
		updates["kegiatan_judul"] = strings.TrimSpace(*req.KegiatanJudul)
	}
	if req.KegiatanTipe != nil {
		if !kegiatanModel.ValidKegiatanTipe(kegiatanModel.KegiatanTipe(*req.KegiatanTipe)) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tipe kegiatan tidak dikenal")
		}
		updates["kegiatan_tipe"] = *req.KegiatanTipe
	}

	mulai := existing.KegiatanTanggalMulai
	selesai := existing.KegiatanTanggalSelesai
	if req.KegiatanTanggalMulai != nil {
		t, _ := time.Parse("2006-01-02", *req.KegiatanTanggalMulai)
		mulai = t
		updates["kegiatan_tanggal_mulai"] = t
	}
	if req.KegiatanTanggalSelesai != nil {
		t, _ := time.Parse("2006-01-02", *req.KegiatanTanggalSelesai)
		selesai = t
		updates["kegiatan_tanggal_selesai"] = t
	}
	if selesai.Before(mulai) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tanggal selesai sebelum tanggal mulai")
	}

	if req.KegiatanJamMulai != nil {
		updates["kegiatan_jam_mulai"] = *req.KegiatanJamMulai
	}
	if req.KegiatanJamSelesai != nil {
		updates["kegiatan_jam_selesai"] = *req.KegiatanJamSelesai
	}
	if req.KegiatanLokasi != nil {
		updates["kegiatan_lokasi"] = strings.TrimSpace(*req.KegiatanLokasi)
	}
	if req.KegiatanLinkOnline != nil {
		updates["kegiatan_link_online"] = *req.KegiatanLinkOnline
	}
	if req.KegiatanPengundang != nil {
		updates["kegiatan_pengundang"] = strings.TrimSpace(*req.KegiatanPengundang)
	}
	if req.KegiatanPengundangInstansi != nil {
		updates["kegiatan_pengundang_instansi"] = strings.TrimSpace(*req.KegiatanPengundangInstansi)
	}
	if req.KegiatanPIC != nil {
		updates["kegiatan_pic"] = datatypes.NewJSONSlice(req.KegiatanPIC)
	}
	if req.KegiatanUndangan != nil {
		updates["kegiatan_undangan"] = datatypes.NewJSONSlice(req.KegiatanUndangan)
	}
	if req.KegiatanStatus != nil {
		updates["kegiatan_status"] = *req.KegiatanStatus
	}
	if req.KegiatanTautan != nil {
		var ts kegiatanModel.TautanList
		for _, t := range req.KegiatanTautan {
			ts = append(ts, kegiatanModel.Tautan{Judul: strings.TrimSpace(t.Judul), URL: strings.TrimSpace(t.URL)})
		}
		updates["kegiatan_tautan"] = ts
	}

	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", kegiatanDTO.NewKegiatanResponse(existing))
	}

	if err := h.DB.Model(&kegiatanModel.KegiatanModel{}).
		Where("kegiatan_id = ?", id).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kegiatan")
	}

	after, err := h.findKegiatan(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Kegiatan diperbarui", kegiatanDTO.NewKegiatanResponse(after))
}

// ===================== DELETE =====================
// DELETE /kegiatan/:id
// Kegiatan yang tertaut surat dilepas dulu (cascade disposisi pasangan),
// kolom surat_kegiatan_id ikut dikosongkan, baru baris kegiatan dihapus.
func (h *KegiatanController) Delete(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.findKegiatan(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.EnsureCreatorOrAdmin(c, existing.KegiatanDibuatOleh, "menghapus kegiatan"); err != nil {
		return helper.FromFiberError(c, err)
	}

	if existing.KegiatanLinkedSuratID != nil {
		if err := h.LinkSvc.UnlinkSuratFromKegiatan(c.UserContext(),
			*existing.KegiatanLinkedSuratID, id, userID, helperAuth.GetUserNameFromToken(c)); err != nil {
			return helper.FromFiberError(c, err)
		}
	}

	if err := h.DB.Where("kegiatan_id = ?", id).
		Delete(&kegiatanModel.KegiatanModel{}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus kegiatan")
	}

	for _, l := range []lampiran.Lampiran{existing.KegiatanDokUndangan, existing.KegiatanDokSuratTugas, existing.KegiatanDokLaporan} {
		if l.Jenis == lampiran.JenisFile {
			_ = h.Blob.DeleteByPublicURL(c.UserContext(), l.URL)
		}
	}
	for _, l := range existing.KegiatanLampiran {
		if l.Jenis == lampiran.JenisFile {
			_ = h.Blob.DeleteByPublicURL(c.UserContext(), l.URL)
		}
	}

	return helper.JsonDeleted(c, "Kegiatan dihapus", fiber.Map{"kegiatan_id": id})
}

// ===================== DOKUMEN =====================
// PUT /kegiatan/:id/dokumen/:slot  (multipart "file" ATAU json {nama,url})
func (h *KegiatanController) UploadDokumen(c *fiber.Ctx) error {
	if _, err := helperAuth.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	col, ok := dokSlots[strings.TrimSpace(c.Params("slot"))]
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Slot dokumen harus undangan, surat_tugas, atau laporan")
	}
	existing, err := h.findKegiatan(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var baru lampiran.Lampiran
	if fh, _ := c.FormFile("file"); fh != nil {
		publicURL, objectKey, _, err := h.Blob.UploadDocument(c.UserContext(), "kegiatan", fh)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		baru = lampiran.NewFile(fh.Filename, publicURL, objectKey, fh.Size)
	} else {
		var body struct {
			Nama string `json:"nama"`
			URL  string `json:"url" validate:"required,url"`
		}
		if err := c.BodyParser(&body); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
		if err := validateKegiatan.Struct(body); err != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		baru = lampiran.NewLink(body.Nama, body.URL)
	}

	if err := h.DB.Model(&kegiatanModel.KegiatanModel{}).
		Where("kegiatan_id = ?", id).
		Update(col, baru).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan dokumen")
	}

	// dokumen lama (kalau file) diganti, objeknya dibersihkan
	lama := map[string]lampiran.Lampiran{
		"kegiatan_dok_undangan":    existing.KegiatanDokUndangan,
		"kegiatan_dok_surat_tugas": existing.KegiatanDokSuratTugas,
		"kegiatan_dok_laporan":     existing.KegiatanDokLaporan,
	}[col]
	if lama.Jenis == lampiran.JenisFile && lama.URL != baru.URL {
		_ = h.Blob.DeleteByPublicURL(c.UserContext(), lama.URL)
	}

	after, err := h.findKegiatan(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Dokumen tersimpan", kegiatanDTO.NewKegiatanResponse(after))
}

// ===================== KOMENTAR =====================
// POST /kegiatan/:id/komentar
func (h *KegiatanController) AddKomentar(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req kegiatanDTO.KomentarRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateKegiatan.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	komentar := kegiatanModel.Komentar{
		KomentarID: uuid.New(),
		PenulisID:  userID,
		Penulis:    helperAuth.GetUserNameFromToken(c),
		Isi:        strings.TrimSpace(req.Isi),
		Waktu:      time.Now(),
	}

	// baca-ubah-tulis di dalam transaksi supaya komentar paralel tidak
	// saling menimpa
	var after *kegiatanModel.KegiatanModel
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var m kegiatanModel.KegiatanModel
		if err := tx.Where("kegiatan_id = ?", id).First(&m).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Kegiatan tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kegiatan")
		}
		m.KegiatanKomentar = append(m.KegiatanKomentar, komentar)
		if err := tx.Model(&kegiatanModel.KegiatanModel{}).
			Where("kegiatan_id = ?", id).
			Update("kegiatan_komentar", m.KegiatanKomentar).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan komentar")
		}
		after = &m
		return nil
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Komentar ditambahkan", kegiatanDTO.NewKegiatanResponse(after))
}

// DELETE /kegiatan/:id/komentar/:komentar_id
// Hanya penulis komentar atau admin.
func (h *KegiatanController) DeleteKomentar(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	komentarID, err := uuid.Parse(strings.TrimSpace(c.Params("komentar_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID komentar tidak valid")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var m kegiatanModel.KegiatanModel
		if err := tx.Where("kegiatan_id = ?", id).First(&m).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Kegiatan tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kegiatan")
		}

		idx := -1
		for i, k := range m.KegiatanKomentar {
			if k.KomentarID == komentarID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fiber.NewError(fiber.StatusNotFound, "Komentar tidak ditemukan")
		}
		if m.KegiatanKomentar[idx].PenulisID != userID && !helperAuth.IsAdmin(c) {
			return fiber.NewError(fiber.StatusForbidden, "Hanya penulis komentar atau admin yang boleh menghapus")
		}

		sisa := append(m.KegiatanKomentar[:idx], m.KegiatanKomentar[idx+1:]...)
		return tx.Model(&kegiatanModel.KegiatanModel{}).
			Where("kegiatan_id = ?", id).
			Update("kegiatan_komentar", sisa).Error
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Komentar dihapus", fiber.Map{"komentar_id": komentarID})
}
