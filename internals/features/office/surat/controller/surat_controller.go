package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dispService "kantorku_backend/internals/features/office/disposisi/service"
	"kantorku_backend/internals/features/office/lampiran"
	suratDTO "kantorku_backend/internals/features/office/surat/dto"
	suratExport "kantorku_backend/internals/features/office/surat/export"
	suratModel "kantorku_backend/internals/features/office/surat/model"
	helper "kantorku_backend/internals/helpers"
	helperAuth "kantorku_backend/internals/helpers/auth"
	helperOSS "kantorku_backend/internals/helpers/oss"
)

type SuratController struct {
	DB      *gorm.DB
	Blob    helperOSS.BlobService
	LinkSvc *dispService.LinkService
}

func NewSuratController(db *gorm.DB, blob helperOSS.BlobService, linkSvc *dispService.LinkService) *SuratController {
	return &SuratController{DB: db, Blob: blob, LinkSvc: linkSvc}
}

var validateSurat = validator.New()

// ===================== CREATE =====================
// POST /surat  (json ATAU multipart dengan field "file")
func (h *SuratController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userName := helperAuth.GetUserNameFromToken(c)

	var req suratDTO.CreateSuratRequest
	ct := strings.ToLower(c.Get("Content-Type"))

	if strings.HasPrefix(ct, "multipart/form-data") {
		req.SuratArah = strings.TrimSpace(c.FormValue("surat_arah"))
		req.SuratNomor = strings.TrimSpace(c.FormValue("surat_nomor"))
		req.SuratTanggal = strings.TrimSpace(c.FormValue("surat_tanggal"))
		req.SuratPerihal = strings.TrimSpace(c.FormValue("surat_perihal"))
		req.SuratAsalTujuan = strings.TrimSpace(c.FormValue("surat_asal_tujuan"))
		req.SuratTipeUnit = strings.TrimSpace(c.FormValue("surat_tipe_unit"))
		req.SuratSifat = strings.TrimSpace(c.FormValue("surat_sifat"))
		req.SuratJenisNaskah = strings.TrimSpace(c.FormValue("surat_jenis_naskah"))
		req.SuratKlasifikasi = strings.TrimSpace(c.FormValue("surat_klasifikasi"))
		req.SuratBidangTugas = strings.TrimSpace(c.FormValue("surat_bidang_tugas"))
		if v := strings.TrimSpace(c.FormValue("surat_lampiran_link")); v != "" {
			req.SuratLampiranLink = &v
		}
		if v := strings.TrimSpace(c.FormValue("surat_lampiran_nama")); v != "" {
			req.SuratLampiranNama = &v
		}
	} else {
		if err := c.BodyParser(&req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
		}
	}

	if err := validateSurat.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := req.ToModel(userID, userName)

	// File upload dan link eksternal saling eksklusif
	fh, _ := c.FormFile("file")
	if fh != nil {
		if !m.SuratLampiran.IsZero() {
			return helper.JsonError(c, fiber.StatusBadRequest, "Pilih salah satu: upload file atau link eksternal")
		}
		publicURL, objectKey, _, err := h.Blob.UploadDocument(c.UserContext(), "surat", fh)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		m.SuratLampiran = lampiran.NewFile(fh.Filename, publicURL, objectKey, fh.Size)
	}

	if err := h.DB.Create(m).Error; err != nil {
		// best-effort: jangan tinggalkan objek yatim di bucket
		if fh != nil {
			_ = h.Blob.DeleteByPublicURL(c.UserContext(), m.SuratLampiran.URL)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan surat")
	}

	return helper.JsonCreated(c, "Surat berhasil dibuat", suratDTO.NewSuratResponse(m))
}

func (h *SuratController) findSurat(id uuid.UUID) (*suratModel.SuratModel, error) {
	var m suratModel.SuratModel
	if err := h.DB.Where("surat_id = ?", id).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "Surat tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil surat")
	}
	return &m, nil
}

// ===================== DETAIL =====================
// GET /surat/:id
func (h *SuratController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	m, err := h.findSurat(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", suratDTO.NewSuratResponse(m))
}

// ===================== UPDATE =====================
// PATCH /surat/:id
func (h *SuratController) Update(c *fiber.Ctx) error {
	if _, err := helperAuth.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.findSurat(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req suratDTO.UpdateSuratRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateSurat.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "Tidak ada perubahan", suratDTO.NewSuratResponse(existing))
	}

	if err := h.DB.Model(&suratModel.SuratModel{}).
		Where("surat_id = ?", id).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui surat")
	}

	after, err := h.findSurat(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Surat diperbarui", suratDTO.NewSuratResponse(after))
}

// ===================== DELETE (cascade) =====================
// DELETE /surat/:id
// Tanpa ?confirm=true hanya mengembalikan preview dampak cascade,
// supaya UI bisa menampilkan dialog konfirmasi dulu.
func (h *SuratController) Delete(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}
	existing, err := h.findSurat(id)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := helperAuth.EnsureCreatorOrAdmin(c, existing.SuratDibuatOleh, "menghapus surat"); err != nil {
		return helper.FromFiberError(c, err)
	}

	if !strings.EqualFold(c.Query("confirm"), "true") {
		preview, err := h.LinkSvc.DeleteSuratPreview(c.UserContext(), id)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		return helper.JsonOK(c, "Konfirmasi diperlukan: hapus akan men-cascade disposisi berikut", preview)
	}

	if err := h.LinkSvc.DeleteSuratWithCleanup(c.UserContext(), id, userID, helperAuth.GetUserNameFromToken(c)); err != nil {
		return helper.FromFiberError(c, err)
	}

	// objek storage ikut dibersihkan; kegagalan tidak menggagalkan delete
	if existing.SuratLampiran.Jenis == lampiran.JenisFile {
		_ = h.Blob.DeleteByPublicURL(c.UserContext(), existing.SuratLampiran.URL)
	}

	return helper.JsonDeleted(c, "Surat dihapus", fiber.Map{"surat_id": id})
}

// ===================== LIST =====================
// GET /surat/list
func (h *SuratController) List(c *fiber.Ctx) error {
	var f suratDTO.ListSuratQuery
	if err := c.QueryParser(&f); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	q, err := f.Apply(h.DB.Model(&suratModel.SuratModel{}))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung surat")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var rows []suratModel.SuratModel
	if err := q.Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil surat")
	}

	return helper.JsonList(c, "", suratDTO.NewSuratResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ===================== EXPORT =====================
// GET /surat/export?format=xlsx|pdf
// Filter ekspor independen dari filter tabel; hasilnya seluruh baris
// terfilter, bukan halaman yang sedang tampil.
func (h *SuratController) Export(c *fiber.Ctx) error {
	var f suratDTO.ExportSuratQuery
	if err := c.QueryParser(&f); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}

	q, err := f.Apply(h.DB.Model(&suratModel.SuratModel{}))
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []suratModel.SuratModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil surat")
	}

	switch strings.ToLower(strings.TrimSpace(f.Format)) {
	case "", "xlsx":
		data, err := suratExport.BuildXLSX(rows)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membangun XLSX")
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="daftar_surat.xlsx"`)
		return c.Send(data)
	case "pdf":
		data, err := suratExport.BuildPDF(rows)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membangun PDF")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="daftar_surat.pdf"`)
		return c.Send(data)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "format harus xlsx atau pdf")
	}
}
