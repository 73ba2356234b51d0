package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dispDTO "kantorku_backend/internals/features/office/disposisi/dto"
	dispModel "kantorku_backend/internals/features/office/disposisi/model"
	dispService "kantorku_backend/internals/features/office/disposisi/service"
	suratModel "kantorku_backend/internals/features/office/surat/model"
	helper "kantorku_backend/internals/helpers"
	helperAuth "kantorku_backend/internals/helpers/auth"
)

type DisposisiController struct {
	DB  *gorm.DB
	Svc *dispService.LinkService
}

func NewDisposisiController(db *gorm.DB, svc *dispService.LinkService) *DisposisiController {
	return &DisposisiController{DB: db, Svc: svc}
}

var validateDisposisi = validator.New()

// ===================== LINK =====================
// POST /surat/:surat_id/link
// Menautkan surat ke kegiatan sekaligus membuat disposisi untuk tiap
// assignee. Memanggil ulang pada pasangan yang sama berarti menambah
// assignee baru.
func (h *DisposisiController) Link(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	suratID, err := uuid.Parse(strings.TrimSpace(c.Params("surat_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID surat tidak valid")
	}

	var req dispDTO.LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateDisposisi.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	in := dispService.LinkInput{
		SuratID:    suratID,
		KegiatanID: req.KegiatanID,
		Instruksi:  req.Instruksi,
		Deadline:   req.ParseDeadline(),
		DibuatOleh: userID,
		DibuatNama: helperAuth.GetUserNameFromToken(c),
	}
	for _, a := range req.Assignees {
		in.Assignees = append(in.Assignees, dispService.Assignee{UserID: a.UserID, Nama: a.Nama})
	}

	created, err := h.Svc.LinkSuratToKegiatan(c.UserContext(), in)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "Surat tertaut dan disposisi dibuat", dispDTO.NewDisposisiResponses(created))
}

// ===================== UNLINK =====================
// DELETE /surat/:surat_id/link/:kegiatan_id?confirm=true
// Melepas tautan MENGHAPUS semua disposisi pasangan itu; tanpa confirm
// hanya mengembalikan jumlah yang akan terhapus.
func (h *DisposisiController) Unlink(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	suratID, err := uuid.Parse(strings.TrimSpace(c.Params("surat_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID surat tidak valid")
	}
	kegiatanID, err := uuid.Parse(strings.TrimSpace(c.Params("kegiatan_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID kegiatan tidak valid")
	}

	// Hanya pembuat tautan (pembuat disposisi pasangan ini) atau admin.
	// Tautan menggantung tanpa disposisi jatuh ke pembuat suratnya.
	var creator uuid.UUID
	var d dispModel.DisposisiModel
	err = h.DB.Where("disposisi_surat_id = ? AND disposisi_kegiatan_id = ?", suratID, kegiatanID).
		Order("disposisi_created_at ASC").
		First(&d).Error
	switch {
	case err == nil:
		creator = d.DisposisiDibuatOleh
	case err == gorm.ErrRecordNotFound:
		var s suratModel.SuratModel
		if err := h.DB.Select("surat_dibuat_oleh").
			Where("surat_id = ?", suratID).
			First(&s).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return helper.JsonError(c, fiber.StatusNotFound, "Surat tidak ditemukan")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil surat")
		}
		creator = s.SuratDibuatOleh
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil disposisi")
	}
	if err := helperAuth.EnsureCreatorOrAdmin(c, creator, "melepas tautan"); err != nil {
		return helper.FromFiberError(c, err)
	}

	if !strings.EqualFold(c.Query("confirm"), "true") {
		var cnt int64
		if err := h.DB.Model(&dispModel.DisposisiModel{}).
			Where("disposisi_surat_id = ? AND disposisi_kegiatan_id = ?", suratID, kegiatanID).
			Count(&cnt).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung disposisi")
		}
		return helper.JsonOK(c, "Konfirmasi diperlukan: unlink akan menghapus disposisi berikut",
			fiber.Map{"jumlah_disposisi": cnt})
	}

	if err := h.Svc.UnlinkSuratFromKegiatan(c.UserContext(), suratID, kegiatanID,
		userID, helperAuth.GetUserNameFromToken(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Tautan dilepas, disposisi terkait dihapus",
		fiber.Map{"surat_id": suratID, "kegiatan_id": kegiatanID})
}

// ===================== REMOVE ASSIGNEE =====================
// DELETE /disposisi/:id
// Menghapus satu baris disposisi tanpa menyentuh tautan surat–kegiatan.
func (h *DisposisiController) RemoveAssignee(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var d dispModel.DisposisiModel
	if err := h.DB.Where("disposisi_id = ?", id).First(&d).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Disposisi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil disposisi")
	}
	if err := helperAuth.EnsureCreatorOrAdmin(c, d.DisposisiDibuatOleh, "menghapus assignee"); err != nil {
		return helper.FromFiberError(c, err)
	}

	if err := h.Svc.RemoveSingleAssignee(c.UserContext(), id, userID, helperAuth.GetUserNameFromToken(c)); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Assignee dihapus dari disposisi", fiber.Map{"disposisi_id": id})
}

// ===================== UPDATE STATUS =====================
// PATCH /disposisi/:id/status
// Assignee yang bersangkutan, pembuat disposisi, atau admin.
func (h *DisposisiController) UpdateStatus(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dispDTO.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateDisposisi.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var d dispModel.DisposisiModel
	if err := h.DB.Where("disposisi_id = ?", id).First(&d).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Disposisi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil disposisi")
	}
	if d.DisposisiAssignedTo != userID && d.DisposisiDibuatOleh != userID && !helperAuth.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Anda tidak berhak mengubah status disposisi ini")
	}

	after, err := h.Svc.UpdateStatus(c.UserContext(), dispService.UpdateStatusInput{
		DisposisiID:     id,
		Status:          dispModel.DisposisiStatus(req.Status),
		Catatan:         req.Catatan,
		LampiranLaporan: req.LampiranLaporan,
		AktorID:         userID,
		AktorNama:       helperAuth.GetUserNameFromToken(c),
	})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Status disposisi diperbarui", dispDTO.NewDisposisiResponse(after))
}

// ===================== LIST =====================
// GET /disposisi?surat_id=&kegiatan_id=&assigned_to=&status=
// assigned_to menerima UUID atau "me".
func (h *DisposisiController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&dispModel.DisposisiModel{})

	if v := strings.TrimSpace(c.Query("surat_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "surat_id tidak valid")
		}
		q = q.Where("disposisi_surat_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("kegiatan_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "kegiatan_id tidak valid")
		}
		q = q.Where("disposisi_kegiatan_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("assigned_to")); v != "" {
		if strings.EqualFold(v, "me") {
			userID, err := helperAuth.GetUserIDFromToken(c)
			if err != nil {
				return helper.FromFiberError(c, err)
			}
			q = q.Where("disposisi_assigned_to = ?", userID)
		} else {
			id, err := uuid.Parse(v)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "assigned_to tidak valid")
			}
			q = q.Where("disposisi_assigned_to = ?", id)
		}
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		if !dispModel.ValidStatus(dispModel.DisposisiStatus(v)) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Status tidak dikenal")
		}
		q = q.Where("disposisi_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung disposisi")
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var rows []dispModel.DisposisiModel
	if err := q.Order("disposisi_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil disposisi")
	}

	return helper.JsonList(c, "", dispDTO.NewDisposisiResponses(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ===================== HISTORY =====================
// GET /surat/:surat_id/history
// Jejak audit bertahan walau disposisinya sudah terhapus.
func (h *DisposisiController) HistoryBySurat(c *fiber.Ctx) error {
	suratID, err := uuid.Parse(strings.TrimSpace(c.Params("surat_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID surat tidak valid")
	}

	var rows []dispModel.DisposisiHistoryModel
	if err := h.DB.Where("history_surat_id = ?", suratID).
		Order("history_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat")
	}
	return helper.JsonOK(c, "", rows)
}
