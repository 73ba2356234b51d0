package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "kantorku_backend/internals/features/office/disposisi/model"
	"kantorku_backend/internals/features/office/lampiran"
)

/* ===================== REQUESTS ===================== */

type AssigneeRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Nama   string    `json:"nama" validate:"required,max=150"`
}

// LinkRequest: body untuk POST /surat/:id/link
type LinkRequest struct {
	KegiatanID uuid.UUID         `json:"kegiatan_id" validate:"required"`
	Assignees  []AssigneeRequest `json:"assignees" validate:"required,min=1,dive"`
	Instruksi  string            `json:"instruksi" validate:"required,min=3"`
	Deadline   *string           `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
}

func (r LinkRequest) ParseDeadline() *time.Time {
	if r.Deadline == nil {
		return nil
	}
	if t, err := time.Parse("2006-01-02", strings.TrimSpace(*r.Deadline)); err == nil {
		return &t
	}
	return nil
}

type UpdateStatusRequest struct {
	Status          string        `json:"status" validate:"required,oneof=Pending 'In Progress' Completed Cancelled"`
	Catatan         *string       `json:"catatan" validate:"omitempty"`
	LampiranLaporan lampiran.List `json:"lampiran_laporan" validate:"omitempty"`
}

/* ===================== RESPONSES ===================== */

type DisposisiResponse struct {
	DisposisiID              uuid.UUID             `json:"disposisi_id"`
	DisposisiSuratID         uuid.UUID             `json:"disposisi_surat_id"`
	DisposisiKegiatanID      uuid.UUID             `json:"disposisi_kegiatan_id"`
	DisposisiAssignedTo      uuid.UUID             `json:"disposisi_assigned_to"`
	DisposisiAssignedToNama  string                `json:"disposisi_assigned_to_nama,omitempty"`
	DisposisiInstruksi       string                `json:"disposisi_instruksi"`
	DisposisiStatus          model.DisposisiStatus `json:"disposisi_status"`
	DisposisiDeadline        *time.Time            `json:"disposisi_deadline,omitempty"`
	DisposisiLampiranLaporan lampiran.List         `json:"disposisi_lampiran_laporan,omitempty"`
	DisposisiCatatan         *string               `json:"disposisi_catatan,omitempty"`
	DisposisiDibuatOleh      uuid.UUID             `json:"disposisi_dibuat_oleh"`
	DisposisiDibuatOlehNama  string                `json:"disposisi_dibuat_oleh_nama,omitempty"`
	DisposisiCreatedAt       time.Time             `json:"disposisi_created_at"`
	DisposisiCompletedAt     *time.Time            `json:"disposisi_completed_at,omitempty"`
	DisposisiCompletedBy     *uuid.UUID            `json:"disposisi_completed_by,omitempty"`
}

func NewDisposisiResponse(m *model.DisposisiModel) *DisposisiResponse {
	if m == nil {
		return nil
	}
	return &DisposisiResponse{
		DisposisiID:              m.DisposisiID,
		DisposisiSuratID:         m.DisposisiSuratID,
		DisposisiKegiatanID:      m.DisposisiKegiatanID,
		DisposisiAssignedTo:      m.DisposisiAssignedTo,
		DisposisiAssignedToNama:  m.DisposisiAssignedToNama,
		DisposisiInstruksi:       m.DisposisiInstruksi,
		DisposisiStatus:          m.DisposisiStatus,
		DisposisiDeadline:        m.DisposisiDeadline,
		DisposisiLampiranLaporan: m.DisposisiLampiranLaporan,
		DisposisiCatatan:         m.DisposisiCatatan,
		DisposisiDibuatOleh:      m.DisposisiDibuatOleh,
		DisposisiDibuatOlehNama:  m.DisposisiDibuatOlehNama,
		DisposisiCreatedAt:       m.DisposisiCreatedAt,
		DisposisiCompletedAt:     m.DisposisiCompletedAt,
		DisposisiCompletedBy:     m.DisposisiCompletedBy,
	}
}

func NewDisposisiResponses(ms []model.DisposisiModel) []*DisposisiResponse {
	out := make([]*DisposisiResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewDisposisiResponse(&ms[i]))
	}
	return out
}
