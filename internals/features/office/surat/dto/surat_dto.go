package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kantorku_backend/internals/features/office/lampiran"
	model "kantorku_backend/internals/features/office/surat/model"
)

/* ===================== REQUESTS ===================== */

// Create: dibuat_oleh_* diambil dari token oleh controller (BUKAN dari body)
type CreateSuratRequest struct {
	SuratArah        string  `json:"surat_arah" validate:"required,oneof=Masuk Keluar"`
	SuratNomor       string  `json:"surat_nomor" validate:"required,max=100"`
	SuratTanggal     string  `json:"surat_tanggal" validate:"required,datetime=2006-01-02"`
	SuratPerihal     string  `json:"surat_perihal" validate:"required,min=3"`
	SuratAsalTujuan  string  `json:"surat_asal_tujuan" validate:"required,max=200"`
	SuratTipeUnit    string  `json:"surat_tipe_unit" validate:"omitempty,oneof=Internal Eksternal"`
	SuratSifat       string  `json:"surat_sifat" validate:"omitempty,max=100"`
	SuratJenisNaskah string  `json:"surat_jenis_naskah" validate:"omitempty,max=100"`
	SuratKlasifikasi string  `json:"surat_klasifikasi" validate:"omitempty,max=100"`
	SuratBidangTugas string  `json:"surat_bidang_tugas" validate:"omitempty,max=100"`
	// Link eksternal sebagai artefak dokumen; eksklusif dengan file upload
	SuratLampiranLink *string `json:"surat_lampiran_link" validate:"omitempty,url"`
	SuratLampiranNama *string `json:"surat_lampiran_nama" validate:"omitempty,max=200"`
}

func (r CreateSuratRequest) ToModel(userID uuid.UUID, userName string) *model.SuratModel {
	var tgl time.Time
	if ds := strings.TrimSpace(r.SuratTanggal); ds != "" {
		tgl, _ = time.Parse("2006-01-02", ds)
	}
	m := &model.SuratModel{
		SuratArah:           model.SuratArah(r.SuratArah),
		SuratNomor:          strings.TrimSpace(r.SuratNomor),
		SuratTanggal:        tgl,
		SuratPerihal:        strings.TrimSpace(r.SuratPerihal),
		SuratAsalTujuan:     strings.TrimSpace(r.SuratAsalTujuan),
		SuratTipeUnit:       model.TipeUnit(r.SuratTipeUnit),
		SuratSifat:          strings.TrimSpace(r.SuratSifat),
		SuratJenisNaskah:    strings.TrimSpace(r.SuratJenisNaskah),
		SuratKlasifikasi:    strings.TrimSpace(r.SuratKlasifikasi),
		SuratBidangTugas:    strings.TrimSpace(r.SuratBidangTugas),
		SuratDibuatOleh:     userID,
		SuratDibuatOlehNama: userName,
	}
	if r.SuratLampiranLink != nil && strings.TrimSpace(*r.SuratLampiranLink) != "" {
		nama := ""
		if r.SuratLampiranNama != nil {
			nama = strings.TrimSpace(*r.SuratLampiranNama)
		}
		m.SuratLampiran = lampiran.NewLink(nama, strings.TrimSpace(*r.SuratLampiranLink))
	}
	return m
}

/* ===================== UPDATE (partial) ===================== */

type UpdateSuratRequest struct {
	SuratNomor       *string `json:"surat_nomor" validate:"omitempty,max=100"`
	SuratTanggal     *string `json:"surat_tanggal" validate:"omitempty,datetime=2006-01-02"`
	SuratPerihal     *string `json:"surat_perihal" validate:"omitempty,min=3"`
	SuratAsalTujuan  *string `json:"surat_asal_tujuan" validate:"omitempty,max=200"`
	SuratTipeUnit    *string `json:"surat_tipe_unit" validate:"omitempty,oneof=Internal Eksternal"`
	SuratSifat       *string `json:"surat_sifat" validate:"omitempty,max=100"`
	SuratJenisNaskah *string `json:"surat_jenis_naskah" validate:"omitempty,max=100"`
	SuratKlasifikasi *string `json:"surat_klasifikasi" validate:"omitempty,max=100"`
	SuratBidangTugas *string `json:"surat_bidang_tugas" validate:"omitempty,max=100"`
}

// ToUpdates: map supaya nilai kosong string juga ter-update
func (r UpdateSuratRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.SuratNomor != nil {
		updates["surat_nomor"] = strings.TrimSpace(*r.SuratNomor)
	}
	if r.SuratTanggal != nil {
		if dt := strings.TrimSpace(*r.SuratTanggal); dt != "" {
			if parsed, err := time.Parse("2006-01-02", dt); err == nil {
				updates["surat_tanggal"] = parsed
			}
		}
	}
	if r.SuratPerihal != nil {
		updates["surat_perihal"] = strings.TrimSpace(*r.SuratPerihal)
	}
	if r.SuratAsalTujuan != nil {
		updates["surat_asal_tujuan"] = strings.TrimSpace(*r.SuratAsalTujuan)
	}
	if r.SuratTipeUnit != nil {
		updates["surat_tipe_unit"] = strings.TrimSpace(*r.SuratTipeUnit)
	}
	if r.SuratSifat != nil {
		updates["surat_sifat"] = strings.TrimSpace(*r.SuratSifat)
	}
	if r.SuratJenisNaskah != nil {
		updates["surat_jenis_naskah"] = strings.TrimSpace(*r.SuratJenisNaskah)
	}
	if r.SuratKlasifikasi != nil {
		updates["surat_klasifikasi"] = strings.TrimSpace(*r.SuratKlasifikasi)
	}
	if r.SuratBidangTugas != nil {
		updates["surat_bidang_tugas"] = strings.TrimSpace(*r.SuratBidangTugas)
	}
	return updates
}

/* ===================== RESPONSES ===================== */

type SuratResponse struct {
	SuratID          uuid.UUID          `json:"surat_id"`
	SuratArah        model.SuratArah    `json:"surat_arah"`
	SuratNomor       string             `json:"surat_nomor"`
	SuratTanggal     time.Time          `json:"surat_tanggal"`
	SuratPerihal     string             `json:"surat_perihal"`
	SuratAsalTujuan  string             `json:"surat_asal_tujuan"`
	SuratTipeUnit    model.TipeUnit     `json:"surat_tipe_unit,omitempty"`
	SuratSifat       string             `json:"surat_sifat,omitempty"`
	SuratJenisNaskah string             `json:"surat_jenis_naskah,omitempty"`
	SuratKlasifikasi string             `json:"surat_klasifikasi,omitempty"`
	SuratBidangTugas string             `json:"surat_bidang_tugas,omitempty"`
	SuratLampiran    *lampiran.Lampiran `json:"surat_lampiran,omitempty"`
	SuratKegiatanID  *uuid.UUID         `json:"surat_kegiatan_id,omitempty"`

	SuratDibuatOleh     uuid.UUID `json:"surat_dibuat_oleh"`
	SuratDibuatOlehNama string    `json:"surat_dibuat_oleh_nama,omitempty"`
	SuratCreatedAt      time.Time `json:"surat_created_at"`
	SuratUpdatedAt      time.Time `json:"surat_updated_at"`
}

func NewSuratResponse(m *model.SuratModel) *SuratResponse {
	if m == nil {
		return nil
	}
	resp := &SuratResponse{
		SuratID:             m.SuratID,
		SuratArah:           m.SuratArah,
		SuratNomor:          m.SuratNomor,
		SuratTanggal:        m.SuratTanggal,
		SuratPerihal:        m.SuratPerihal,
		SuratAsalTujuan:     m.SuratAsalTujuan,
		SuratTipeUnit:       m.SuratTipeUnit,
		SuratSifat:          m.SuratSifat,
		SuratJenisNaskah:    m.SuratJenisNaskah,
		SuratKlasifikasi:    m.SuratKlasifikasi,
		SuratBidangTugas:    m.SuratBidangTugas,
		SuratKegiatanID:     m.SuratKegiatanID,
		SuratDibuatOleh:     m.SuratDibuatOleh,
		SuratDibuatOlehNama: m.SuratDibuatOlehNama,
		SuratCreatedAt:      m.SuratCreatedAt,
		SuratUpdatedAt:      m.SuratUpdatedAt,
	}
	if !m.SuratLampiran.IsZero() {
		l := m.SuratLampiran
		resp.SuratLampiran = &l
	}
	return resp
}

func NewSuratResponses(ms []model.SuratModel) []*SuratResponse {
	out := make([]*SuratResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewSuratResponse(&ms[i]))
	}
	return out
}
