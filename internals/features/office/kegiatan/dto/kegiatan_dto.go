package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "kantorku_backend/internals/features/office/kegiatan/model"
	"kantorku_backend/internals/features/office/lampiran"
)

/* ===================== REQUESTS ===================== */

type TautanRequest struct {
	Judul string `json:"judul" validate:"required,max=200"`
	URL   string `json:"url" validate:"required,url"`
}

type CreateKegiatanRequest struct {
	KegiatanJudul              string          `json:"kegiatan_judul" validate:"required,min=3,max=250"`
	KegiatanTipe               string          `json:"kegiatan_tipe" validate:"required"`
	KegiatanTanggalMulai       string          `json:"kegiatan_tanggal_mulai" validate:"required,datetime=2006-01-02"`
	KegiatanTanggalSelesai     string          `json:"kegiatan_tanggal_selesai" validate:"omitempty,datetime=2006-01-02"`
	KegiatanJamMulai           string          `json:"kegiatan_jam_mulai" validate:"omitempty,len=5"`
	KegiatanJamSelesai         string          `json:"kegiatan_jam_selesai" validate:"omitempty,len=5"`
	KegiatanLokasi             string          `json:"kegiatan_lokasi" validate:"omitempty,max=250"`
	KegiatanLinkOnline         *string         `json:"kegiatan_link_online" validate:"omitempty,url"`
	KegiatanPengundang         string          `json:"kegiatan_pengundang" validate:"omitempty,max=150"`
	KegiatanPengundangInstansi string          `json:"kegiatan_pengundang_instansi" validate:"omitempty,max=200"`
	KegiatanPIC                []string        `json:"kegiatan_pic" validate:"required,min=1,dive,required"`
	KegiatanUndangan           []string        `json:"kegiatan_undangan" validate:"omitempty,dive,required"`
	KegiatanProyekID           *uuid.UUID      `json:"kegiatan_proyek_id" validate:"omitempty"`
	KegiatanTautan             []TautanRequest `json:"kegiatan_tautan" validate:"omitempty,dive"`
}

func (r CreateKegiatanRequest) ToModel(userID uuid.UUID, userName string) *model.KegiatanModel {
	mulai, _ := time.Parse("2006-01-02", strings.TrimSpace(r.KegiatanTanggalMulai))
	selesai := mulai
	if s := strings.TrimSpace(r.KegiatanTanggalSelesai); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			selesai = t
		}
	}

	m := &model.KegiatanModel{
		KegiatanJudul:              strings.TrimSpace(r.KegiatanJudul),
		KegiatanTipe:               model.KegiatanTipe(r.KegiatanTipe),
		KegiatanTanggalMulai:       mulai,
		KegiatanTanggalSelesai:     selesai,
		KegiatanJamMulai:           strings.TrimSpace(r.KegiatanJamMulai),
		KegiatanJamSelesai:         strings.TrimSpace(r.KegiatanJamSelesai),
		KegiatanLokasi:             strings.TrimSpace(r.KegiatanLokasi),
		KegiatanLinkOnline:         r.KegiatanLinkOnline,
		KegiatanPengundang:         strings.TrimSpace(r.KegiatanPengundang),
		KegiatanPengundangInstansi: strings.TrimSpace(r.KegiatanPengundangInstansi),
		KegiatanPIC:                datatypes.NewJSONSlice(r.KegiatanPIC),
		KegiatanUndangan:           datatypes.NewJSONSlice(r.KegiatanUndangan),
		KegiatanProyekID:           r.KegiatanProyekID,
		KegiatanStatus:             model.KegiatanScheduled,
		KegiatanDibuatOleh:         userID,
		KegiatanDibuatOlehNama:     userName,
	}
	for _, t := range r.KegiatanTautan {
		m.KegiatanTautan = append(m.KegiatanTautan, model.Tautan{
			Judul: strings.TrimSpace(t.Judul),
			URL:   strings.TrimSpace(t.URL),
		})
	}
	return m
}

type UpdateKegiatanRequest struct {
	KegiatanJudul              *string         `json:"kegiatan_judul" validate:"omitempty,min=3,max=250"`
	KegiatanTipe               *string         `json:"kegiatan_tipe" validate:"omitempty"`
	KegiatanTanggalMulai       *string         `json:"kegiatan_tanggal_mulai" validate:"omitempty,datetime=2006-01-02"`
	KegiatanTanggalSelesai     *string         `json:"kegiatan_tanggal_selesai" validate:"omitempty,datetime=2006-01-02"`
	KegiatanJamMulai           *string         `json:"kegiatan_jam_mulai" validate:"omitempty,len=5"`
	KegiatanJamSelesai         *string         `json:"kegiatan_jam_selesai" validate:"omitempty,len=5"`
	KegiatanLokasi             *string         `json:"kegiatan_lokasi" validate:"omitempty,max=250"`
	KegiatanLinkOnline         *string         `json:"kegiatan_link_online" validate:"omitempty,url"`
	KegiatanPengundang         *string         `json:"kegiatan_pengundang" validate:"omitempty,max=150"`
	KegiatanPengundangInstansi *string         `json:"kegiatan_pengundang_instansi" validate:"omitempty,max=200"`
	KegiatanPIC                []string        `json:"kegiatan_pic" validate:"omitempty,min=1,dive,required"`
	KegiatanUndangan           []string        `json:"kegiatan_undangan" validate:"omitempty,dive,required"`
	KegiatanStatus             *string         `json:"kegiatan_status" validate:"omitempty,oneof=scheduled ongoing completed cancelled"`
	KegiatanTautan             []TautanRequest `json:"kegiatan_tautan" validate:"omitempty,dive"`
}

type KomentarRequest struct {
	Isi string `json:"isi" validate:"required,min=1"`
}

/* ===================== RESPONSES ===================== */

type KegiatanResponse struct {
	KegiatanID     uuid.UUID            `json:"kegiatan_id"`
	KegiatanJudul  string               `json:"kegiatan_judul"`
	KegiatanTipe   model.KegiatanTipe   `json:"kegiatan_tipe"`
	KegiatanStatus model.KegiatanStatus `json:"kegiatan_status"`

	KegiatanTanggalMulai   time.Time `json:"kegiatan_tanggal_mulai"`
	KegiatanTanggalSelesai time.Time `json:"kegiatan_tanggal_selesai"`
	KegiatanJamMulai       string    `json:"kegiatan_jam_mulai,omitempty"`
	KegiatanJamSelesai     string    `json:"kegiatan_jam_selesai,omitempty"`

	KegiatanLokasi     string  `json:"kegiatan_lokasi,omitempty"`
	KegiatanLinkOnline *string `json:"kegiatan_link_online,omitempty"`

	KegiatanPengundang         string `json:"kegiatan_pengundang,omitempty"`
	KegiatanPengundangInstansi string `json:"kegiatan_pengundang_instansi,omitempty"`

	KegiatanPIC      []string `json:"kegiatan_pic"`
	KegiatanUndangan []string `json:"kegiatan_undangan,omitempty"`

	KegiatanProyekID *uuid.UUID `json:"kegiatan_proyek_id,omitempty"`

	KegiatanDokUndangan   *lampiran.Lampiran `json:"kegiatan_dok_undangan,omitempty"`
	KegiatanDokSuratTugas *lampiran.Lampiran `json:"kegiatan_dok_surat_tugas,omitempty"`
	KegiatanDokLaporan    *lampiran.Lampiran `json:"kegiatan_dok_laporan,omitempty"`

	KegiatanLampiran lampiran.List      `json:"kegiatan_lampiran,omitempty"`
	KegiatanTautan   model.TautanList   `json:"kegiatan_tautan,omitempty"`
	KegiatanKomentar model.KomentarList `json:"kegiatan_komentar,omitempty"`

	KegiatanLinkedSuratID *uuid.UUID `json:"kegiatan_linked_surat_id,omitempty"`

	KegiatanDibuatOleh     uuid.UUID `json:"kegiatan_dibuat_oleh"`
	KegiatanDibuatOlehNama string    `json:"kegiatan_dibuat_oleh_nama,omitempty"`
	KegiatanCreatedAt      time.Time `json:"kegiatan_created_at"`
	KegiatanUpdatedAt      time.Time `json:"kegiatan_updated_at"`
}

func lampiranPtr(l lampiran.Lampiran) *lampiran.Lampiran {
	if l.IsZero() {
		return nil
	}
	return &l
}

func NewKegiatanResponse(m *model.KegiatanModel) *KegiatanResponse {
	if m == nil {
		return nil
	}
	return &KegiatanResponse{
		KegiatanID:                 m.KegiatanID,
		KegiatanJudul:              m.KegiatanJudul,
		KegiatanTipe:               m.KegiatanTipe,
		KegiatanStatus:             m.KegiatanStatus,
		KegiatanTanggalMulai:       m.KegiatanTanggalMulai,
		KegiatanTanggalSelesai:     m.KegiatanTanggalSelesai,
		KegiatanJamMulai:           m.KegiatanJamMulai,
		KegiatanJamSelesai:         m.KegiatanJamSelesai,
		KegiatanLokasi:             m.KegiatanLokasi,
		KegiatanLinkOnline:         m.KegiatanLinkOnline,
		KegiatanPengundang:         m.KegiatanPengundang,
		KegiatanPengundangInstansi: m.KegiatanPengundangInstansi,
		KegiatanPIC:                m.KegiatanPIC,
		KegiatanUndangan:           m.KegiatanUndangan,
		KegiatanProyekID:           m.KegiatanProyekID,
		KegiatanDokUndangan:        lampiranPtr(m.KegiatanDokUndangan),
		KegiatanDokSuratTugas:      lampiranPtr(m.KegiatanDokSuratTugas),
		KegiatanDokLaporan:         lampiranPtr(m.KegiatanDokLaporan),
		KegiatanLampiran:           m.KegiatanLampiran,
		KegiatanTautan:             m.KegiatanTautan,
		KegiatanKomentar:           m.KegiatanKomentar,
		KegiatanLinkedSuratID:      m.KegiatanLinkedSuratID,
		KegiatanDibuatOleh:         m.KegiatanDibuatOleh,
		KegiatanDibuatOlehNama:     m.KegiatanDibuatOlehNama,
		KegiatanCreatedAt:          m.KegiatanCreatedAt,
		KegiatanUpdatedAt:          m.KegiatanUpdatedAt,
	}
}

func NewKegiatanResponses(ms []model.KegiatanModel) []*KegiatanResponse {
	out := make([]*KegiatanResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewKegiatanResponse(&ms[i]))
	}
	return out
}
