package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestToModelTanggalSelesaiDefault(t *testing.T) {
	userID := uuid.New()

	req := CreateKegiatanRequest{
		KegiatanJudul:        "Rapat koordinasi",
		KegiatanTipe:         "Rapat",
		KegiatanTanggalMulai: "2026-08-10",
		KegiatanPIC:          []string{"Andi"},
	}
	m := req.ToModel(userID, "Andi")

	mulai := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	if !m.KegiatanTanggalMulai.Equal(mulai) {
		t.Errorf("tanggal mulai = %v", m.KegiatanTanggalMulai)
	}
	// tanpa tanggal selesai, kegiatan dianggap satu hari
	if !m.KegiatanTanggalSelesai.Equal(mulai) {
		t.Errorf("tanggal selesai = %v, mau sama dengan mulai", m.KegiatanTanggalSelesai)
	}
	if m.KegiatanDibuatOleh != userID || m.KegiatanDibuatOlehNama != "Andi" {
		t.Errorf("metadata pembuat = %s/%q", m.KegiatanDibuatOleh, m.KegiatanDibuatOlehNama)
	}
}

func TestToModelRentangDanTautan(t *testing.T) {
	req := CreateKegiatanRequest{
		KegiatanJudul:          "Sosialisasi aplikasi",
		KegiatanTipe:           "Sosialisasi",
		KegiatanTanggalMulai:   "2026-08-10",
		KegiatanTanggalSelesai: "2026-08-12",
		KegiatanPIC:            []string{"Andi", "Budi"},
		KegiatanTautan: []TautanRequest{
			{Judul: " Notulen ", URL: " https://drive.example.com/d/abc "},
		},
	}
	m := req.ToModel(uuid.New(), "Andi")

	if !m.KegiatanTanggalSelesai.Equal(time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("tanggal selesai = %v", m.KegiatanTanggalSelesai)
	}
	if len(m.KegiatanPIC) != 2 {
		t.Errorf("PIC = %v", m.KegiatanPIC)
	}
	if len(m.KegiatanTautan) != 1 {
		t.Fatalf("tautan = %d, mau 1", len(m.KegiatanTautan))
	}
	if m.KegiatanTautan[0].Judul != "Notulen" || m.KegiatanTautan[0].URL != "https://drive.example.com/d/abc" {
		t.Errorf("tautan tidak di-trim: %+v", m.KegiatanTautan[0])
	}
}
