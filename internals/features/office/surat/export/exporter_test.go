package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	model "kantorku_backend/internals/features/office/surat/model"
)

func sampleRows() []model.SuratModel {
	return []model.SuratModel{
		{
			SuratID:          uuid.New(),
			SuratArah:        model.SuratMasuk,
			SuratNomor:       "001/UND/2026",
			SuratTanggal:     time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC),
			SuratPerihal:     "Undangan rapat anggaran",
			SuratAsalTujuan:  "Dinas Kominfo",
			SuratJenisNaskah: "Surat Undangan",
			SuratKlasifikasi: "Umum",
		},
		{
			SuratID:          uuid.New(),
			SuratArah:        model.SuratKeluar,
			SuratNomor:       "002/ND/2026",
			SuratTanggal:     time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
			SuratPerihal:     "Nota dinas perjalanan",
			SuratAsalTujuan:  "Bagian Umum",
			SuratJenisNaskah: "Nota Dinas",
			SuratKlasifikasi: "Kepegawaian",
		},
	}
}

func TestBuildXLSX(t *testing.T) {
	data, err := BuildXLSX(sampleRows())
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("baca balik xlsx: %v", err)
	}
	defer f.Close()

	const sheet = "Daftar Surat"
	got, err := f.GetCellValue(sheet, "B1")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Nomor Surat" {
		t.Errorf("header B1 = %q, mau %q", got, "Nomor Surat")
	}

	got, _ = f.GetCellValue(sheet, "B2")
	if got != "001/UND/2026" {
		t.Errorf("B2 = %q, mau %q", got, "001/UND/2026")
	}
	got, _ = f.GetCellValue(sheet, "D3")
	if got != "2026-08-10" {
		t.Errorf("D3 = %q, mau %q", got, "2026-08-10")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("jumlah baris = %d, mau 3 (header + 2 data)", len(rows))
	}
}

func TestBuildXLSXKosong(t *testing.T) {
	data, err := BuildXLSX(nil)
	if err != nil {
		t.Fatalf("BuildXLSX kosong: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("baca balik: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Daftar Surat")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("jumlah baris = %d, mau 1 (hanya header)", len(rows))
	}
}

func TestBuildPDF(t *testing.T) {
	data, err := BuildPDF(sampleRows())
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output bukan PDF, prefix = %q", data[:min(8, len(data))])
	}
	if len(data) < 500 {
		t.Errorf("PDF terlalu kecil: %d byte", len(data))
	}
}

func TestFitCellPotongPerRune(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"pendek utuh", "Nota dinas", "Nota dinas"},
		{"tepat 60", strings.Repeat("a", 60), strings.Repeat("a", 60)},
		{"ascii panjang", strings.Repeat("a", 61), strings.Repeat("a", 57) + "..."},
		{
			"multi-byte tidak terbelah",
			strings.Repeat("é", 61),
			strings.Repeat("é", 57) + "...",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fitCell(tc.in)
			if got != tc.want {
				t.Errorf("fitCell = %q, mau %q", got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("hasil bukan UTF-8 valid: %q", got)
			}
		})
	}
}

func TestBuildPDFPerihalPanjangMultiByte(t *testing.T) {
	rows := sampleRows()
	rows[0].SuratPerihal = strings.Repeat("Rapat koordinasi évaluasi ", 5)
	data, err := BuildPDF(rows)
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output bukan PDF, prefix = %q", data[:min(8, len(data))])
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
