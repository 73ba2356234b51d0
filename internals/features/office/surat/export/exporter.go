// Package export membangun berkas XLSX/PDF dari himpunan surat yang
// sudah terfilter (bukan yang ter-paginate).
package export

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	model "kantorku_backend/internals/features/office/surat/model"
)

var headers = []string{"No", "Nomor Surat", "Arah", "Tanggal", "Perihal", "Asal/Tujuan", "Jenis Naskah", "Klasifikasi"}

func rowValues(i int, s *model.SuratModel) []string {
	return []string{
		fmt.Sprintf("%d", i+1),
		s.SuratNomor,
		string(s.SuratArah),
		s.SuratTanggal.Format("2006-01-02"),
		s.SuratPerihal,
		s.SuratAsalTujuan,
		s.SuratJenisNaskah,
		s.SuratKlasifikasi,
	}
}

func BuildXLSX(rows []model.SuratModel) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Daftar Surat"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i := range rows {
		for col, v := range rowValues(i, &rows[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func BuildPDF(rows []model.SuratModel) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Daftar Surat", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Daftar Surat", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 6, "Dicetak "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	widths := []float64{10, 40, 18, 24, 80, 45, 30, 30}

	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i := range rows {
		for col, v := range rowValues(i, &rows[i]) {
			pdf.CellFormat(widths[col], 7, fitCell(v), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf pdfBuffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.data, nil
}

// potong teks panjang supaya muat satu baris sel; per rune, bukan per
// byte, agar karakter multi-byte tidak terbelah
func fitCell(v string) string {
	r := []rune(v)
	if len(r) <= 60 {
		return v
	}
	return string(r[:57]) + "..."
}

type pdfBuffer struct{ data []byte }

func (b *pdfBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
