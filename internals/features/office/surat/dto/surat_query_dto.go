package dto

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Tujuh kolom yang boleh jadi kunci sort di tabel surat
var sortableColumns = map[string]string{
	"nomor":        "surat_nomor",
	"tanggal":      "surat_tanggal",
	"perihal":      "surat_perihal",
	"asal_tujuan":  "surat_asal_tujuan",
	"jenis_naskah": "surat_jenis_naskah",
	"arah":         "surat_arah",
	"created_at":   "surat_created_at",
}

type ListSuratQuery struct {
	Arah            string `query:"arah"`
	JenisNaskah     string `query:"jenis_naskah"`
	DateFrom        string `query:"date_from"`
	DateTo          string `query:"date_to"`
	DisposisiStatus string `query:"disposisi_status"`
	Q               string `query:"q"`
	SortBy          string `query:"sort_by"`
	SortDir         string `query:"sort_dir"`
}

// Apply menerapkan filter + sort ke query surats. Filter status
// disposisi memakai EXISTS karena satu surat bisa punya banyak baris
// disposisi.
func (f ListSuratQuery) Apply(db *gorm.DB) (*gorm.DB, error) {
	q := db

	if arah := strings.TrimSpace(f.Arah); arah != "" {
		if arah != "Masuk" && arah != "Keluar" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "arah harus Masuk atau Keluar")
		}
		q = q.Where("surat_arah = ?", arah)
	}
	if jn := strings.TrimSpace(f.JenisNaskah); jn != "" {
		q = q.Where("surat_jenis_naskah = ?", jn)
	}
	if df := strings.TrimSpace(f.DateFrom); df != "" {
		t, err := time.Parse("2006-01-02", df)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "date_from tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("surat_tanggal >= ?", t)
	}
	if dt := strings.TrimSpace(f.DateTo); dt != "" {
		t, err := time.Parse("2006-01-02", dt)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "date_to tidak valid (YYYY-MM-DD)")
		}
		q = q.Where("surat_tanggal <= ?", t)
	}
	if ds := strings.TrimSpace(f.DisposisiStatus); ds != "" {
		q = q.Where("EXISTS (SELECT 1 FROM disposisi WHERE disposisi_surat_id = surats.surat_id AND disposisi_status = ?)", ds)
	}
	if kw := strings.ToLower(strings.TrimSpace(f.Q)); kw != "" {
		like := "%" + kw + "%"
		q = q.Where(
			"LOWER(surat_nomor) LIKE ? OR LOWER(surat_perihal) LIKE ? OR LOWER(surat_asal_tujuan) LIKE ?",
			like, like, like,
		)
	}

	col, ok := sortableColumns[strings.TrimSpace(f.SortBy)]
	if !ok {
		col = "surat_tanggal"
	}
	dir := "DESC"
	if strings.EqualFold(strings.TrimSpace(f.SortDir), "asc") {
		dir = "ASC"
	}
	return q.Order(col + " " + dir), nil
}

// Filter ekspor: dikonfigurasi terpisah dari filter tabel, hanya untuk
// aksi export (lihat controller).
type ExportSuratQuery struct {
	Arah        string `query:"arah"`
	JenisNaskah string `query:"jenis_naskah"`
	DateFrom    string `query:"date_from"`
	DateTo      string `query:"date_to"`
	Format      string `query:"format"`
}

func (f ExportSuratQuery) Apply(db *gorm.DB) (*gorm.DB, error) {
	list := ListSuratQuery{
		Arah:        f.Arah,
		JenisNaskah: f.JenisNaskah,
		DateFrom:    f.DateFrom,
		DateTo:      f.DateTo,
		SortBy:      "tanggal",
		SortDir:     "asc",
	}
	return list.Apply(db)
}
