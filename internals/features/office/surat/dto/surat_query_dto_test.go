package dto

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dispModel "kantorku_backend/internals/features/office/disposisi/model"
	suratModel "kantorku_backend/internals/features/office/surat/model"
)

func newQueryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("buka sqlite: %v", err)
	}
	if err := db.AutoMigrate(&suratModel.SuratModel{}, &dispModel.DisposisiModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, arah suratModel.SuratArah, nomor, perihal, jenis string, tanggal time.Time) *suratModel.SuratModel {
	t.Helper()
	s := &suratModel.SuratModel{
		SuratArah:        arah,
		SuratNomor:       nomor,
		SuratTanggal:     tanggal,
		SuratPerihal:     perihal,
		SuratAsalTujuan:  "Dinas Kominfo",
		SuratTipeUnit:    suratModel.UnitEksternal,
		SuratJenisNaskah: jenis,
		SuratDibuatOleh:  uuid.New(),
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestApplyFilters(t *testing.T) {
	db := newQueryDB(t)

	d := func(day int) time.Time { return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC) }
	masuk := seed(t, db, suratModel.SuratMasuk, "001/UND/2026", "Undangan rapat anggaran", "Surat Undangan", d(5))
	seed(t, db, suratModel.SuratKeluar, "002/ND/2026", "Nota dinas perjalanan", "Nota Dinas", d(10))
	seed(t, db, suratModel.SuratMasuk, "003/SE/2026", "Edaran libur nasional", "Surat Edaran", d(20))

	// satu surat punya disposisi Pending
	if err := db.Create(&dispModel.DisposisiModel{
		DisposisiSuratID:    masuk.SuratID,
		DisposisiKegiatanID: uuid.New(),
		DisposisiAssignedTo: uuid.New(),
		DisposisiInstruksi:  "Tindak lanjuti",
		DisposisiStatus:     dispModel.StatusPending,
		DisposisiDibuatOleh: uuid.New(),
	}).Error; err != nil {
		t.Fatalf("seed disposisi: %v", err)
	}

	run := func(t *testing.T, f ListSuratQuery) []suratModel.SuratModel {
		t.Helper()
		q, err := f.Apply(db.Model(&suratModel.SuratModel{}))
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		var rows []suratModel.SuratModel
		if err := q.Find(&rows).Error; err != nil {
			t.Fatalf("Find: %v", err)
		}
		return rows
	}

	tests := []struct {
		name string
		f    ListSuratQuery
		want int
	}{
		{"tanpa filter", ListSuratQuery{}, 3},
		{"arah masuk", ListSuratQuery{Arah: "Masuk"}, 2},
		{"jenis naskah", ListSuratQuery{JenisNaskah: "Nota Dinas"}, 1},
		{"rentang tanggal", ListSuratQuery{DateFrom: "2026-08-08", DateTo: "2026-08-15"}, 1},
		{"status disposisi", ListSuratQuery{DisposisiStatus: "Pending"}, 1},
		{"status disposisi tanpa hasil", ListSuratQuery{DisposisiStatus: "Completed"}, 0},
		{"cari perihal", ListSuratQuery{Q: "RAPAT"}, 1},
		{"cari nomor", ListSuratQuery{Q: "003/"}, 1},
		{"kombinasi", ListSuratQuery{Arah: "Masuk", Q: "edaran"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rows := run(t, tt.f); len(rows) != tt.want {
				t.Errorf("hasil = %d, mau %d", len(rows), tt.want)
			}
		})
	}

	t.Run("arah tidak valid", func(t *testing.T) {
		if _, err := (ListSuratQuery{Arah: "Sideways"}).Apply(db.Model(&suratModel.SuratModel{})); err == nil {
			t.Error("arah tidak valid harus error")
		}
	})
	t.Run("tanggal tidak valid", func(t *testing.T) {
		if _, err := (ListSuratQuery{DateFrom: "08-08-2026"}).Apply(db.Model(&suratModel.SuratModel{})); err == nil {
			t.Error("format tanggal salah harus error")
		}
	})
}

func TestApplySort(t *testing.T) {
	db := newQueryDB(t)
	d := func(day int) time.Time { return time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC) }
	seed(t, db, suratModel.SuratMasuk, "B", "b", "Nota Dinas", d(2))
	seed(t, db, suratModel.SuratMasuk, "A", "a", "Nota Dinas", d(1))
	seed(t, db, suratModel.SuratMasuk, "C", "c", "Nota Dinas", d(3))

	run := func(t *testing.T, f ListSuratQuery) []string {
		t.Helper()
		q, err := f.Apply(db.Model(&suratModel.SuratModel{}))
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		var rows []suratModel.SuratModel
		if err := q.Find(&rows).Error; err != nil {
			t.Fatalf("Find: %v", err)
		}
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.SuratNomor)
		}
		return out
	}

	tests := []struct {
		name string
		f    ListSuratQuery
		want []string
	}{
		{"default tanggal desc", ListSuratQuery{}, []string{"C", "B", "A"}},
		{"nomor asc", ListSuratQuery{SortBy: "nomor", SortDir: "asc"}, []string{"A", "B", "C"}},
		{"nomor desc", ListSuratQuery{SortBy: "nomor", SortDir: "desc"}, []string{"C", "B", "A"}},
		// kolom di luar whitelist jatuh ke default, bukan SQL mentah
		{"kolom liar", ListSuratQuery{SortBy: "surat_id; DROP TABLE surats"}, []string{"C", "B", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.f)
			if len(got) != len(tt.want) {
				t.Fatalf("jumlah = %d, mau %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("urutan = %v, mau %v", got, tt.want)
					break
				}
			}
		})
	}
}
