package lampiran

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		l       Lampiran
		wantErr bool
	}{
		{"file lengkap", NewFile("undangan.pdf", "https://cdn.example.com/surat/a.pdf", "surat/a.pdf", 1024), false},
		{"file tanpa object_key", Lampiran{Jenis: JenisFile, URL: "https://cdn.example.com/a.pdf"}, true},
		{"file tanpa url", Lampiran{Jenis: JenisFile, ObjectKey: "surat/a.pdf"}, true},
		{"link lengkap", NewLink("Notulen", "https://drive.example.com/d/abc"), false},
		{"link tanpa url", Lampiran{Jenis: JenisLink, Nama: "Notulen"}, true},
		{"link dengan object_key", Lampiran{Jenis: JenisLink, URL: "https://x.test", ObjectKey: "a"}, true},
		{"jenis kosong", Lampiran{URL: "https://x.test"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.l.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValueNULLSaatKosong(t *testing.T) {
	var zero Lampiran
	v, err := zero.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != nil {
		t.Errorf("lampiran kosong harus NULL, dapat %v", v)
	}

	var emptyList List
	v, err = emptyList.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != nil {
		t.Errorf("list kosong harus NULL, dapat %v", v)
	}
}

func TestScanRoundtrip(t *testing.T) {
	orig := NewFile("laporan.xlsx", "https://cdn.example.com/k/laporan.xlsx", "k/laporan.xlsx", 2048)
	raw, err := orig.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var back Lampiran
	if err := back.Scan(raw); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if back != orig {
		t.Errorf("roundtrip = %+v, mau %+v", back, orig)
	}

	// NULL dari DB menghasilkan zero value
	var fromNull Lampiran
	if err := fromNull.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	if !fromNull.IsZero() {
		t.Errorf("Scan(nil) = %+v, mau zero", fromNull)
	}

	if err := back.Scan(42); err == nil {
		t.Error("Scan(int) harus error")
	}
}
