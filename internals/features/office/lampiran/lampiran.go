// Package lampiran memodelkan artefak dokumen: file hasil upload ATAU
// tautan eksternal. Dibedakan lewat field Jenis supaya penanganannya
// eksplisit, bukan lewat flag boolean.
package lampiran

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

type Jenis string

const (
	JenisFile Jenis = "file"
	JenisLink Jenis = "link"
)

type Lampiran struct {
	Jenis     Jenis  `json:"jenis"`
	Nama      string `json:"nama,omitempty"`
	URL       string `json:"url"`
	ObjectKey string `json:"object_key,omitempty"`
	Ukuran    int64  `json:"ukuran,omitempty"`
}

func NewFile(nama, url, objectKey string, ukuran int64) Lampiran {
	return Lampiran{Jenis: JenisFile, Nama: nama, URL: url, ObjectKey: objectKey, Ukuran: ukuran}
}

func NewLink(nama, url string) Lampiran {
	return Lampiran{Jenis: JenisLink, Nama: nama, URL: url}
}

func (l Lampiran) IsZero() bool { return l.Jenis == "" && l.URL == "" }

func (l Lampiran) Validate() error {
	switch l.Jenis {
	case JenisFile:
		if strings.TrimSpace(l.URL) == "" || strings.TrimSpace(l.ObjectKey) == "" {
			return fmt.Errorf("lampiran file wajib punya url dan object_key")
		}
	case JenisLink:
		if strings.TrimSpace(l.URL) == "" {
			return fmt.Errorf("lampiran link wajib punya url")
		}
		if l.ObjectKey != "" {
			return fmt.Errorf("lampiran link tidak boleh punya object_key")
		}
	default:
		return fmt.Errorf("jenis lampiran tidak dikenal: %q", l.Jenis)
	}
	return nil
}

/* ===============================
   GORM value bindings (JSONB)
=================================*/

// Value: kolom NULL saat kosong
func (l Lampiran) Value() (driver.Value, error) {
	if l.IsZero() {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *Lampiran) Scan(value interface{}) error {
	if value == nil {
		*l = Lampiran{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("lampiran: tipe scan tidak didukung %T", value)
	}
}

// List: daftar lampiran bebas (jsonb array)
type List []Lampiran

func (ls List) Value() (driver.Value, error) {
	if len(ls) == 0 {
		return nil, nil
	}
	return json.Marshal(ls)
}

func (ls *List) Scan(value interface{}) error {
	if value == nil {
		*ls = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, ls)
	case string:
		return json.Unmarshal([]byte(v), ls)
	default:
		return fmt.Errorf("lampiran list: tipe scan tidak didukung %T", value)
	}
}
