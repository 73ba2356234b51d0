package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tautan eksternal berjudul (mis. notulen di Drive)
type Tautan struct {
	Judul string `json:"judul"`
	URL   string `json:"url"`
}

type TautanList []Tautan

func (ts TautanList) Value() (driver.Value, error) {
	if len(ts) == 0 {
		return nil, nil
	}
	return json.Marshal(ts)
}

func (ts *TautanList) Scan(value interface{}) error {
	return scanJSON(value, ts, "tautan list")
}

type Komentar struct {
	KomentarID uuid.UUID `json:"komentar_id"`
	PenulisID  uuid.UUID `json:"penulis_id"`
	Penulis    string    `json:"penulis"`
	Isi        string    `json:"isi"`
	Waktu      time.Time `json:"waktu"`
}

type KomentarList []Komentar

func (ks KomentarList) Value() (driver.Value, error) {
	if len(ks) == 0 {
		return nil, nil
	}
	return json.Marshal(ks)
}

func (ks *KomentarList) Scan(value interface{}) error {
	return scanJSON(value, ks, "komentar list")
}

func scanJSON(value interface{}, dst interface{}, label string) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("%s: tipe scan tidak didukung %T", label, value)
	}
}
