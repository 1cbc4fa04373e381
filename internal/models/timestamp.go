package models

import (
	"bytes"
	"time"
)

// naiveLayout, saat dilimi içermeyen UTC zaman damgalarını karşılar
// ("2025-01-20T10:15:00.123456").
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp, hem RFC 3339 hem de saat dilimsiz UTC biçimini kabul eden zaman değeridir.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON, saat dilimi olan ve olmayan zaman damgalarını okur.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, s, time.UTC)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON, zamanı UTC olarak RFC 3339 biçiminde yazar.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return t.Time.UTC().MarshalJSON()
}
