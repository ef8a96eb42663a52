package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// FlexTime is a creation timestamp that tolerates every shape found in
// persisted board data: an RFC3339 string (local snapshots), a
// {"seconds":n,"nanoseconds":n} record (the remote store's wire shape), or a
// bare epoch-millisecond number (legacy local ids reused as timestamps).
// It always marshals back to RFC3339 so display code sees one instant shape.
type FlexTime struct {
	time.Time
}

// Now returns the current time as a FlexTime.
func Now() FlexTime {
	return FlexTime{Time: time.Now()}
}

type secondsRecord struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int64 `json:"nanoseconds"`
}

// MarshalJSON renders the timestamp as an RFC3339 string. The zero value
// marshals as null so "not yet resolved" server timestamps stay detectable.
func (t FlexTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// UnmarshalJSON accepts RFC3339 strings, seconds records, epoch-millisecond
// numbers, and null.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := time.Parse(time.RFC3339Nano, s)
		if perr != nil {
			parsed, perr = time.Parse(time.RFC3339, s)
		}
		if perr != nil {
			return fmt.Errorf("parse timestamp %q: %w", s, perr)
		}
		t.Time = parsed
		return nil
	}

	var rec secondsRecord
	if err := json.Unmarshal(data, &rec); err == nil && rec.Seconds != 0 {
		t.Time = time.Unix(rec.Seconds, rec.Nanoseconds)
		return nil
	}

	var millis int64
	if err := json.Unmarshal(data, &millis); err == nil {
		t.Time = time.UnixMilli(millis)
		return nil
	}

	return fmt.Errorf("unsupported timestamp shape: %s", data)
}

// Value implements driver.Valuer so the remote store can persist FlexTime
// columns through GORM.
func (t FlexTime) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

// Scan implements sql.Scanner.
func (t *FlexTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v
	case []byte:
		parsed, err := time.Parse("2006-01-02 15:04:05", string(v))
		if err != nil {
			return fmt.Errorf("scan timestamp %q: %w", v, err)
		}
		t.Time = parsed
	default:
		return fmt.Errorf("cannot scan %T into FlexTime", src)
	}
	return nil
}
