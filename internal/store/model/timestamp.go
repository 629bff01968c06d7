package model

import (
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// Timestamp is a store-assigned instant. It scans from native time values and
// from the text SQLite yields for RETURNING clauses.
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("model.Timestamp: cannot scan %T", src)
	}
}

func (ts *Timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("model.Timestamp: unrecognised format %q", s)
}
