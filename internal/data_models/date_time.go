package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layouts accepted for task dates. Values without an offset are naive and get
// their timezone from the server configuration.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type DateTime struct {
	t     time.Time
	naive bool
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{t: t}
}

func ParseDateTime(s string) (DateTime, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DateTime{t: t}, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{t: t, naive: true}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q", s)
}

// In resolves the value to an absolute instant, reading naive wall clock
// values in loc.
func (d DateTime) In(loc *time.Location) time.Time {
	if !d.naive || loc == nil {
		return d.t
	}
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), d.t.Hour(), d.t.Minute(), d.t.Second(), d.t.Nanosecond(), loc)
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}

	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.t)
}
