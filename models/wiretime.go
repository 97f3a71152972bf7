package models

import (
	"encoding/json"
	"time"
)

// Stamp wire-encodes a time.Time as { "secs_since_epoch": int, "nanos_since_epoch": int },
// the shape the persisted game dump (spec §6.4) requires.
type Stamp time.Time

// NewStamp wraps t as a Stamp.
func NewStamp(t time.Time) Stamp {
	return Stamp(t)
}

// Time unwraps the Stamp back to a time.Time.
func (s Stamp) Time() time.Time {
	return time.Time(s)
}

type stampWire struct {
	SecsSinceEpoch  int64 `json:"secs_since_epoch"`
	NanosSinceEpoch int32 `json:"nanos_since_epoch"`
}

// MarshalJSON implements json.Marshaler.
func (s Stamp) MarshalJSON() ([]byte, error) {
	t := time.Time(s)
	return json.Marshal(stampWire{
		SecsSinceEpoch:  t.Unix(),
		NanosSinceEpoch: int32(t.Nanosecond()),
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Stamp) UnmarshalJSON(data []byte) error {
	var w stampWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = Stamp(time.Unix(w.SecsSinceEpoch, int64(w.NanosSinceEpoch)).UTC())
	return nil
}
