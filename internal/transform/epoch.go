package transform

import (
	"fmt"
	"time"

	"kakaku/internal/record"
)

// KindEpochTime is the artifact name of the temporal-to-numeric stage.
const KindEpochTime = "epoch_time"

// dateLayouts are tried in order when the temporal field arrives as text.
// Zone-less layouts parse as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// EpochTime reinterprets a date/time field as whole seconds since the Unix
// epoch, truncating sub-second precision. A field that is already numeric
// passes through unchanged, which makes re-application safe.
type EpochTime struct {
	field string
}

func NewEpochTime(field string) *EpochTime { return &EpochTime{field: field} }

func (s *EpochTime) Name() string  { return KindEpochTime }
func (s *EpochTime) Field() string { return s.field }

// Fit is a no-op: the epoch encoding is structural, nothing is learned.
func (s *EpochTime) Fit(batch []record.Record) error { return nil }

func (s *EpochTime) Transform(rec record.Record) (record.Record, error) {
	v, err := rec.Get(s.field)
	if err != nil {
		return nil, err
	}
	switch v.Kind {
	case record.KindTimestamp:
		rec.Set(s.field, record.Number(float64(v.Time.Unix())))
	case record.KindString:
		t, err := parseDate(v.Str)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w: %q is not date-like", s.field, record.ErrMalformedFeature, v.Str)
		}
		rec.Set(s.field, record.Number(float64(t.Unix())))
	case record.KindNumber:
		// already encoded
	default:
		return nil, fmt.Errorf("field %q: %w: cannot encode %s as epoch seconds", s.field, record.ErrMalformedFeature, v.Kind)
	}
	return rec, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", s)
}
