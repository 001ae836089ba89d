// Package record holds the domain types flowing through the serving path: a
// Record is one property observation keyed by field name, a Value is one
// typed field. Transform stages rewrite Values in place; nothing in this
// package touches the wire format.
package record

import (
	"errors"
	"fmt"
	"time"
)

// Field names shared between the handler, the pipeline artifact, and the
// model artifact. They must match the names the training side used.
const (
	FieldAddress      = "address"
	FieldArea         = "area"
	FieldBuildingYear = "building_year"
	FieldTradeDate    = "trade_date"
)

var (
	// ErrMissingField indicates a required field is absent from a record.
	ErrMissingField = errors.New("missing field")

	// ErrMalformedFeature indicates a field is present but its value cannot
	// be coerced by the stage targeting it.
	ErrMalformedFeature = errors.New("malformed feature")
)

// Kind tags how a Value is encoded. The string/categorical distinction
// matters: the model consumes categorical semantics, not raw text.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindTimestamp
	KindCategorical
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindTimestamp:
		return "timestamp"
	case KindCategorical:
		return "categorical"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is one typed field. Exactly one of the payload members is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string    // KindString, KindCategorical
	Num  float64   // KindNumber
	Time time.Time // KindTimestamp
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }

func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

func Timestamp(t time.Time) Value { return Value{Kind: KindTimestamp, Time: t} }

func Categorical(s string) Value { return Value{Kind: KindCategorical, Str: s} }

// Record is one observation. It is not safe for concurrent mutation; every
// request works on its own copy.
type Record map[string]Value

// Get returns the named field or ErrMissingField.
func (r Record) Get(name string) (Value, error) {
	v, ok := r[name]
	if !ok {
		return Value{}, fmt.Errorf("field %q: %w", name, ErrMissingField)
	}
	return v, nil
}

func (r Record) Set(name string, v Value) { r[name] = v }

// Clone returns an independent copy so stages can rewrite fields without
// aliasing the caller's record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Schema maps field names to the Kind each carries. Used to check that the
// pipeline's output matches what the model was trained against.
type Schema map[string]Kind

// Equal reports whether two schemas declare the same fields with the same
// kinds.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for name, kind := range s {
		got, found := other[name]
		if !found || got != kind {
			return false
		}
	}
	return true
}

// Diff describes the first mismatch between s and other, for startup
// diagnostics. Empty string when the schemas agree.
func (s Schema) Diff(other Schema) string {
	for name, kind := range s {
		got, found := other[name]
		if !found {
			return fmt.Sprintf("field %q missing", name)
		}
		if got != kind {
			return fmt.Sprintf("field %q is %s, want %s", name, got, kind)
		}
	}
	for name := range other {
		if _, found := s[name]; !found {
			return fmt.Sprintf("unexpected field %q", name)
		}
	}
	return ""
}

// InputSchema is the schema of an augmented record as the handler hands it
// to the pipeline: the three client fields plus the injected trade date.
func InputSchema() Schema {
	return Schema{
		FieldAddress:      KindString,
		FieldArea:         KindNumber,
		FieldBuildingYear: KindNumber,
		FieldTradeDate:    KindTimestamp,
	}
}
