package transform

import (
	"errors"
	"testing"

	"kakaku/internal/record"
)

func TestCategorical_TagsWithoutMutating(t *testing.T) {
	s := NewCategorical(record.FieldAddress)
	rec := record.Record{record.FieldAddress: record.String("東京都千代田区")}
	out, err := s.Transform(rec)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	v := out[record.FieldAddress]
	if v.Kind != record.KindCategorical {
		t.Fatalf("want categorical, got %s", v.Kind)
	}
	if v.Str != "東京都千代田区" {
		t.Fatalf("value mutated: %q", v.Str)
	}
}

func TestCategorical_UnseenValuePassesThrough(t *testing.T) {
	// no vocabulary is fitted: any token is legal
	s := NewCategorical(record.FieldAddress)
	out, err := s.Transform(record.Record{record.FieldAddress: record.String("北海道夕張市")})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if out[record.FieldAddress].Str != "北海道夕張市" {
		t.Fatalf("unexpected value %q", out[record.FieldAddress].Str)
	}
}

func TestCategorical_Idempotent(t *testing.T) {
	s := NewCategorical(record.FieldAddress)
	once, err := s.Transform(record.Record{record.FieldAddress: record.String("東京都千代田区")})
	if err != nil {
		t.Fatalf("first transform: %v", err)
	}
	twice, err := s.Transform(once.Clone())
	if err != nil {
		t.Fatalf("second transform: %v", err)
	}
	if twice[record.FieldAddress] != once[record.FieldAddress] {
		t.Fatalf("re-application changed the value: %+v vs %+v", twice[record.FieldAddress], once[record.FieldAddress])
	}
}

func TestCategorical_RejectsNonText(t *testing.T) {
	s := NewCategorical(record.FieldAddress)
	_, err := s.Transform(record.Record{record.FieldAddress: record.Number(42)})
	if !errors.Is(err, record.ErrMalformedFeature) {
		t.Fatalf("want ErrMalformedFeature, got %v", err)
	}
}

func TestCategorical_MissingField(t *testing.T) {
	s := NewCategorical(record.FieldAddress)
	_, err := s.Transform(record.Record{})
	if !errors.Is(err, record.ErrMissingField) {
		t.Fatalf("want ErrMissingField, got %v", err)
	}
}
