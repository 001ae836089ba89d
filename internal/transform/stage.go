package transform

import (
	"kakaku/internal/record"
)

// Stage is one unit of the pipeline, targeting exactly one field.
//
// Fit is the training-side half of the contract. The shipped stages carry no
// statistics learned from data, only structural recoding rules, so their Fit
// is a no-op; Transform must work on an unfitted stage.
//
// Transform must be a pure function of the record and the stage's fixed
// configuration: no request ordering, no wall clock beyond the value already
// embedded in the field.
type Stage interface {
	Name() string
	Field() string
	Fit(batch []record.Record) error
	Transform(rec record.Record) (record.Record, error)
}
