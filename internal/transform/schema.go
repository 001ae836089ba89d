package transform

import (
	"fmt"

	"kakaku/internal/record"
)

// OutputKind reports how a stage recodes its target field's kind, without
// running it. Used at startup to derive the pipeline's output schema and
// check it against the model's training schema.
func OutputKind(s Stage, in record.Kind) (record.Kind, error) {
	switch s.Name() {
	case KindEpochTime:
		switch in {
		case record.KindTimestamp, record.KindString, record.KindNumber:
			return record.KindNumber, nil
		}
	case KindCategorical:
		switch in {
		case record.KindString, record.KindCategorical:
			return record.KindCategorical, nil
		}
	default:
		return 0, fmt.Errorf("unknown stage kind %q", s.Name())
	}
	return 0, fmt.Errorf("stage %q cannot consume a %s field", s.Name(), in)
}
