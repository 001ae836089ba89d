// Package spec declares the on-disk schema of the pipeline artifact: the
// versioned, ordered stage list produced by the offline training run and
// consumed read-only at serving time.
package spec

type StageSpec struct {
	// Kind selects the stage implementation, e.g. "epoch_time", "categorical".
	Kind string `yaml:"kind"`
	// Field is the name of the record field the stage targets.
	Field string `yaml:"field"`
}

type File struct {
	SchemaVersion string `yaml:"schema_version"`

	// Ordered list of transform stages. Serving applies them in exactly this
	// order to match how the artifact was produced during training.
	Stages []StageSpec `yaml:"stages"`
}
