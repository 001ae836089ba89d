// Package transform defines the Stage contract and the stage kinds a
// pipeline artifact may reference. The set is closed: each trained artifact
// version names stages from this package only.
package transform
