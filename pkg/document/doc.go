// Package document identifies where a model document comes from and
// normalises its payload. Documents may be written in JSON or YAML; YAML is
// converted to JSON once, at construction, so every later stage (structural
// validation, decoding) sees a single format.
package document
