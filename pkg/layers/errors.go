package layers

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a layer or model description that cannot be
// turned into a valid layer: a missing required field, a malformed value, an
// unknown discriminator or an empty layer list.
type ConfigurationError struct {
	Model  string
	Layer  string
	Type   string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("layers: invalid configuration")
	if e.Model != "" {
		fmt.Fprintf(&b, " in model %q", e.Model)
	}
	if e.Layer != "" {
		fmt.Fprintf(&b, " for layer %q", e.Layer)
	}
	if e.Type != "" {
		fmt.Fprintf(&b, " (%s)", e.Type)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func configError(layer string, kind Kind, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Layer:  layer,
		Type:   kind.String(),
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
