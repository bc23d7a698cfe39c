package layers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a decoded layer description as found in a model document: a field
// mapping with at least "type" and "name".
type Record map[string]any

const (
	FieldType        = "type"
	FieldName        = "name"
	FieldInChannels  = "in_channels"
	FieldOutChannels = "out_channels"
	FieldKernelSize  = "kernel_size"
	FieldStride      = "stride"
	FieldPadding     = "padding"
	FieldBias        = "bias"
	FieldInFeatures  = "in_features"
	FieldOutFeatures = "out_features"
)

// Type returns the raw "type" discriminator.
func (r Record) Type() (string, bool) {
	value, ok := r[FieldType].(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// Name returns the raw "name" field.
func (r Record) Name() (string, bool) {
	value, ok := r[FieldName].(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// fieldReader pulls typed values out of a Record, reporting failures against
// the layer being decoded.
type fieldReader struct {
	rec  Record
	name string
	kind Kind
}

func newFieldReader(rec Record, kind Kind) (fieldReader, error) {
	name, ok := rec.Name()
	if !ok || name == "" {
		return fieldReader{}, configError("", kind, FieldName, "required string field is missing")
	}
	return fieldReader{rec: rec, name: name, kind: kind}, nil
}

func (f fieldReader) fail(field, format string, args ...any) error {
	return configError(f.name, f.kind, field, format, args...)
}

func (f fieldReader) requiredInt(field string) (int, error) {
	raw, ok := f.rec[field]
	if !ok || raw == nil {
		return 0, f.fail(field, "required integer field is missing")
	}
	value, err := toInt(raw)
	if err != nil {
		return 0, f.fail(field, "%v", err)
	}
	return value, nil
}

func (f fieldReader) optionalInt(field string, fallback int) (int, error) {
	raw, ok := f.rec[field]
	if !ok || raw == nil {
		return fallback, nil
	}
	value, err := toInt(raw)
	if err != nil {
		return 0, f.fail(field, "%v", err)
	}
	return value, nil
}

func (f fieldReader) requiredBool(field string) (bool, error) {
	raw, ok := f.rec[field]
	if !ok || raw == nil {
		return false, f.fail(field, "required boolean field is missing")
	}
	value, ok := raw.(bool)
	if !ok {
		return false, f.fail(field, "expected a boolean, got %T", raw)
	}
	return value, nil
}

func (f fieldReader) optionalString(field, fallback string) (string, error) {
	raw, ok := f.rec[field]
	if !ok || raw == nil {
		return fallback, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", f.fail(field, "expected a string, got %T", raw)
	}
	return strings.TrimSpace(value), nil
}

// kernel accepts "(3,3)", "(3, 3)", "3", 3 or [3, 3].
func (f fieldReader) kernel(field string) ([2]int, error) {
	raw, ok := f.rec[field]
	if !ok || raw == nil {
		return [2]int{}, f.fail(field, "required field is missing")
	}
	kernel, err := parseKernel(raw)
	if err != nil {
		return [2]int{}, f.fail(field, "%v", err)
	}
	return kernel, nil
}

func parseKernel(raw any) ([2]int, error) {
	switch value := raw.(type) {
	case string:
		return parseKernelLiteral(value)
	case []any:
		if len(value) != 2 {
			return [2]int{}, fmt.Errorf("expected 2 dimensions, got %d", len(value))
		}
		var out [2]int
		for idx, item := range value {
			dim, err := toInt(item)
			if err != nil {
				return [2]int{}, err
			}
			out[idx] = dim
		}
		return out, nil
	case []int:
		if len(value) != 2 {
			return [2]int{}, fmt.Errorf("expected 2 dimensions, got %d", len(value))
		}
		return [2]int{value[0], value[1]}, nil
	default:
		dim, err := toInt(raw)
		if err != nil {
			return [2]int{}, err
		}
		return [2]int{dim, dim}, nil
	}
}

func parseKernelLiteral(literal string) ([2]int, error) {
	trimmed := strings.TrimSpace(literal)
	if trimmed == "" {
		return [2]int{}, fmt.Errorf("empty kernel literal")
	}
	if !strings.HasPrefix(trimmed, "(") {
		dim, err := strconv.Atoi(trimmed)
		if err != nil {
			return [2]int{}, fmt.Errorf("malformed kernel literal %q", literal)
		}
		return [2]int{dim, dim}, nil
	}
	if !strings.HasSuffix(trimmed, ")") {
		return [2]int{}, fmt.Errorf("malformed kernel literal %q", literal)
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "("), ")")
	parts := strings.Split(inner, ",")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("expected 2 dimensions in kernel literal %q", literal)
	}
	var out [2]int
	for idx, part := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return [2]int{}, fmt.Errorf("malformed kernel literal %q", literal)
		}
		out[idx] = dim
	}
	return out, nil
}

// toInt accepts integral values within int32 range.
func toInt(raw any) (int, error) {
	switch value := raw.(type) {
	case int:
		if int64(value) > math.MaxInt32 || int64(value) < math.MinInt32 {
			return 0, fmt.Errorf("expected an integer, got %d", value)
		}
		return value, nil
	case int64:
		if value > math.MaxInt32 || value < math.MinInt32 {
			return 0, fmt.Errorf("expected an integer, got %d", value)
		}
		return int(value), nil
	case float64:
		if math.Trunc(value) != value || value > math.MaxInt32 || value < math.MinInt32 {
			return 0, fmt.Errorf("expected an integer, got %v", value)
		}
		return int(value), nil
	case json.Number:
		parsed, err := value.Int64()
		if err != nil || parsed > math.MaxInt32 || parsed < math.MinInt32 {
			return 0, fmt.Errorf("expected an integer, got %q", value.String())
		}
		return int(parsed), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", raw)
	}
}
