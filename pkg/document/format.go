package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialisation a document was written in.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the location's extension, falling back to
// sniffing the payload: documents opening with '[' or '{' are JSON.
func DetectFormat(location string, raw []byte) Format {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON
	}
	return FormatYAML
}

// ToJSON converts a YAML payload into its JSON equivalent.
func ToJSON(raw []byte) ([]byte, error) {
	var value any
	if err := yaml.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("document: parse yaml: %w", err)
	}
	normalised, err := normaliseYAML(value)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(normalised)
	if err != nil {
		return nil, fmt.Errorf("document: encode json: %w", err)
	}
	return out, nil
}

// normaliseYAML rewrites the map[any]any nodes yaml.v3 produces for
// non-string keys into map[string]any so the tree is JSON encodable.
func normaliseYAML(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			converted, err := normaliseYAML(item)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			name, ok := key.(string)
			if !ok {
				name = fmt.Sprint(key)
			}
			converted, err := normaliseYAML(item)
			if err != nil {
				return nil, err
			}
			out[name] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			converted, err := normaliseYAML(item)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return v, nil
	}
}
