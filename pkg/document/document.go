package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// Document wraps a model document payload and its origin. The payload is kept
// both as received and as JSON.
type Document struct {
	source Source
	format Format
	raw    []byte
	json   []byte
}

// NewDocument constructs a Document, converting YAML payloads to JSON. A JSON
// payload must be well formed.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("document: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("document: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	format := DetectFormat(src.Location(), clone)

	var payload []byte
	switch format {
	case FormatYAML:
		converted, err := ToJSON(clone)
		if err != nil {
			return Document{}, fmt.Errorf("document: %s: %w", src.Location(), err)
		}
		payload = converted
	default:
		if !json.Valid(clone) {
			return Document{}, fmt.Errorf("document: %s: invalid json", src.Location())
		}
		payload = clone
	}

	return Document{source: src, format: format, raw: clone, json: payload}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Format reports how the payload was written.
func (d Document) Format() Format {
	return d.format
}

// Raw returns a copy of the payload as received.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// JSON returns a copy of the payload in JSON form.
func (d Document) JSON() []byte {
	return append([]byte(nil), d.json...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Records decodes the model records the document declares.
func (d Document) Records() (model.Document, error) {
	if len(d.json) == 0 {
		return nil, errors.New("document: empty document")
	}
	records, err := model.DecodeDocument(d.json)
	if err != nil {
		return nil, fmt.Errorf("document: %s: %w", d.Location(), err)
	}
	return records, nil
}
