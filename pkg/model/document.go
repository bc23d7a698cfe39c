package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/layers"
)

// Record is one entry of a model document.
type Record struct {
	ModuleName  string          `json:"module_name"`
	Description string          `json:"description,omitempty"`
	InputShape  []int           `json:"input_shape,omitempty"`
	Layers      []layers.Record `json:"layers"`
}

// Document is the ordered list of model records found in one input file.
type Document []Record

// DecodeDocument parses the JSON form of a model document. Structural
// problems surface as decode errors; semantic checks happen in Build.
func DecodeDocument(raw []byte) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("model: document is empty")
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("model: decode document: %w", err)
	}
	return doc, nil
}
