package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/model"
)

// ScenarioJSON is the reference document used across package tests: a small
// classifier with a convolution, an activation, a flatten and a linear head.
const ScenarioJSON = `[
  {
    "module_name": "M",
    "description": "Reference <b>classifier</b>.",
    "layers": [
      {"type": "Conv2d", "name": "c0", "in_channels": 3, "out_channels": 8, "kernel_size": "(3,3)", "bias": true},
      {"type": "ReLU", "name": "r0"},
      {"type": "Flatten", "name": "f0"},
      {"type": "Linear", "name": "l0", "in_features": 288, "out_features": 10, "bias": true}
    ]
  }
]`

// ScenarioKeys lists the export keys ScenarioJSON derives.
var ScenarioKeys = []string{"M.c0.weight", "M.c0.bias", "M.l0.weight", "M.l0.bias"}

// LoadModels reads a JSON model document from disk and builds every model it
// declares. Testing helpers fail the test on error to keep call sites concise.
func LoadModels(t *testing.T, path string) []*model.Model {
	t.Helper()

	models, err := LoadModelsFromPath(path)
	if err != nil {
		t.Fatalf("load models: %v", err)
	}
	return models
}

// LoadModelsFromPath returns built models without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadModelsFromPath(path string) ([]*model.Model, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read document: %w", err)
	}
	return BuildModels(data)
}

// BuildModels decodes and builds a raw JSON document.
func BuildModels(data []byte) ([]*model.Model, error) {
	doc, err := model.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: decode document: %w", err)
	}
	models, err := model.BuildDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("testsupport: build document: %w", err)
	}
	return models, nil
}

// MustBuildModels builds a raw JSON document or fails the test.
func MustBuildModels(t *testing.T, data string) []*model.Model {
	t.Helper()

	models, err := BuildModels([]byte(data))
	if err != nil {
		t.Fatalf("build models: %v", err)
	}
	return models
}

// ScenarioModels builds ScenarioJSON.
func ScenarioModels(t *testing.T) []*model.Model {
	t.Helper()
	return MustBuildModels(t, ScenarioJSON)
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
