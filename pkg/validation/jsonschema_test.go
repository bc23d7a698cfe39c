package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()

	v, err := NewValidator(context.Background())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidate_Scenario(t *testing.T) {
	result := newValidator(t).Validate(context.Background(), []byte(testsupport.ScenarioJSON))
	if !result.Valid {
		t.Fatalf("expected scenario to be valid: %#v", result.Issues)
	}
	if err := result.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_KernelSizeForms(t *testing.T) {
	for _, kernel := range []string{`"(3,3)"`, `"(3, 5)"`, `"3"`, `3`, `[3, 3]`} {
		raw := `[{"module_name": "M", "layers": [{"type": "Conv2d", "name": "c", "in_channels": 1, "out_channels": 1, "kernel_size": ` + kernel + `, "bias": true}]}]`
		result := newValidator(t).Validate(context.Background(), []byte(raw))
		if !result.Valid {
			t.Fatalf("kernel_size %s should be valid: %#v", kernel, result.Issues)
		}
	}
}

func TestValidate_ReportsEveryIssueWithFieldPaths(t *testing.T) {
	raw := []byte(`[
  {"module_name": "M", "layers": [
    {"type": "Conv2d", "name": "c0", "in_channels": 0, "out_channels": 8, "kernel_size": "(3,3)", "bias": "yes"},
    {"type": "Dropout", "name": "d0"}
  ]},
  {"module_name": "N"}
]`)
	result := newValidator(t).Validate(context.Background(), raw)
	if result.Valid {
		t.Fatalf("expected document to be invalid")
	}

	fields := map[string]string{}
	for _, issue := range result.Issues {
		fields[issue.Field] = issue.Message
	}
	for field, fragment := range map[string]string{
		"[0].layers[0].in_channels": "at least 1",
		"[0].layers[0].bias":        "",
		"[0].layers[1].type":        "allowed values",
		"[1].layers":                "missing",
	} {
		msg, ok := fields[field]
		if !ok {
			t.Fatalf("expected an issue for %s, got %#v", field, result.Issues)
		}
		if !strings.Contains(msg, fragment) {
			t.Fatalf("issue for %s = %q, want it to mention %q", field, msg, fragment)
		}
	}

	var verr *Error
	if !errors.As(result.Err(), &verr) || len(verr.Issues) != len(result.Issues) {
		t.Fatalf("expected *Error carrying every issue, got %v", result.Err())
	}
}

func TestValidate_RejectsUnknownFields(t *testing.T) {
	raw := []byte(`[{"module_name": "M", "layers": [{"type": "Flatten", "name": "f", "start_dim": 1}]}]`)
	result := newValidator(t).Validate(context.Background(), raw)
	if result.Valid {
		t.Fatalf("expected unknown field to be rejected")
	}
	if got := result.Issues[0].Path; got != "/0/layers/0" {
		t.Fatalf("issue path = %q", got)
	}
}

func TestValidate_EmptyDocument(t *testing.T) {
	result := newValidator(t).Validate(context.Background(), []byte(`[]`))
	if result.Valid {
		t.Fatalf("expected empty document to be invalid")
	}
}

func TestValidate_InvalidJSON(t *testing.T) {
	result := newValidator(t).Validate(context.Background(), []byte(`[{`))
	if result.Valid || !strings.Contains(result.Issues[0].Message, "not valid json") {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestNewValidator_CustomSchema(t *testing.T) {
	if _, err := NewValidator(context.Background(), WithSchema([]byte(`{"type": "array", "items": {"type": "object"}}`))); err != nil {
		t.Fatalf("custom schema: %v", err)
	}
	if _, err := NewValidator(context.Background(), WithSchema([]byte(`{"type": `))); err == nil {
		t.Fatalf("expected malformed schema to fail")
	}
	if _, err := NewValidator(context.Background(), WithSchema([]byte(`{"type": "array"}`))); err == nil {
		t.Fatalf("expected array schema without items to fail")
	}
}

func TestFieldPathFromPointer(t *testing.T) {
	cases := map[string][]string{
		"":                          nil,
		"[0]":                       {"0"},
		"[0].layers[2].in_channels": {"0", "layers", "2", "in_channels"},
		"a/b":                       {"a~1b"},
	}
	for want, pointer := range cases {
		if got := fieldPathFromPointer(pointer); got != want {
			t.Fatalf("fieldPathFromPointer(%v) = %q, want %q", pointer, got, want)
		}
	}
}
