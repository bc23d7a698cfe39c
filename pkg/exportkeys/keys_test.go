package exportkeys_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/exportkeys"
	"github.com/goliatone/go-modelgen/pkg/layers"
	"github.com/goliatone/go-modelgen/pkg/model"
)

func buildScenario(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.Build("M", []layers.Record{
		{"type": "Conv2d", "name": "c0", "in_channels": 3.0, "out_channels": 8.0, "kernel_size": "(3,3)", "bias": true},
		{"type": "ReLU", "name": "r0"},
		{"type": "Flatten", "name": "f0"},
		{"type": "Linear", "name": "l0", "in_features": 5408.0, "out_features": 10.0, "bias": true},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return m
}

func TestKeys_Scenario(t *testing.T) {
	m := buildScenario(t)
	want := []string{"M.c0.weight", "M.c0.bias", "M.l0.weight", "M.l0.bias"}
	if diff := cmp.Diff(want, exportkeys.Keys(m)); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestKeys_IdempotentAndOrdered(t *testing.T) {
	first := buildScenario(t)
	second, err := model.Build("N", []layers.Record{
		{"type": "Linear", "name": "head", "in_features": 4.0, "out_features": 2.0, "bias": false},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	once := exportkeys.Keys(first, second)
	twice := exportkeys.Keys(first, second)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("keys changed between calls (-first +second):\n%s", diff)
	}
	want := []string{"M.c0.weight", "M.c0.bias", "M.l0.weight", "M.l0.bias", "N.head.weight"}
	if diff := cmp.Diff(want, once); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestEntries_CarryShapeAndOptional(t *testing.T) {
	entries := exportkeys.Entries(buildScenario(t))
	want := exportkeys.Entry{
		Key: "M.c0.bias", Module: "M", Layer: "c0", Weight: "bias",
		Shape: []int{8}, Optional: true,
	}
	if diff := cmp.Diff(want, entries[1]); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
	if entries[0].Optional {
		t.Fatalf("kernel must not be optional")
	}
}
