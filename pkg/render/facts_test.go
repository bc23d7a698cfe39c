package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-modelgen/pkg/render"
	"github.com/goliatone/go-modelgen/pkg/testsupport"
)

func TestNewTrainingFacts_Scenario(t *testing.T) {
	facts := render.NewTrainingFacts(testsupport.ScenarioModels(t), false)

	if facts.Container != render.StateContainer {
		t.Fatalf("unexpected header facts: %+v", facts)
	}
	if len(facts.Models) != 1 {
		t.Fatalf("expected one model, got %d", len(facts.Models))
	}
	m := facts.Models[0]
	if m.ModuleName != "M" {
		t.Fatalf("module name = %q", m.ModuleName)
	}
	if diff := cmp.Diff([]string{"Reference classifier."}, m.Description); diff != "" {
		t.Fatalf("description mismatch (-want +got):\n%s", diff)
	}

	var constructors []string
	for _, layer := range m.Layers {
		constructors = append(constructors, layer.Constructor)
	}
	if diff := cmp.Diff([]string{"Conv2d", "ReLU", "Flatten", "Linear"}, constructors); diff != "" {
		t.Fatalf("constructor mismatch (-want +got):\n%s", diff)
	}

	wantArgs := []render.KeywordArg{
		{Name: "in_channels", Value: "3"},
		{Name: "out_channels", Value: "8"},
		{Name: "kernel_size", Value: "(3, 3)"},
		{Name: "stride", Value: "1"},
		{Name: "padding", Value: "0"},
		{Name: "bias", Value: "True"},
	}
	if diff := cmp.Diff(wantArgs, m.Layers[0].Args); diff != "" {
		t.Fatalf("conv args mismatch (-want +got):\n%s", diff)
	}
	if len(m.Layers[1].Args) != 0 || len(m.Layers[1].Weights) != 0 {
		t.Fatalf("relu should carry no args or weights: %+v", m.Layers[1])
	}

	wantWeights := []render.Weight{
		{Name: "weight", Key: "M.c0.weight", Var: "c0_weight", Shape: []int{8, 3, 3, 3}, ShapeLiteral: "(8, 3, 3, 3)", Rank: 4, Type: "Array4<F>"},
		{Name: "bias", Key: "M.c0.bias", Var: "c0_bias", Shape: []int{8}, ShapeLiteral: "(8,)", Rank: 1, Type: "Array1<F>", Optional: true},
	}
	if diff := cmp.Diff(wantWeights, m.Layers[0].Weights); diff != "" {
		t.Fatalf("conv weights mismatch (-want +got):\n%s", diff)
	}
}

func TestNewInferenceFacts_ResolvesRanks(t *testing.T) {
	facts := render.NewInferenceFacts(testsupport.ScenarioModels(t), true)
	if !facts.Debug {
		t.Fatalf("debug flag not carried")
	}
	m := facts.Models[0]
	if m.InputType != "Array3<F>" || m.OutputType != "Array1<F>" {
		t.Fatalf("model types = %s -> %s", m.InputType, m.OutputType)
	}

	type view struct {
		Type     string
		Args     []string
		CallArgs []string
		In, Out  string
	}
	var got []view
	for _, layer := range m.Layers {
		got = append(got, view{layer.Type, layer.Args, layer.CallArgs, layer.InputType, layer.OutputType})
	}
	want := []view{
		{"ConvolutionLayer<F>", []string{"1", "Padding::Valid"}, []string{"c0_weight", "c0_bias", "1", "Padding::Valid"}, "Array3<F>", "Array3<F>"},
		{"ReluLayer", []string{}, []string{}, "Array3<F>", "Array3<F>"},
		{"Flatten", []string{}, []string{}, "Array3<F>", "Array1<F>"},
		{"LinearLayer<F>", []string{}, []string{"l0_weight", "l0_bias"}, "Array1<F>", "Array1<F>"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inference layers mismatch (-want +got):\n%s", diff)
	}
}

func TestNewInferenceFacts_MissingBiasPassesNone(t *testing.T) {
	models := testsupport.MustBuildModels(t, `[{"module_name": "N", "layers": [
		{"type": "Linear", "name": "fc", "in_features": 4, "out_features": 2, "bias": false}
	]}]`)

	layer := render.NewInferenceFacts(models, false).Models[0].Layers[0]
	if diff := cmp.Diff([]string{"fc_weight", "None"}, layer.CallArgs); diff != "" {
		t.Fatalf("call args mismatch (-want +got):\n%s", diff)
	}
	if len(layer.Weights) != 1 {
		t.Fatalf("expected kernel only, got %d weights", len(layer.Weights))
	}
}

func TestNewExportFacts_Scenario(t *testing.T) {
	facts := render.NewExportFacts(testsupport.ScenarioModels(t), false)

	if diff := cmp.Diff([]string{"M"}, facts.Modules); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}
	var keys, stateKeys []string
	for _, key := range facts.Keys {
		keys = append(keys, key.Key)
		stateKeys = append(stateKeys, key.StateKey)
	}
	if diff := cmp.Diff(testsupport.ScenarioKeys, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	wantState := []string{"layers.c0.weight", "layers.c0.bias", "layers.l0.weight", "layers.l0.bias"}
	if diff := cmp.Diff(wantState, stateKeys); diff != "" {
		t.Fatalf("state keys mismatch (-want +got):\n%s", diff)
	}
	if facts.Keys[1].ShapeLiteral != "(8,)" || !facts.Keys[1].Optional {
		t.Fatalf("unexpected bias entry: %+v", facts.Keys[1])
	}
}

func TestDescriptionLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "  \n ", want: nil},
		{name: "plain", in: "Small net", want: []string{"Small net"}},
		{name: "markup stripped", in: "<p>Uses <script>alert(1)</script>ReLU &amp; Flatten</p>", want: []string{"Uses ReLU & Flatten"}},
		{name: "multi line", in: "\n\nfirst  \n\nsecond\n\n", want: []string{"first", "", "second"}},
		{name: "quotes survive", in: `it's "fine"`, want: []string{`it's "fine"`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, render.DescriptionLines(tc.in)); diff != "" {
				t.Fatalf("description mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
