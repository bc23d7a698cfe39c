package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/layers"
)

// FieldModuleName and friends name model-level record fields in errors.
const (
	FieldModuleName = "module_name"
	FieldLayers     = "layers"
	FieldInputShape = "input_shape"
)

// Build validates records as the layers of moduleName.
func Build(moduleName string, records []layers.Record) (*Model, error) {
	return BuildRecord(Record{ModuleName: moduleName, Layers: records})
}

// BuildRecord validates a single model record.
func BuildRecord(rec Record) (*Model, error) {
	name := strings.TrimSpace(rec.ModuleName)
	if name == "" {
		return nil, &layers.ConfigurationError{Field: FieldModuleName, Reason: "required string field is missing"}
	}
	if !layers.IsIdentifier(name) {
		return nil, &layers.ConfigurationError{Model: name, Field: FieldModuleName, Reason: fmt.Sprintf("%q is not a valid identifier", name)}
	}
	if layers.IsReservedModuleName(name) {
		return nil, &layers.ConfigurationError{Model: name, Field: FieldModuleName, Reason: fmt.Sprintf("%q is reserved by the generated sources", name)}
	}

	stack := make([]layers.Layer, 0, len(rec.Layers))
	seen := make(map[string]struct{}, len(rec.Layers))
	for _, layerRec := range rec.Layers {
		layer, err := decodeLayer(layerRec)
		if err != nil {
			return nil, withModel(err, name)
		}
		if _, dup := seen[layer.Name()]; dup {
			return nil, &layers.ConfigurationError{
				Model:  name,
				Layer:  layer.Name(),
				Type:   layer.Kind().String(),
				Field:  layers.FieldName,
				Reason: "duplicate layer name",
			}
		}
		seen[layer.Name()] = struct{}{}
		stack = append(stack, layer)
	}

	if err := checkWeightVars(name, stack); err != nil {
		return nil, err
	}

	result, err := infer(name, stack, rec.InputShape)
	if err != nil {
		return nil, err
	}

	return &Model{
		moduleName:  name,
		description: strings.TrimSpace(rec.Description),
		inputShape:  cloneInts(rec.InputShape),
		layers:      stack,
		boundaries:  result.boundaries,
		inputRank:   result.inputRank,
		outputRank:  result.outputRank,
	}, nil
}

// BuildDocument validates every record of doc. The first failure aborts the
// build; no models are returned in that case.
func BuildDocument(doc Document) ([]*Model, error) {
	if len(doc) == 0 {
		return nil, &layers.ConfigurationError{Reason: "document does not describe any model"}
	}
	models := make([]*Model, 0, len(doc))
	seen := make(map[string]struct{}, len(doc))
	for _, rec := range doc {
		m, err := BuildRecord(rec)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[m.ModuleName()]; dup {
			return nil, &layers.ConfigurationError{Model: m.ModuleName(), Field: FieldModuleName, Reason: "duplicate module name"}
		}
		seen[m.ModuleName()] = struct{}{}
		models = append(models, m)
	}
	return models, nil
}

// checkWeightVars rejects a layer whose name equals the local variable bound
// to another layer's weight in the inference constructor.
func checkWeightVars(moduleName string, stack []layers.Layer) error {
	owners := make(map[string]string)
	for _, layer := range stack {
		for _, weight := range layer.Weights() {
			owners[layers.WeightVar(layer.Name(), weight)] = layer.Name()
		}
	}
	for _, layer := range stack {
		if owner, clash := owners[layer.Name()]; clash {
			return &layers.ConfigurationError{
				Model:  moduleName,
				Layer:  layer.Name(),
				Type:   layer.Kind().String(),
				Field:  layers.FieldName,
				Reason: fmt.Sprintf("collides with a weight variable of layer %q", owner),
			}
		}
	}
	return nil
}

func withModel(err error, moduleName string) error {
	var cfgErr *layers.ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Model == "" {
		cfgErr.Model = moduleName
	}
	return err
}
