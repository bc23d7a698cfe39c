package model

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-modelgen/pkg/layers"
)

// decodeLayer converts a raw record into its typed layer. The switch covers
// every layers.Kind; a kind without a case lands in the default branch.
func decodeLayer(rec layers.Record) (layers.Layer, error) {
	name, _ := rec.Name()
	raw, ok := rec.Type()
	if !ok || raw == "" {
		return nil, &layers.ConfigurationError{Layer: name, Field: layers.FieldType, Reason: "required string field is missing"}
	}
	kind, ok := layers.ParseKind(raw)
	if !ok {
		return nil, &layers.ConfigurationError{
			Layer:  name,
			Type:   raw,
			Field:  layers.FieldType,
			Reason: fmt.Sprintf("unknown layer type %q (supported: %s)", raw, strings.Join(layers.KindNames(), ", ")),
		}
	}

	switch kind {
	case layers.KindConv2d:
		cfg, err := layers.DecodeConv2dConfig(rec, kind)
		if err != nil {
			return nil, err
		}
		conv, err := layers.NewConv2d(cfg)
		if err != nil {
			return nil, err
		}
		return conv, nil
	case layers.KindConv2dTranspose:
		cfg, err := layers.DecodeConv2dConfig(rec, kind)
		if err != nil {
			return nil, err
		}
		conv, err := layers.NewConv2dTranspose(cfg)
		if err != nil {
			return nil, err
		}
		return conv, nil
	case layers.KindLinear:
		cfg, err := layers.DecodeLinearConfig(rec)
		if err != nil {
			return nil, err
		}
		linear, err := layers.NewLinear(cfg)
		if err != nil {
			return nil, err
		}
		return linear, nil
	case layers.KindFlatten:
		layerName, err := layers.DecodeName(rec, kind)
		if err != nil {
			return nil, err
		}
		flatten, err := layers.NewFlatten(layerName)
		if err != nil {
			return nil, err
		}
		return flatten, nil
	case layers.KindReLU:
		layerName, err := layers.DecodeName(rec, kind)
		if err != nil {
			return nil, err
		}
		relu, err := layers.NewReLU(layerName)
		if err != nil {
			return nil, err
		}
		return relu, nil
	default:
		return nil, fmt.Errorf("model: layer kind %s has no decoder", kind)
	}
}
