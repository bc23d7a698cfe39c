package model

import (
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/layers"
)

type inference struct {
	inputRank  layers.Rank
	outputRank layers.Rank
	boundaries []Boundary
}

// infer runs the single left-to-right rank pass over stack. When inputShape is
// set, concrete sizes are tracked alongside the ranks.
func infer(moduleName string, stack []layers.Layer, inputShape []int) (inference, error) {
	if len(stack) == 0 {
		return inference{}, &layers.ConfigurationError{
			Model:  moduleName,
			Field:  FieldLayers,
			Reason: "at least one layer is required",
		}
	}

	first := stack[0]
	if first.InputRank().IsAny() {
		return inference{}, &layers.ConfigurationError{
			Model:  moduleName,
			Layer:  first.Name(),
			Type:   first.Kind().String(),
			Field:  FieldLayers,
			Reason: "the first layer must declare a concrete input rank",
		}
	}

	var shape []int
	if inputShape != nil {
		if err := checkInputShape(moduleName, first, inputShape); err != nil {
			return inference{}, err
		}
		shape = cloneInts(inputShape)
	}

	running := first.InputRank()
	boundaries := make([]Boundary, 0, len(stack))
	for _, layer := range stack {
		in := layer.InputRank()
		if !in.IsAny() && in != running {
			return inference{}, rankMismatch(moduleName, layer, running)
		}

		boundary := Boundary{InputRank: running, InputShape: cloneInts(shape)}
		if out := layer.OutputRank(); !out.IsAny() {
			running = out
		}
		if shape != nil {
			next, err := propagate(moduleName, layer, shape)
			if err != nil {
				return inference{}, err
			}
			shape = next
		}
		boundary.OutputRank = running
		boundary.OutputShape = cloneInts(shape)
		boundaries = append(boundaries, boundary)
	}

	return inference{
		inputRank:  first.InputRank(),
		outputRank: running,
		boundaries: boundaries,
	}, nil
}

func checkInputShape(moduleName string, first layers.Layer, shape []int) error {
	if len(shape) != int(first.InputRank()) {
		return &layers.ConfigurationError{
			Model: moduleName,
			Field: FieldInputShape,
			Reason: fmt.Sprintf("expected %d dimensions for first layer %q, got %d",
				int(first.InputRank()), first.Name(), len(shape)),
		}
	}
	for _, dim := range shape {
		if dim <= 0 {
			return &layers.ConfigurationError{
				Model:  moduleName,
				Field:  FieldInputShape,
				Reason: fmt.Sprintf("dimensions must be positive, got %v", shape),
			}
		}
	}
	return nil
}

// propagate computes the shape leaving layer given the shape entering it. The
// rank check has already passed, so shape has the length the layer expects.
func propagate(moduleName string, layer layers.Layer, shape []int) ([]int, error) {
	switch l := layer.(type) {
	case *layers.Conv2d:
		if shape[0] != l.InChannels() {
			return nil, sizeMismatch(moduleName, layer, DimensionInChannels, l.InChannels(), shape[0])
		}
		kernel, pad, stride := l.KernelSize(), l.PaddingAmount(), l.Stride()
		out := []int{l.OutChannels(), 0, 0}
		for axis := 0; axis < 2; axis++ {
			padded := shape[axis+1] + 2*pad
			if padded < kernel[axis] {
				return nil, sizeMismatch(moduleName, layer, DimensionSpatialSize, kernel[axis], padded)
			}
			out[axis+1] = (padded-kernel[axis])/stride + 1
		}
		return out, nil
	case *layers.Conv2dTranspose:
		if shape[0] != l.InChannels() {
			return nil, sizeMismatch(moduleName, layer, DimensionInChannels, l.InChannels(), shape[0])
		}
		kernel, pad, stride := l.KernelSize(), l.PaddingAmount(), l.Stride()
		out := []int{l.OutChannels(), 0, 0}
		for axis := 0; axis < 2; axis++ {
			size := (shape[axis+1]-1)*stride - 2*pad + kernel[axis]
			if size <= 0 {
				return nil, sizeMismatch(moduleName, layer, DimensionSpatialSize, 1, size)
			}
			out[axis+1] = size
		}
		return out, nil
	case *layers.Linear:
		if shape[0] != l.InFeatures() {
			return nil, sizeMismatch(moduleName, layer, DimensionInFeatures, l.InFeatures(), shape[0])
		}
		return []int{l.OutFeatures()}, nil
	case *layers.Flatten:
		total := 1
		for _, dim := range shape {
			total *= dim
		}
		return []int{total}, nil
	case *layers.ReLU:
		return cloneInts(shape), nil
	default:
		return nil, fmt.Errorf("model: layer kind %s has no shape rule", layer.Kind())
	}
}
