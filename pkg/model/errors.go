package model

import (
	"fmt"

	"github.com/goliatone/go-modelgen/pkg/layers"
)

// Dimensions checked by shape inference.
const (
	DimensionRank        = "rank"
	DimensionInChannels  = "in_channels"
	DimensionInFeatures  = "in_features"
	DimensionSpatialSize = "spatial size"
)

// ShapeMismatchError reports a layer whose declared input does not match what
// the preceding layers produce. Expected is what the layer declares, Actual is
// what is in flow.
type ShapeMismatchError struct {
	Model     string
	Layer     string
	Type      string
	Dimension string
	Expected  int
	Actual    int
}

func (e *ShapeMismatchError) Error() string {
	expected := fmt.Sprint(e.Expected)
	if e.Dimension == DimensionSpatialSize {
		expected = fmt.Sprintf("at least %d", e.Expected)
	}
	return fmt.Sprintf("model: shape mismatch in model %q at layer %q (%s): expected %s %s, got %d",
		e.Model, e.Layer, e.Type, e.Dimension, expected, e.Actual)
}

func rankMismatch(model string, layer layers.Layer, running layers.Rank) *ShapeMismatchError {
	return &ShapeMismatchError{
		Model:     model,
		Layer:     layer.Name(),
		Type:      layer.Kind().String(),
		Dimension: DimensionRank,
		Expected:  int(layer.InputRank()),
		Actual:    int(running),
	}
}

func sizeMismatch(model string, layer layers.Layer, dimension string, expected, actual int) *ShapeMismatchError {
	return &ShapeMismatchError{
		Model:     model,
		Layer:     layer.Name(),
		Type:      layer.Kind().String(),
		Dimension: dimension,
		Expected:  expected,
		Actual:    actual,
	}
}
