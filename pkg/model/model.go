package model

import "github.com/goliatone/go-modelgen/pkg/layers"

// Boundary describes what flows into and out of one layer after inference.
// Ranks are always concrete. Shapes are nil unless the model declares an
// input shape.
type Boundary struct {
	InputRank   layers.Rank
	OutputRank  layers.Rank
	InputShape  []int
	OutputShape []int
}

// Model is a named, validated, strictly sequential stack of layers. It is
// immutable and safe for concurrent reads.
type Model struct {
	moduleName  string
	description string
	inputShape  []int
	layers      []layers.Layer
	boundaries  []Boundary
	inputRank   layers.Rank
	outputRank  layers.Rank
}

// ModuleName identifies the model in both generated artifacts and prefixes its
// export keys.
func (m *Model) ModuleName() string {
	return m.moduleName
}

// Description is the free-form text attached to the model record.
func (m *Model) Description() string {
	return m.description
}

// InputShape returns the declared input shape, or nil.
func (m *Model) InputShape() []int {
	return cloneInts(m.inputShape)
}

// OutputShape returns the inferred output shape, or nil when the model does
// not declare an input shape.
func (m *Model) OutputShape() []int {
	if len(m.boundaries) == 0 {
		return nil
	}
	return cloneInts(m.boundaries[len(m.boundaries)-1].OutputShape)
}

// Layers returns the layers in execution order.
func (m *Model) Layers() []layers.Layer {
	return append([]layers.Layer(nil), m.layers...)
}

// Len is the number of layers.
func (m *Model) Len() int {
	return len(m.layers)
}

// Boundary returns the resolved ranks (and shapes, when known) around layer i.
func (m *Model) Boundary(i int) Boundary {
	b := m.boundaries[i]
	b.InputShape = cloneInts(b.InputShape)
	b.OutputShape = cloneInts(b.OutputShape)
	return b
}

// InputRank is the rank the first layer consumes.
func (m *Model) InputRank() layers.Rank {
	return m.inputRank
}

// OutputRank is the rank left in flow after the last layer.
func (m *Model) OutputRank() layers.Rank {
	return m.outputRank
}

// ParameterCount sums the element counts of every declared weight.
func (m *Model) ParameterCount() int {
	total := 0
	for _, layer := range m.layers {
		for _, weight := range layer.Weights() {
			total += weight.Size()
		}
	}
	return total
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append([]int(nil), in...)
}
